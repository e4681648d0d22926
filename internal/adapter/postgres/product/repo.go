// Package product implements the catalog repository using PostgreSQL.
package product

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"armatupc/internal/adapter/postgres"
	"armatupc/internal/domain"
)

const table = "products"

var columns = []string{
	"id", "name", "sku", "brand", "category", "slug",
	"description", "image_url", "price", "stock", "specs",
	"created_at", "updated_at",
}

// Repo provides component persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new product repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListFilter narrows List results.
type ListFilter struct {
	Category *domain.Category
	Search   string // case-insensitive substring match on name
	Limit    int
	Offset   int
}

// UpdateParams carries the mutable product fields. Nil means "leave
// unchanged".
type UpdateParams struct {
	Name        *string
	SKU         *string
	Brand       *string
	Category    *domain.Category
	Description *string
	ImageURL    *string
	Price       *int64
	Stock       *int
	Specs       map[string]string
}

// Create inserts a new component together with its price entries.
func (r *Repo) Create(ctx context.Context, c *domain.Component) (*domain.Component, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	specs, err := marshalSpecs(c.Specs)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", c.Slug, err)
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns(columns[:len(columns)-2]...).
		Values(c.ID, c.Name, c.SKU, c.Brand, c.Category.String(), c.Slug,
			c.Description, c.ImageURL, c.Price, c.Stock, specs).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	created := *c
	if err := q.QueryRow(ctx, sql, args...).Scan(&created.CreatedAt, &created.UpdatedAt); err != nil {
		return nil, postgres.MapError(err, "product", c.Slug)
	}

	if len(c.Prices) > 0 {
		if err := r.AddPrices(ctx, c.ID, c.Prices); err != nil {
			return nil, err
		}
	}
	created.Prices = c.Prices

	return &created, nil
}

// GetBySlug returns a component with its prices and price history.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Component, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	c, err := scanComponent(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "product", slug)
	}

	if err := r.attachPrices(ctx, []*domain.Component{c}); err != nil {
		return nil, err
	}
	if err := r.attachHistory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// GetBySlugs returns the components matching the given slugs, keyed by
// slug. Missing slugs are simply absent from the result.
func (r *Repo) GetBySlugs(ctx context.Context, slugs []string) (map[string]*domain.Component, error) {
	if len(slugs) == 0 {
		return map[string]*domain.Component{}, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"slug": slugs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "product", slugs)
	}
	defer rows.Close()

	var list []*domain.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, postgres.MapError(err, "product", slugs)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "product", slugs)
	}

	if err := r.attachPrices(ctx, list); err != nil {
		return nil, err
	}

	bySlug := make(map[string]*domain.Component, len(list))
	for _, c := range list {
		bySlug[c.Slug] = c
	}
	return bySlug, nil
}

// List returns components ordered by name, with prices attached.
func (r *Repo) List(ctx context.Context, filter ListFilter) ([]*domain.Component, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("name ASC")

	if filter.Category != nil {
		builder = builder.Where(sq.Eq{"category": filter.Category.String()})
	}
	if filter.Search != "" {
		builder = builder.Where(sq.ILike{"name": "%" + filter.Search + "%"})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "product", "list")
	}
	defer rows.Close()

	var list []*domain.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, postgres.MapError(err, "product", "list")
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "product", "list")
	}

	if err := r.attachPrices(ctx, list); err != nil {
		return nil, err
	}

	return list, nil
}

// Update modifies the given fields and bumps updated_at.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*domain.Component, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := postgres.Builder().
		Update(table).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns())

	if params.Name != nil {
		builder = builder.Set("name", *params.Name)
	}
	if params.SKU != nil {
		builder = builder.Set("sku", *params.SKU)
	}
	if params.Brand != nil {
		builder = builder.Set("brand", *params.Brand)
	}
	if params.Category != nil {
		builder = builder.Set("category", params.Category.String())
	}
	if params.Description != nil {
		builder = builder.Set("description", *params.Description)
	}
	if params.ImageURL != nil {
		builder = builder.Set("image_url", *params.ImageURL)
	}
	if params.Price != nil {
		builder = builder.Set("price", *params.Price)
	}
	if params.Stock != nil {
		builder = builder.Set("stock", *params.Stock)
	}
	if params.Specs != nil {
		specs, err := marshalSpecs(params.Specs)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", id, err)
		}
		builder = builder.Set("specs", specs)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	c, err := scanComponent(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "product", id)
	}

	if err := r.attachPrices(ctx, []*domain.Component{c}); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a component; prices and history follow via cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "product", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// AddPrices appends price entries for a product. Entries whose URL is
// already recorded for the product are skipped, which makes merging
// freshly discovered prices idempotent.
func (r *Repo) AddPrices(ctx context.Context, productID uuid.UUID, entries []domain.PriceEntry) error {
	if len(entries) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := postgres.Builder().
		Insert("product_prices").
		Columns("product_id", "store_id", "price", "url")
	for _, e := range entries {
		builder = builder.Values(productID, e.StoreID, e.Price, e.URL)
	}
	builder = builder.Suffix("ON CONFLICT (product_id, url) DO NOTHING")

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build insert prices: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "product_prices", productID)
	}
	return nil
}

// RecordHistoryPoint upserts the price point for the product's day.
// Re-recording the same day overwrites the earlier point.
func (r *Repo) RecordHistoryPoint(ctx context.Context, productID uuid.UUID, point domain.PriceHistoryPoint) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Insert("price_history").
		Columns("product_id", "day", "normal_price", "offer_price").
		Values(productID, point.Date, point.NormalPrice, point.OfferPrice).
		Suffix("ON CONFLICT (product_id, day) DO UPDATE SET normal_price = EXCLUDED.normal_price, offer_price = EXCLUDED.offer_price").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert history: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "price_history", productID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func (r *Repo) attachPrices(ctx context.Context, list []*domain.Component) error {
	if len(list) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	ids := make([]uuid.UUID, len(list))
	byID := make(map[uuid.UUID]*domain.Component, len(list))
	for i, c := range list {
		ids[i] = c.ID
		byID[c.ID] = c
	}

	sql, args, err := postgres.Builder().
		Select("product_id", "store_id", "price", "url").
		From("product_prices").
		Where(sq.Eq{"product_id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build select prices: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "product_prices", ids)
	}
	defer rows.Close()

	for rows.Next() {
		var productID uuid.UUID
		var e domain.PriceEntry
		if err := rows.Scan(&productID, &e.StoreID, &e.Price, &e.URL); err != nil {
			return postgres.MapError(err, "product_prices", ids)
		}
		if c, ok := byID[productID]; ok {
			c.Prices = append(c.Prices, e)
		}
	}
	return rows.Err()
}

func (r *Repo) attachHistory(ctx context.Context, c *domain.Component) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select("day", "normal_price", "offer_price").
		From("price_history").
		Where(sq.Eq{"product_id": c.ID}).
		OrderBy("day ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build select history: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "price_history", c.ID)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.PriceHistoryPoint
		if err := rows.Scan(&p.Date, &p.NormalPrice, &p.OfferPrice); err != nil {
			return postgres.MapError(err, "price_history", c.ID)
		}
		c.PriceHistory = append(c.PriceHistory, p)
	}
	return rows.Err()
}

func scanComponent(row pgx.Row) (*domain.Component, error) {
	var c domain.Component
	var category string
	var specs []byte

	err := row.Scan(&c.ID, &c.Name, &c.SKU, &c.Brand, &category, &c.Slug,
		&c.Description, &c.ImageURL, &c.Price, &c.Stock, &specs,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	c.Category = domain.Category(category)
	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &c.Specs); err != nil {
			return nil, fmt.Errorf("unmarshal specs: %w", err)
		}
	}
	return &c, nil
}

func marshalSpecs(specs map[string]string) ([]byte, error) {
	if specs == nil {
		specs = map[string]string{}
	}
	b, err := json.Marshal(specs)
	if err != nil {
		return nil, fmt.Errorf("marshal specs: %w", err)
	}
	return b, nil
}

func joinColumns() string {
	out := columns[0]
	for _, c := range columns[1:] {
		out += ", " + c
	}
	return out
}
