// Package build implements saved-build persistence using PostgreSQL.
package build

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"armatupc/internal/adapter/postgres"
	"armatupc/internal/domain"
)

const table = "builds"

// Repo provides saved-build persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new build repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a saved build. Builds are immutable after creation.
func (r *Repo) Create(ctx context.Context, b *domain.Build) (*domain.Build, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	components, err := json.Marshal(b.Components)
	if err != nil {
		return nil, fmt.Errorf("marshal components: %w", err)
	}

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "user_id", "name", "components", "total_price").
		Values(b.ID, b.UserID, b.Name, components, b.TotalPrice).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	created := *b
	if err := q.QueryRow(ctx, sql, args...).Scan(&created.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "build", b.ID)
	}
	return &created, nil
}

// GetByID returns a build by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Build, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select("id", "user_id", "name", "components", "total_price", "created_at").
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	b, err := scanBuild(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "build", id)
	}
	return b, nil
}

// ListByUser returns the user's builds, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Build, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select("id", "user_id", "name", "components", "total_price", "created_at").
		From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "build", userID)
	}
	defer rows.Close()

	var list []*domain.Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, postgres.MapError(err, "build", userID)
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "build", userID)
	}
	return list, nil
}

// Delete removes the user's build. The user filter keeps one user from
// deleting another's build.
func (r *Repo) Delete(ctx context.Context, userID, buildID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Delete(table).
		Where(sq.Eq{"id": buildID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "build", buildID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("build %s: %w", buildID, domain.ErrNotFound)
	}
	return nil
}

func scanBuild(row pgx.Row) (*domain.Build, error) {
	var b domain.Build
	var components []byte

	err := row.Scan(&b.ID, &b.UserID, &b.Name, &components, &b.TotalPrice, &b.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(components, &b.Components); err != nil {
		return nil, fmt.Errorf("unmarshal components: %w", err)
	}
	return &b, nil
}
