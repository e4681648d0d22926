package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"armatupc/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates an active customer with password "password123".
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return seedUserWithRole(t, pool, domain.UserRoleCustomer)
}

// SeedSuperuser creates an active superuser with password "password123".
func SeedSuperuser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return seedUserWithRole(t, pool, domain.UserRoleSuperuser)
}

func seedUserWithRole(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("testhelper: SeedUser hash password: %v", err)
	}

	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		Username:     "testuser-" + suffix,
		PasswordHash: string(hash),
		Role:         role,
		Status:       domain.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, email, username, password_hash, role, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Email, user.Username, user.PasswordHash, string(user.Role), string(user.Status), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedProduct creates a product in the given category with two price
// entries (one per known store 1 and 2). Returns a fully populated
// domain.Component.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, category domain.Category, price int64) domain.Component {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)

	name := "Test " + string(category) + " " + suffix
	c := domain.Component{
		ID:          uuid.New(),
		Name:        name,
		SKU:         "SKU-" + suffix,
		Brand:       "TestBrand",
		Category:    category,
		Slug:        domain.Slugify(name),
		Description: "Seeded component " + suffix,
		ImageURL:    "https://example.com/img/" + suffix + ".jpg",
		Price:       price,
		Stock:       5,
		Specs:       map[string]string{"model": suffix},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	specs, err := json.Marshal(c.Specs)
	if err != nil {
		t.Fatalf("testhelper: SeedProduct marshal specs: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO products (id, name, sku, brand, category, slug, description, image_url, price, stock, specs, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		c.ID, c.Name, c.SKU, c.Brand, c.Category.String(), c.Slug, c.Description, c.ImageURL, c.Price, c.Stock, specs, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProduct insert product: %v", err)
	}

	c.Prices = []domain.PriceEntry{
		{StoreID: "store-1", Price: price, URL: "https://store-1.example.com/p/" + suffix},
		{StoreID: "store-2", Price: price + 10000, URL: "https://store-2.example.com/p/" + suffix},
	}
	for _, e := range c.Prices {
		_, err = pool.Exec(ctx,
			`INSERT INTO product_prices (product_id, store_id, price, url)
			 VALUES ($1, $2, $3, $4)`,
			c.ID, e.StoreID, e.Price, e.URL,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedProduct insert price: %v", err)
		}
	}

	return c
}

// SeedBuild creates a saved build for the user referencing the given
// component slugs by category.
func SeedBuild(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, components map[domain.Category][]string, total int64) domain.Build {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)

	b := domain.Build{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       "Build " + suffix,
		Components: components,
		TotalPrice: total,
		CreatedAt:  now,
	}

	comps, err := json.Marshal(b.Components)
	if err != nil {
		t.Fatalf("testhelper: SeedBuild marshal components: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO builds (id, user_id, name, components, total_price, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID, b.UserID, b.Name, comps, b.TotalPrice, b.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBuild insert build: %v", err)
	}

	return b
}
