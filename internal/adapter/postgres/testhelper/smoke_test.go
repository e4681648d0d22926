package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_MigrationsApplied(t *testing.T) {
	pool := SetupTestDB(t)

	// Every migrated table must be queryable on a fresh database.
	for _, table := range []string{"users", "refresh_tokens", "products", "product_prices", "price_history", "builds"} {
		var count int
		if err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
			t.Fatalf("expected table %s to exist: %v", table, err)
		}
		if count != 0 {
			t.Errorf("expected empty %s table, got %d rows", table, count)
		}
	}
}
