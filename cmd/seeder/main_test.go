package main

import (
	"testing"

	"github.com/google/uuid"
)

func TestSeedProduct_Component_AssignsUniqueIDs(t *testing.T) {
	t.Parallel()

	seen := make(map[uuid.UUID]string, len(starterCatalog))
	for _, p := range starterCatalog {
		c := p.component()
		if c.ID == uuid.Nil {
			t.Fatalf("component %q has zero ID", c.Name)
		}
		if prev, ok := seen[c.ID]; ok {
			t.Fatalf("components %q and %q share ID %s", prev, c.Name, c.ID)
		}
		seen[c.ID] = c.Name

		if c.Slug == "" {
			t.Errorf("component %q has empty slug", c.Name)
		}
		if len(c.Prices) != 2 {
			t.Errorf("component %q has %d prices, want 2", c.Name, len(c.Prices))
		}
	}
}
