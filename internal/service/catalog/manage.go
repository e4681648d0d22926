package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"armatupc/internal/adapter/postgres/product"
	"armatupc/internal/domain"
)

// Create adds a new component to the catalog. The slug is derived from
// the name. Returns ErrAlreadyExists when the slug is taken.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Component, error) {
	input.Name = strings.TrimSpace(input.Name)

	if err := input.Validate(s.cfg.MaxPriceEntries, s.cfg.MaxSpecs); err != nil {
		return nil, err
	}

	prices, dropped := filterKnownStores(input.Prices)
	if dropped > 0 {
		s.log.WarnContext(ctx, "dropped price entries for unknown stores",
			slog.Int("count", dropped))
	}
	if len(prices) == 0 && input.Price > 0 {
		// No advertised offers yet: seed one entry at store-1 with
		// the reference price.
		prices = []domain.PriceEntry{{StoreID: domain.KnownStores[0].ID, Price: input.Price}}
	}

	c := &domain.Component{
		ID:          uuid.New(),
		Name:        input.Name,
		SKU:         input.SKU,
		Brand:       input.Brand,
		Category:    domain.Category(input.Category),
		Slug:        domain.Slugify(input.Name),
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Price:       input.Price,
		Stock:       input.Stock,
		Specs:       input.Specs,
		Prices:      prices,
	}

	var created *domain.Component
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.products.Create(txCtx, c)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("catalog.Create: %w", err)
	}

	s.log.InfoContext(ctx, "component created",
		slog.String("slug", created.Slug),
		slog.String("category", created.Category.String()))

	return created, nil
}

// Update modifies an existing component.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.Component, error) {
	if err := input.Validate(s.cfg.MaxSpecs); err != nil {
		return nil, err
	}

	params := product.UpdateParams{
		Name:        input.Name,
		SKU:         input.SKU,
		Brand:       input.Brand,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Price:       input.Price,
		Stock:       input.Stock,
		Specs:       input.Specs,
	}
	if input.Category != nil {
		cat := domain.Category(*input.Category)
		params.Category = &cat
	}

	updated, err := s.products.Update(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("catalog.Update: %w", err)
	}

	s.log.InfoContext(ctx, "component updated", slog.String("slug", updated.Slug))
	return updated, nil
}

// Delete removes a component from the catalog.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("catalog.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "component deleted", slog.String("id", id.String()))
	return nil
}

// MergePrices folds newly discovered store prices into the component.
// Entries for unknown stores are dropped with a warning, entries whose URL
// is already recorded are skipped, and the day's best price is written to
// the price history.
func (s *Service) MergePrices(ctx context.Context, slug string, entries []PriceInput) (*domain.Component, error) {
	c, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("catalog.MergePrices: %w", err)
	}

	prices, dropped := filterKnownStores(entries)
	if dropped > 0 {
		s.log.WarnContext(ctx, "dropped price entries for unknown stores",
			slog.String("slug", slug),
			slog.Int("count", dropped))
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if len(prices) > 0 {
			if err := s.products.AddPrices(txCtx, c.ID, prices); err != nil {
				return err
			}
		}

		merged, err := s.products.GetBySlug(txCtx, slug)
		if err != nil {
			return err
		}

		point := domain.PriceHistoryPoint{
			Date:        time.Now().UTC().Truncate(24 * time.Hour),
			NormalPrice: merged.Price,
			OfferPrice:  merged.BestPrice(),
		}
		if err := s.products.RecordHistoryPoint(txCtx, c.ID, point); err != nil {
			return err
		}

		c = merged
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog.MergePrices: %w", err)
	}

	return c, nil
}

// filterKnownStores keeps entries whose store is one of the tracked
// stores and reports how many were dropped.
func filterKnownStores(entries []PriceInput) ([]domain.PriceEntry, int) {
	var out []domain.PriceEntry
	dropped := 0
	for _, e := range entries {
		if _, ok := domain.StoreByID(e.StoreID); !ok {
			dropped++
			continue
		}
		out = append(out, domain.PriceEntry{
			StoreID: e.StoreID,
			Price:   e.Price,
			URL:     e.URL,
		})
	}
	return out, dropped
}
