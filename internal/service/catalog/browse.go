package catalog

import (
	"context"
	"fmt"

	"armatupc/internal/adapter/postgres/product"
	"armatupc/internal/domain"
)

// List returns catalog components matching the filter. The result size is
// capped by the configured list limit.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.Component, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	filter := product.ListFilter{
		Search: input.Search,
		Limit:  input.Limit,
		Offset: input.Offset,
	}
	if input.Category != "" {
		cat := domain.Category(input.Category)
		filter.Category = &cat
	}
	if filter.Limit <= 0 || filter.Limit > s.cfg.ListLimit {
		filter.Limit = s.cfg.ListLimit
	}

	list, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("catalog.List: %w", err)
	}
	return list, nil
}

// GetBySlug returns a single component with prices and price history.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Component, error) {
	if slug == "" {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "slug", Message: "required"},
		}}
	}

	c, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("catalog.GetBySlug: %w", err)
	}
	return c, nil
}

// GetBySlugs returns components keyed by slug. Unknown slugs are absent.
func (s *Service) GetBySlugs(ctx context.Context, slugs []string) (map[string]*domain.Component, error) {
	got, err := s.products.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("catalog.GetBySlugs: %w", err)
	}
	return got, nil
}
