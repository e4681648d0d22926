package builder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"armatupc/internal/domain"
)

// SaveBuildInput holds parameters for persisting a configuration.
type SaveBuildInput struct {
	Name      string
	Selection Selection
}

// Validate validates the save input.
func (i SaveBuildInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 128 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	if i.Selection.Count() == 0 {
		errs = append(errs, domain.FieldError{Field: "components", Message: "at least one component required"})
	}
	for cat := range i.Selection {
		if !cat.IsBuildSlot() {
			errs = append(errs, domain.FieldError{Field: "components", Message: "unknown slot category"})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SaveBuild persists the user's configuration. Every slug must exist in
// the catalog; the total is computed server side at save time and never
// changes afterwards.
func (s *Service) SaveBuild(ctx context.Context, userID uuid.UUID, input SaveBuildInput) (*domain.Build, error) {
	input.Name = strings.TrimSpace(input.Name)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	slugs := input.Selection.Slugs()
	resolved, err := s.products.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("builder.SaveBuild resolve: %w", err)
	}

	var total int64
	for _, slug := range slugs {
		c, ok := resolved[slug]
		if !ok {
			return nil, &domain.ValidationError{Errors: []domain.FieldError{
				{Field: "components", Message: fmt.Sprintf("unknown component %q", slug)},
			}}
		}
		total += c.BestPrice()
	}

	components := make(map[domain.Category][]string, len(input.Selection))
	for cat, catSlugs := range input.Selection {
		components[cat] = append([]string(nil), catSlugs...)
	}

	b := &domain.Build{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       input.Name,
		Components: components,
		TotalPrice: total,
	}

	created, err := s.builds.Create(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("builder.SaveBuild: %w", err)
	}

	s.log.InfoContext(ctx, "build saved",
		slog.String("build_id", created.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Int64("total_price", created.TotalPrice))

	return created, nil
}

// ListBuilds returns the user's saved builds, newest first.
func (s *Service) ListBuilds(ctx context.Context, userID uuid.UUID) ([]*domain.Build, error) {
	list, err := s.builds.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("builder.ListBuilds: %w", err)
	}
	return list, nil
}

// GetBuild returns one of the user's saved builds.
// Returns ErrNotFound when the build belongs to someone else.
func (s *Service) GetBuild(ctx context.Context, userID, buildID uuid.UUID) (*domain.Build, error) {
	b, err := s.builds.GetByID(ctx, buildID)
	if err != nil {
		return nil, fmt.Errorf("builder.GetBuild: %w", err)
	}
	if b.UserID != userID {
		return nil, fmt.Errorf("build %s: %w", buildID, domain.ErrNotFound)
	}
	return b, nil
}

// DeleteBuild removes one of the user's saved builds.
func (s *Service) DeleteBuild(ctx context.Context, userID, buildID uuid.UUID) error {
	if err := s.builds.Delete(ctx, userID, buildID); err != nil {
		return fmt.Errorf("builder.DeleteBuild: %w", err)
	}

	s.log.InfoContext(ctx, "build deleted",
		slog.String("build_id", buildID.String()),
		slog.String("user_id", userID.String()))
	return nil
}
