package builder

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"armatupc/internal/domain"
)

// productResolver resolves component slugs against the catalog.
type productResolver interface {
	GetBySlugs(ctx context.Context, slugs []string) (map[string]*domain.Component, error)
}

// buildRepo defines the saved-build repository interface needed by the
// builder service.
type buildRepo interface {
	Create(ctx context.Context, b *domain.Build) (*domain.Build, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Build, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Build, error)
	Delete(ctx context.Context, userID, buildID uuid.UUID) error
}

// Service implements configurator operations.
type Service struct {
	log      *slog.Logger
	products productResolver
	builds   buildRepo
}

// NewService creates a new builder service instance.
func NewService(logger *slog.Logger, products productResolver, builds buildRepo) *Service {
	return &Service{
		log:      logger.With("service", "builder"),
		products: products,
		builds:   builds,
	}
}
