// Package catalog implements component catalog operations: browsing for
// customers and CRUD plus price merging for superusers.
package catalog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"armatupc/internal/adapter/postgres/product"
	"armatupc/internal/config"
	"armatupc/internal/domain"
)

// productRepo defines the product repository interface needed by catalog service.
type productRepo interface {
	Create(ctx context.Context, c *domain.Component) (*domain.Component, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Component, error)
	GetBySlugs(ctx context.Context, slugs []string) (map[string]*domain.Component, error)
	List(ctx context.Context, filter product.ListFilter) ([]*domain.Component, error)
	Update(ctx context.Context, id uuid.UUID, params product.UpdateParams) (*domain.Component, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddPrices(ctx context.Context, productID uuid.UUID, entries []domain.PriceEntry) error
	RecordHistoryPoint(ctx context.Context, productID uuid.UUID, point domain.PriceHistoryPoint) error
}

// txManager defines the transaction manager interface needed by catalog service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements catalog operations.
type Service struct {
	log      *slog.Logger
	products productRepo
	tx       txManager
	cfg      config.CatalogConfig
}

// NewService creates a new catalog service instance.
func NewService(logger *slog.Logger, products productRepo, tx txManager, cfg config.CatalogConfig) *Service {
	return &Service{
		log:      logger.With("service", "catalog"),
		products: products,
		tx:       tx,
		cfg:      cfg,
	}
}
