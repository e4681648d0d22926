package builder

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"armatupc/internal/domain"
)

var _ productResolver = &productResolverMock{}

type productResolverMock struct {
	GetBySlugsFunc func(ctx context.Context, slugs []string) (map[string]*domain.Component, error)

	calls struct {
		GetBySlugs []struct{ Slugs []string }
	}
	lock sync.RWMutex
}

func (mock *productResolverMock) GetBySlugs(ctx context.Context, slugs []string) (map[string]*domain.Component, error) {
	if mock.GetBySlugsFunc == nil {
		panic("productResolverMock.GetBySlugsFunc: method is nil but productResolver.GetBySlugs was just called")
	}
	mock.lock.Lock()
	mock.calls.GetBySlugs = append(mock.calls.GetBySlugs, struct{ Slugs []string }{Slugs: slugs})
	mock.lock.Unlock()
	return mock.GetBySlugsFunc(ctx, slugs)
}

var _ buildRepo = &buildRepoMock{}

type buildRepoMock struct {
	CreateFunc     func(ctx context.Context, b *domain.Build) (*domain.Build, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Build, error)
	ListByUserFunc func(ctx context.Context, userID uuid.UUID) ([]*domain.Build, error)
	DeleteFunc     func(ctx context.Context, userID, buildID uuid.UUID) error

	calls struct {
		Create []struct{ B *domain.Build }
	}
	lock sync.RWMutex
}

func (mock *buildRepoMock) Create(ctx context.Context, b *domain.Build) (*domain.Build, error) {
	if mock.CreateFunc == nil {
		panic("buildRepoMock.CreateFunc: method is nil but buildRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ B *domain.Build }{B: b})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, b)
}

func (mock *buildRepoMock) CreateCalls() []struct{ B *domain.Build } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *buildRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Build, error) {
	if mock.GetByIDFunc == nil {
		panic("buildRepoMock.GetByIDFunc: method is nil but buildRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *buildRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Build, error) {
	if mock.ListByUserFunc == nil {
		panic("buildRepoMock.ListByUserFunc: method is nil but buildRepo.ListByUser was just called")
	}
	return mock.ListByUserFunc(ctx, userID)
}

func (mock *buildRepoMock) Delete(ctx context.Context, userID, buildID uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("buildRepoMock.DeleteFunc: method is nil but buildRepo.Delete was just called")
	}
	return mock.DeleteFunc(ctx, userID, buildID)
}

// catalogOf builds a resolver over a fixed set of components keyed by slug.
func catalogOf(components ...*domain.Component) *productResolverMock {
	bySlug := make(map[string]*domain.Component, len(components))
	for _, c := range components {
		bySlug[c.Slug] = c
	}
	return &productResolverMock{
		GetBySlugsFunc: func(ctx context.Context, slugs []string) (map[string]*domain.Component, error) {
			out := make(map[string]*domain.Component)
			for _, slug := range slugs {
				if c, ok := bySlug[slug]; ok {
					out[slug] = c
				}
			}
			return out, nil
		},
	}
}
