package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"armatupc/internal/adapter/postgres/product"
	"armatupc/internal/domain"
)

var _ productRepo = &productRepoMock{}

type productRepoMock struct {
	CreateFunc             func(ctx context.Context, c *domain.Component) (*domain.Component, error)
	GetBySlugFunc          func(ctx context.Context, slug string) (*domain.Component, error)
	GetBySlugsFunc         func(ctx context.Context, slugs []string) (map[string]*domain.Component, error)
	ListFunc               func(ctx context.Context, filter product.ListFilter) ([]*domain.Component, error)
	UpdateFunc             func(ctx context.Context, id uuid.UUID, params product.UpdateParams) (*domain.Component, error)
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	AddPricesFunc          func(ctx context.Context, productID uuid.UUID, entries []domain.PriceEntry) error
	RecordHistoryPointFunc func(ctx context.Context, productID uuid.UUID, point domain.PriceHistoryPoint) error

	calls struct {
		Create    []struct{ C *domain.Component }
		List      []struct{ Filter product.ListFilter }
		AddPrices []struct {
			ProductID uuid.UUID
			Entries   []domain.PriceEntry
		}
		RecordHistoryPoint []struct {
			ProductID uuid.UUID
			Point     domain.PriceHistoryPoint
		}
	}
	lock sync.RWMutex
}

func (mock *productRepoMock) Create(ctx context.Context, c *domain.Component) (*domain.Component, error) {
	if mock.CreateFunc == nil {
		panic("productRepoMock.CreateFunc: method is nil but productRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ C *domain.Component }{C: c})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *productRepoMock) CreateCalls() []struct{ C *domain.Component } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *productRepoMock) GetBySlug(ctx context.Context, slug string) (*domain.Component, error) {
	if mock.GetBySlugFunc == nil {
		panic("productRepoMock.GetBySlugFunc: method is nil but productRepo.GetBySlug was just called")
	}
	return mock.GetBySlugFunc(ctx, slug)
}

func (mock *productRepoMock) GetBySlugs(ctx context.Context, slugs []string) (map[string]*domain.Component, error) {
	if mock.GetBySlugsFunc == nil {
		panic("productRepoMock.GetBySlugsFunc: method is nil but productRepo.GetBySlugs was just called")
	}
	return mock.GetBySlugsFunc(ctx, slugs)
}

func (mock *productRepoMock) List(ctx context.Context, filter product.ListFilter) ([]*domain.Component, error) {
	if mock.ListFunc == nil {
		panic("productRepoMock.ListFunc: method is nil but productRepo.List was just called")
	}
	mock.lock.Lock()
	mock.calls.List = append(mock.calls.List, struct{ Filter product.ListFilter }{Filter: filter})
	mock.lock.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *productRepoMock) ListCalls() []struct{ Filter product.ListFilter } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.List
}

func (mock *productRepoMock) Update(ctx context.Context, id uuid.UUID, params product.UpdateParams) (*domain.Component, error) {
	if mock.UpdateFunc == nil {
		panic("productRepoMock.UpdateFunc: method is nil but productRepo.Update was just called")
	}
	return mock.UpdateFunc(ctx, id, params)
}

func (mock *productRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("productRepoMock.DeleteFunc: method is nil but productRepo.Delete was just called")
	}
	return mock.DeleteFunc(ctx, id)
}

func (mock *productRepoMock) AddPrices(ctx context.Context, productID uuid.UUID, entries []domain.PriceEntry) error {
	if mock.AddPricesFunc == nil {
		panic("productRepoMock.AddPricesFunc: method is nil but productRepo.AddPrices was just called")
	}
	mock.lock.Lock()
	mock.calls.AddPrices = append(mock.calls.AddPrices, struct {
		ProductID uuid.UUID
		Entries   []domain.PriceEntry
	}{ProductID: productID, Entries: entries})
	mock.lock.Unlock()
	return mock.AddPricesFunc(ctx, productID, entries)
}

func (mock *productRepoMock) AddPricesCalls() []struct {
	ProductID uuid.UUID
	Entries   []domain.PriceEntry
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.AddPrices
}

func (mock *productRepoMock) RecordHistoryPoint(ctx context.Context, productID uuid.UUID, point domain.PriceHistoryPoint) error {
	if mock.RecordHistoryPointFunc == nil {
		panic("productRepoMock.RecordHistoryPointFunc: method is nil but productRepo.RecordHistoryPoint was just called")
	}
	mock.lock.Lock()
	mock.calls.RecordHistoryPoint = append(mock.calls.RecordHistoryPoint, struct {
		ProductID uuid.UUID
		Point     domain.PriceHistoryPoint
	}{ProductID: productID, Point: point})
	mock.lock.Unlock()
	return mock.RecordHistoryPointFunc(ctx, productID, point)
}

func (mock *productRepoMock) RecordHistoryPointCalls() []struct {
	ProductID uuid.UUID
	Point     domain.PriceHistoryPoint
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.RecordHistoryPoint
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		return fn(ctx)
	}
	return mock.RunInTxFunc(ctx, fn)
}
