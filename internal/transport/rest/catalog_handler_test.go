package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"armatupc/internal/domain"
	"armatupc/internal/service/catalog"
)

type catalogServiceMock struct {
	ListFunc      func(ctx context.Context, input catalog.ListInput) ([]*domain.Component, error)
	GetBySlugFunc func(ctx context.Context, slug string) (*domain.Component, error)
}

func (m *catalogServiceMock) List(ctx context.Context, input catalog.ListInput) ([]*domain.Component, error) {
	return m.ListFunc(ctx, input)
}

func (m *catalogServiceMock) GetBySlug(ctx context.Context, slug string) (*domain.Component, error) {
	return m.GetBySlugFunc(ctx, slug)
}

func sampleComponent() *domain.Component {
	return &domain.Component{
		ID:       uuid.New(),
		Name:     "AMD Ryzen 7 9800X3D",
		Brand:    "AMD",
		Category: domain.CategoryCPU,
		Slug:     "amd-ryzen-7-9800x3d",
		Price:    599990,
		Stock:    5,
		Prices: []domain.PriceEntry{
			{StoreID: "store-1", Price: 589990, URL: "https://pcfactory.cl/p/1"},
			{StoreID: "store-2", Price: 609990, URL: "https://spdigital.cl/p/1"},
		},
		PriceHistory: []domain.PriceHistoryPoint{
			{Date: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), NormalPrice: 599990, OfferPrice: 589990},
		},
	}
}

func TestCatalogList_PassesFilters(t *testing.T) {
	t.Parallel()

	var got catalog.ListInput
	svc := &catalogServiceMock{
		ListFunc: func(_ context.Context, input catalog.ListInput) ([]*domain.Component, error) {
			got = input
			return []*domain.Component{sampleComponent()}, nil
		},
	}
	h := NewCatalogHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/products?category=CPU&search=ryzen&limit=10&offset=20", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Category != "CPU" || got.Search != "ryzen" || got.Limit != 10 || got.Offset != 20 {
		t.Errorf("unexpected filter passed to service: %+v", got)
	}

	var resp struct {
		Products []componentResponse `json:"products"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(resp.Products))
	}
	if resp.Products[0].BestPrice != 589990 {
		t.Errorf("expected best price 589990, got %d", resp.Products[0].BestPrice)
	}
}

func TestCatalogList_InvalidLimit(t *testing.T) {
	t.Parallel()

	h := NewCatalogHandler(&catalogServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/products?limit=abc", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCatalogGet_ResolvesStoreNames(t *testing.T) {
	t.Parallel()

	svc := &catalogServiceMock{
		GetBySlugFunc: func(_ context.Context, slug string) (*domain.Component, error) {
			if slug != "amd-ryzen-7-9800x3d" {
				t.Errorf("expected slug from path, got %q", slug)
			}
			return sampleComponent(), nil
		},
	}
	h := NewCatalogHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/products/amd-ryzen-7-9800x3d", nil)
	req.SetPathValue("slug", "amd-ryzen-7-9800x3d")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp componentResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Prices) != 2 {
		t.Fatalf("expected 2 price entries, got %d", len(resp.Prices))
	}
	if resp.Prices[0].StoreName != "PC Factory" {
		t.Errorf("expected store name resolved, got %q", resp.Prices[0].StoreName)
	}
	if len(resp.History) != 1 || resp.History[0].Date != "2026-08-29" {
		t.Errorf("expected history point for 2026-08-29, got %+v", resp.History)
	}
}

func TestCatalogGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := &catalogServiceMock{
		GetBySlugFunc: func(_ context.Context, _ string) (*domain.Component, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewCatalogHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/products/nope", nil)
	req.SetPathValue("slug", "nope")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCatalogStores_ListsKnownRetailers(t *testing.T) {
	t.Parallel()

	h := NewCatalogHandler(&catalogServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/stores", nil)
	rec := httptest.NewRecorder()

	h.Stores(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Stores []storeResponse `json:"stores"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Stores) != len(domain.KnownStores) {
		t.Fatalf("expected %d stores, got %d", len(domain.KnownStores), len(resp.Stores))
	}
	if resp.Stores[0].ID != "store-1" {
		t.Errorf("expected store-1 first, got %q", resp.Stores[0].ID)
	}
}
