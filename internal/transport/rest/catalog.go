package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"armatupc/internal/domain"
	"armatupc/internal/service/catalog"
)

// catalogService defines the minimal interface needed by CatalogHandler.
type catalogService interface {
	List(ctx context.Context, input catalog.ListInput) ([]*domain.Component, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Component, error)
}

// CatalogHandler serves the public product catalog.
type CatalogHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: logger.With("handler", "catalog")}
}

type componentResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	SKU         string                 `json:"sku,omitempty"`
	Brand       string                 `json:"brand"`
	Category    string                 `json:"category"`
	Slug        string                 `json:"slug"`
	Description string                 `json:"description,omitempty"`
	ImageURL    string                 `json:"imageUrl,omitempty"`
	Price       int64                  `json:"price"`
	BestPrice   int64                  `json:"bestPrice"`
	Stock       int                    `json:"stock"`
	Specs       map[string]string      `json:"specs,omitempty"`
	Prices      []priceResponse        `json:"prices"`
	History     []historyPointResponse `json:"priceHistory,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

type priceResponse struct {
	StoreID   string `json:"storeId"`
	StoreName string `json:"storeName"`
	LogoURL   string `json:"logoUrl,omitempty"`
	Price     int64  `json:"price"`
	URL       string `json:"url"`
}

type historyPointResponse struct {
	Date        string `json:"date"`
	NormalPrice int64  `json:"normalPrice"`
	OfferPrice  int64  `json:"offerPrice"`
}

type storeResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl,omitempty"`
}

// List handles GET /products. Supported query parameters: category,
// search, limit, offset.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := parseIntParam(q.Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	offset, err := parseIntParam(q.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid offset")
		return
	}

	components, err := h.svc.List(r.Context(), catalog.ListInput{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]componentResponse, 0, len(components))
	for _, c := range components {
		out = append(out, toComponentResponse(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": out})
}

// Get handles GET /products/{slug}. The detail view includes the full
// per-store price list and the recorded price history.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	c, err := h.svc.GetBySlug(r.Context(), slug)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toComponentResponse(c))
}

// Stores handles GET /stores: the fixed set of tracked retailers.
func (h *CatalogHandler) Stores(w http.ResponseWriter, _ *http.Request) {
	out := make([]storeResponse, 0, len(domain.KnownStores))
	for _, s := range domain.KnownStores {
		out = append(out, storeResponse{ID: s.ID, Name: s.Name, LogoURL: s.LogoURL})
	}
	writeJSON(w, http.StatusOK, map[string]any{"stores": out})
}

func parseIntParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func toComponentResponse(c *domain.Component) componentResponse {
	resp := componentResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		SKU:         c.SKU,
		Brand:       c.Brand,
		Category:    c.Category.String(),
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		Price:       c.Price,
		BestPrice:   c.BestPrice(),
		Stock:       c.Stock,
		Specs:       c.Specs,
		Prices:      make([]priceResponse, 0, len(c.Prices)),
	}
	for _, p := range c.Prices {
		pr := priceResponse{StoreID: p.StoreID, Price: p.Price, URL: p.URL}
		if store, ok := domain.StoreByID(p.StoreID); ok {
			pr.StoreName = store.Name
			pr.LogoURL = store.LogoURL
		}
		resp.Prices = append(resp.Prices, pr)
	}
	for _, hp := range c.PriceHistory {
		resp.History = append(resp.History, historyPointResponse{
			Date:        hp.Date.Format("2006-01-02"),
			NormalPrice: hp.NormalPrice,
			OfferPrice:  hp.OfferPrice,
		})
	}
	return resp
}
