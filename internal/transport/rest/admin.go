package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"armatupc/internal/domain"
	"armatupc/internal/service/ai"
	"armatupc/internal/service/catalog"
)

// catalogAdminService defines the catalog management operations needed
// by AdminHandler.
type catalogAdminService interface {
	Create(ctx context.Context, input catalog.CreateInput) (*domain.Component, error)
	Update(ctx context.Context, id uuid.UUID, input catalog.UpdateInput) (*domain.Component, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MergePrices(ctx context.Context, slug string, entries []catalog.PriceInput) (*domain.Component, error)
}

// aiAdminService defines the assistant drafting flows needed by
// AdminHandler.
type aiAdminService interface {
	EnrichProduct(ctx context.Context, productName string) (*ai.ProductDraft, error)
	DiscoverPrices(ctx context.Context, productName string) ([]domain.PriceEntry, error)
}

// userAdminService defines the account management operations needed by
// AdminHandler.
type userAdminService interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, int64, error)
	SetUserRole(ctx context.Context, targetID uuid.UUID, role domain.UserRole) (*domain.User, error)
	SetUserStatus(ctx context.Context, targetID uuid.UUID, status domain.UserStatus) (*domain.User, error)
}

// AdminHandler serves superuser-only endpoints: catalog management, AI
// drafting and account administration. Role enforcement happens in the
// admin middleware on the route group.
type AdminHandler struct {
	catalog catalogAdminService
	ai      aiAdminService
	users   userAdminService
	log     *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(catalogSvc catalogAdminService, aiSvc aiAdminService, userSvc userAdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		catalog: catalogSvc,
		ai:      aiSvc,
		users:   userSvc,
		log:     logger.With("handler", "admin"),
	}
}

type createProductRequest struct {
	Name        string              `json:"name"`
	SKU         string              `json:"sku"`
	Brand       string              `json:"brand"`
	Category    string              `json:"category"`
	Description string              `json:"description"`
	ImageURL    string              `json:"imageUrl"`
	Price       int64               `json:"price"`
	Stock       int                 `json:"stock"`
	Specs       map[string]string   `json:"specs"`
	Prices      []priceEntryRequest `json:"prices"`
}

type updateProductRequest struct {
	Name        *string           `json:"name"`
	SKU         *string           `json:"sku"`
	Brand       *string           `json:"brand"`
	Category    *string           `json:"category"`
	Description *string           `json:"description"`
	ImageURL    *string           `json:"imageUrl"`
	Price       *int64            `json:"price"`
	Stock       *int              `json:"stock"`
	Specs       map[string]string `json:"specs"`
}

type priceEntryRequest struct {
	StoreID string `json:"storeId"`
	Price   int64  `json:"price"`
	URL     string `json:"url"`
}

type mergePricesRequest struct {
	Prices []priceEntryRequest `json:"prices"`
}

type productNameRequest struct {
	ProductName string `json:"productName"`
}

type setRoleRequest struct {
	Role string `json:"role"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// CreateProduct handles POST /admin/products.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.catalog.Create(r.Context(), catalog.CreateInput{
		Name:        req.Name,
		SKU:         req.SKU,
		Brand:       req.Brand,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Stock:       req.Stock,
		Specs:       req.Specs,
		Prices:      toPriceInputs(req.Prices),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toComponentResponse(c))
}

// UpdateProduct handles PATCH /admin/products/{id}.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.catalog.Update(r.Context(), id, catalog.UpdateInput{
		Name:        req.Name,
		SKU:         req.SKU,
		Brand:       req.Brand,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Stock:       req.Stock,
		Specs:       req.Specs,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toComponentResponse(c))
}

// DeleteProduct handles DELETE /admin/products/{id}.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MergePrices handles POST /admin/products/{slug}/prices. New store
// offers are merged into the product and the day's history point is
// recorded.
func (h *AdminHandler) MergePrices(w http.ResponseWriter, r *http.Request) {
	var req mergePricesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.catalog.MergePrices(r.Context(), r.PathValue("slug"), toPriceInputs(req.Prices))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toComponentResponse(c))
}

// EnrichProduct handles POST /admin/ai/enrich: drafts the full product
// form from a bare product name. The draft is returned for review, not
// saved.
func (h *AdminHandler) EnrichProduct(w http.ResponseWriter, r *http.Request) {
	var req productNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := h.ai.EnrichProduct(r.Context(), req.ProductName)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// DiscoverPrices handles POST /admin/ai/prices: drafts per-store price
// entries for a product name. Entries are returned for review, not
// merged.
func (h *AdminHandler) DiscoverPrices(w http.ResponseWriter, r *http.Request) {
	var req productNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entries, err := h.ai.DiscoverPrices(r.Context(), req.ProductName)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]priceResponse, 0, len(entries))
	for _, e := range entries {
		pr := priceResponse{StoreID: e.StoreID, Price: e.Price, URL: e.URL}
		if store, ok := domain.StoreByID(e.StoreID); ok {
			pr.StoreName = store.Name
			pr.LogoURL = store.LogoURL
		}
		out = append(out, pr)
	}
	writeJSON(w, http.StatusOK, map[string]any{"prices": out})
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := parseIntParam(q.Get("limit"), 50)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	offset, err := parseIntParam(q.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid offset")
		return
	}

	users, total, err := h.users.ListUsers(r.Context(), limit, offset)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": out, "total": total})
}

// SetUserRole handles PUT /admin/users/{id}/role.
func (h *AdminHandler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req setRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.SetUserRole(r.Context(), id, domain.UserRole(req.Role))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// SetUserStatus handles PUT /admin/users/{id}/status.
func (h *AdminHandler) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.SetUserStatus(r.Context(), id, domain.UserStatus(req.Status))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func toPriceInputs(entries []priceEntryRequest) []catalog.PriceInput {
	out := make([]catalog.PriceInput, 0, len(entries))
	for _, e := range entries {
		out = append(out, catalog.PriceInput{StoreID: e.StoreID, Price: e.Price, URL: e.URL})
	}
	return out
}
