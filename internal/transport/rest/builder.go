package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"armatupc/internal/domain"
	"armatupc/internal/service/builder"
	"armatupc/pkg/ctxutil"
)

// builderService defines the minimal interface needed by BuilderHandler.
type builderService interface {
	Summarize(ctx context.Context, sel builder.Selection) (*builder.Summary, error)
	Export(ctx context.Context, sel builder.Selection) ([]byte, error)
	SaveBuild(ctx context.Context, userID uuid.UUID, input builder.SaveBuildInput) (*domain.Build, error)
	ListBuilds(ctx context.Context, userID uuid.UUID) ([]*domain.Build, error)
	GetBuild(ctx context.Context, userID, buildID uuid.UUID) (*domain.Build, error)
	DeleteBuild(ctx context.Context, userID, buildID uuid.UUID) error
	ExportBuild(ctx context.Context, userID, buildID uuid.UUID) ([]byte, error)
}

// BuilderHandler serves the build configurator endpoints.
type BuilderHandler struct {
	svc builderService
	log *slog.Logger
}

// NewBuilderHandler creates a BuilderHandler.
func NewBuilderHandler(svc builderService, logger *slog.Logger) *BuilderHandler {
	return &BuilderHandler{svc: svc, log: logger.With("handler", "builder")}
}

type slotResponse struct {
	Category      string `json:"category"`
	Label         string `json:"label"`
	Icon          string `json:"icon"`
	AllowMultiple bool   `json:"allowMultiple"`
}

type selectionRequest struct {
	Components builder.Selection `json:"components"`
}

type selectedComponentResponse struct {
	Component componentResponse `json:"component"`
	Price     int64             `json:"price"`
	Offer     *priceResponse    `json:"offer,omitempty"`
}

type slotSummaryResponse struct {
	Category       string                      `json:"category"`
	Label          string                      `json:"label"`
	Icon           string                      `json:"icon"`
	SelectionLabel string                      `json:"selectionLabel"`
	Components     []selectedComponentResponse `json:"components"`
	Subtotal       int64                       `json:"subtotal"`
}

type summaryResponse struct {
	Slots      []slotSummaryResponse `json:"slots"`
	Count      int                   `json:"count"`
	TotalPrice int64                 `json:"totalPrice"`
}

type saveBuildRequest struct {
	Name       string            `json:"name"`
	Components builder.Selection `json:"components"`
}

type buildResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Components map[string][]string `json:"components"`
	TotalPrice int64               `json:"totalPrice"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// Slots handles GET /builder/slots: the fixed configurator layout.
func (h *BuilderHandler) Slots(w http.ResponseWriter, _ *http.Request) {
	out := make([]slotResponse, 0, len(builder.Slots()))
	for _, s := range builder.Slots() {
		out = append(out, slotResponse{
			Category:      s.Category.String(),
			Label:         s.Label,
			Icon:          s.Icon,
			AllowMultiple: s.AllowMultiple,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": out})
}

// Summarize handles POST /builder/summary. The client posts its current
// selection and receives the resolved per-slot view with prices.
func (h *BuilderHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := h.svc.Summarize(r.Context(), req.Components)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

// Export handles POST /builder/export: an Excel snapshot of the posted
// selection, without requiring a saved build.
func (h *BuilderHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	data, err := h.svc.Export(r.Context(), req.Components)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeSpreadsheet(w, "cotizacion.xlsx", data)
}

// SaveBuild handles POST /builds.
func (h *BuilderHandler) SaveBuild(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req saveBuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	build, err := h.svc.SaveBuild(r.Context(), userID, builder.SaveBuildInput{
		Name:      req.Name,
		Selection: req.Components,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBuildResponse(build))
}

// ListBuilds handles GET /builds.
func (h *BuilderHandler) ListBuilds(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	builds, err := h.svc.ListBuilds(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]buildResponse, 0, len(builds))
	for _, b := range builds {
		out = append(out, toBuildResponse(b))
	}
	writeJSON(w, http.StatusOK, map[string]any{"builds": out})
}

// GetBuild handles GET /builds/{id}.
func (h *BuilderHandler) GetBuild(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	buildID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid build id")
		return
	}

	build, err := h.svc.GetBuild(r.Context(), userID, buildID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toBuildResponse(build))
}

// DeleteBuild handles DELETE /builds/{id}.
func (h *BuilderHandler) DeleteBuild(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	buildID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid build id")
		return
	}

	if err := h.svc.DeleteBuild(r.Context(), userID, buildID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportBuild handles GET /builds/{id}/export.
func (h *BuilderHandler) ExportBuild(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	buildID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid build id")
		return
	}

	data, err := h.svc.ExportBuild(r.Context(), userID, buildID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeSpreadsheet(w, fmt.Sprintf("build-%s.xlsx", buildID), data)
}

func writeSpreadsheet(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

func toSummaryResponse(s *builder.Summary) summaryResponse {
	out := summaryResponse{
		Slots:      make([]slotSummaryResponse, 0, len(s.Slots)),
		Count:      s.Count,
		TotalPrice: s.TotalPrice,
	}
	for _, slot := range s.Slots {
		sr := slotSummaryResponse{
			Category:       slot.Slot.Category.String(),
			Label:          slot.Slot.Label,
			Icon:           slot.Slot.Icon,
			SelectionLabel: slot.Label,
			Components:     make([]selectedComponentResponse, 0, len(slot.Components)),
			Subtotal:       slot.Subtotal,
		}
		for _, sc := range slot.Components {
			resp := selectedComponentResponse{
				Component: toComponentResponse(sc.Component),
				Price:     sc.Price,
			}
			if sc.Offer != nil {
				pr := priceResponse{StoreID: sc.Offer.StoreID, Price: sc.Offer.Price, URL: sc.Offer.URL}
				if store, ok := domain.StoreByID(sc.Offer.StoreID); ok {
					pr.StoreName = store.Name
					pr.LogoURL = store.LogoURL
				}
				resp.Offer = &pr
			}
			sr.Components = append(sr.Components, resp)
		}
		out.Slots = append(out.Slots, sr)
	}
	return out
}

func toBuildResponse(b *domain.Build) buildResponse {
	components := make(map[string][]string, len(b.Components))
	for cat, slugs := range b.Components {
		components[cat.String()] = slugs
	}
	return buildResponse{
		ID:         b.ID.String(),
		Name:       b.Name,
		Components: components,
		TotalPrice: b.TotalPrice,
		CreatedAt:  b.CreatedAt,
	}
}
