package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"armatupc/internal/service/ai"
)

// aiService defines the minimal interface needed by AIHandler.
type aiService interface {
	SuggestBuild(ctx context.Context, description string) (*ai.BuildSuggestion, error)
	CheckCompatibility(ctx context.Context, input ai.CompatibilityInput) (*ai.CompatibilityResult, error)
}

// AIHandler serves the customer-facing assistant endpoints. The admin
// drafting flows (enrichment, price discovery) live on AdminHandler.
type AIHandler struct {
	svc aiService
	log *slog.Logger
}

// NewAIHandler creates an AIHandler.
func NewAIHandler(svc aiService, logger *slog.Logger) *AIHandler {
	return &AIHandler{svc: svc, log: logger.With("handler", "ai")}
}

type suggestBuildRequest struct {
	Description string `json:"description"`
}

type suggestBuildResponse struct {
	Components map[string]string `json:"components"`
}

type compatibilityRequest struct {
	ComponentType    string `json:"componentType"`
	ComponentName    string `json:"componentName"`
	ComponentDetails string `json:"componentDetails"`
}

// SuggestBuild handles POST /ai/suggest-build. The assistant picks one
// catalog component per slot for the described use case.
func (h *AIHandler) SuggestBuild(w http.ResponseWriter, r *http.Request) {
	var req suggestBuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	suggestion, err := h.svc.SuggestBuild(r.Context(), req.Description)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := suggestBuildResponse{Components: make(map[string]string, len(suggestion.Components))}
	for cat, slug := range suggestion.Components {
		out.Components[cat.String()] = slug
	}
	writeJSON(w, http.StatusOK, out)
}

// CheckCompatibility handles POST /ai/compatibility.
func (h *AIHandler) CheckCompatibility(w http.ResponseWriter, r *http.Request) {
	var req compatibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.CheckCompatibility(r.Context(), ai.CompatibilityInput{
		ComponentType:    req.ComponentType,
		ComponentName:    req.ComponentName,
		ComponentDetails: req.ComponentDetails,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
