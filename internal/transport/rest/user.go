package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"armatupc/internal/domain"
	usersvc "armatupc/internal/service/user"
)

// profileService defines the minimal interface needed by UserHandler.
type profileService interface {
	GetProfile(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, input usersvc.UpdateProfileInput) (*domain.User, error)
}

// UserHandler serves the authenticated user's own account.
type UserHandler struct {
	svc profileService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc profileService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

type updateProfileRequest struct {
	Username *string `json:"username"`
}

// GetProfile handles GET /me.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.GetProfile(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateProfile handles PATCH /me.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), usersvc.UpdateProfileInput{
		Username: req.Username,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:       u.ID.String(),
		Email:    u.Email,
		Username: u.Username,
		Role:     u.Role.String(),
		Status:   u.Status.String(),
	}
}
