package user

import (
	"context"
	"fmt"
	"strings"

	"armatupc/internal/adapter/postgres/user"
	"armatupc/internal/domain"
	"armatupc/pkg/ctxutil"
)

// UpdateProfileInput holds the fields a user may change on their own
// account.
type UpdateProfileInput struct {
	Username *string
}

// Validate validates the profile input.
func (i UpdateProfileInput) Validate() error {
	var errs []domain.FieldError

	if i.Username != nil {
		u := strings.TrimSpace(*i.Username)
		if len(u) < 3 || len(u) > 64 {
			errs = append(errs, domain.FieldError{Field: "username", Message: "must be 3-64 characters"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// GetProfile returns the authenticated user's account.
func (s *Service) GetProfile(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.GetProfile: %w", err)
	}
	return u, nil
}

// UpdateProfile changes the authenticated user's own fields.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := user.UpdateParams{}
	if input.Username != nil {
		trimmed := strings.TrimSpace(*input.Username)
		params.Username = &trimmed
	}

	updated, err := s.users.Update(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("user.UpdateProfile: %w", err)
	}
	return updated, nil
}
