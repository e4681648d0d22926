package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"armatupc/internal/domain"
	"armatupc/pkg/ctxutil"
)

// ListUsers returns all accounts. Superuser only.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, int64, error) {
	if !ctxutil.IsSuperuserCtx(ctx) {
		return nil, 0, domain.ErrForbidden
	}

	list, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("user.ListUsers: %w", err)
	}

	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("user.ListUsers count: %w", err)
	}
	return list, total, nil
}

// SetUserRole promotes or demotes an account. Superuser only. A
// superuser cannot demote their own account.
func (s *Service) SetUserRole(ctx context.Context, targetID uuid.UUID, role domain.UserRole) (*domain.User, error) {
	if !ctxutil.IsSuperuserCtx(ctx) {
		return nil, domain.ErrForbidden
	}
	if !role.IsValid() {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "role", Message: "unknown role"},
		}}
	}

	if callerID, ok := ctxutil.UserIDFromCtx(ctx); ok && callerID == targetID && role != domain.UserRoleSuperuser {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "role", Message: "cannot demote own account"},
		}}
	}

	updated, err := s.users.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, fmt.Errorf("user.SetUserRole: %w", err)
	}

	s.log.InfoContext(ctx, "user role changed",
		slog.String("user_id", targetID.String()),
		slog.String("role", string(role)))

	return updated, nil
}

// SetUserStatus activates or disables an account. Superuser only.
// Disabling an account does not revoke live access tokens; they expire
// on their own and refresh is rejected for disabled users.
func (s *Service) SetUserStatus(ctx context.Context, targetID uuid.UUID, status domain.UserStatus) (*domain.User, error) {
	if !ctxutil.IsSuperuserCtx(ctx) {
		return nil, domain.ErrForbidden
	}
	if !status.IsValid() {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "status", Message: "unknown status"},
		}}
	}

	if callerID, ok := ctxutil.UserIDFromCtx(ctx); ok && callerID == targetID && status == domain.UserStatusDisabled {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "status", Message: "cannot disable own account"},
		}}
	}

	updated, err := s.users.UpdateStatus(ctx, targetID, status)
	if err != nil {
		return nil, fmt.Errorf("user.SetUserStatus: %w", err)
	}

	s.log.InfoContext(ctx, "user status changed",
		slog.String("user_id", targetID.String()),
		slog.String("status", string(status)))

	return updated, nil
}
