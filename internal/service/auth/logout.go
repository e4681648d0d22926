package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"armatupc/internal/domain"
	"armatupc/pkg/ctxutil"
)

// Logout revokes every refresh token of the context user, so all of
// their sessions end at once. Anonymous contexts get ErrUnauthorized.
func (s *Service) Logout(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.tokens.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}

	s.log.InfoContext(ctx, "user logged out", slog.String("user_id", userID.String()))
	return nil
}

// ValidateToken resolves an access token into a user ID and role. Any
// parse or expiry failure collapses to ErrUnauthorized.
func (s *Service) ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error) {
	userID, role, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, "", domain.ErrUnauthorized
	}
	return userID, role, nil
}

// CleanupExpiredTokens deletes expired refresh tokens and reports how
// many were removed. Run from the maintenance command, not the server.
func (s *Service) CleanupExpiredTokens(ctx context.Context) (int, error) {
	count, err := s.tokens.DeleteExpired(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "token cleanup failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("auth.CleanupExpiredTokens: %w", err)
	}

	if count > 0 {
		s.log.InfoContext(ctx, "expired tokens removed", slog.Int("count", count))
	}
	return count, nil
}
