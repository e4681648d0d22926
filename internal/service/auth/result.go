package auth

import "armatupc/internal/domain"

// AuthResult is what Register, Login and Refresh hand back: both tokens
// plus the account they belong to. RefreshToken is the raw value; the
// stored copy is hashed.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}
