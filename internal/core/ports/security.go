package ports

import "github.com/weekly-exercises/catalog-api/internal/core/domain"

// PasswordHasher is a one-way password hash primitive.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) (bool, error)
}

// TokenVerifier validates a signed token and returns its claims.
// Any failure is reported as domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

// TokenService issues and verifies signed, expiring tokens.
type TokenService interface {
	TokenVerifier
	Issue(claims domain.Claims) (string, error)
}
