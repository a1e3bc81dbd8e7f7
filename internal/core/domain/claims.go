package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidToken = errors.New("token expired or invalid")
	ErrUnauthorized = errors.New("missing or invalid token")
	ErrForbidden    = errors.New("access forbidden")
)

// Claims is the identity asserted by a signed token.
type Claims struct {
	UserID    string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"exp"`
}

// ClaimsFor derives token claims from a user. ExpiresAt is left to the issuer.
func ClaimsFor(u *User) Claims {
	return Claims{UserID: u.ID, Username: u.Username, Role: u.Role}
}

type claimsKey struct{}

// WithClaims returns a copy of ctx carrying the authenticated claims.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFrom returns the claims attached by the auth middleware, if any.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok && c != nil
}

// Actor returns the username behind ctx, or "anonymous".
func Actor(ctx context.Context) string {
	if c, ok := ClaimsFrom(ctx); ok {
		return c.Username
	}
	return "anonymous"
}
