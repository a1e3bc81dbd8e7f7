package ports

import (
	"context"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

// RegisterInput is a validated registration payload.
type RegisterInput struct {
	Username string
	Password string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns a signed token for the user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
