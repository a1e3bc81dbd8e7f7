package ports

import (
	"context"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

// CreateMovieInput carries a validated movie and an optional idempotency key.
type CreateMovieInput struct {
	Fields         domain.MovieFields
	IdempotencyKey string
}

// MovieService defines use-case operations for movies.
type MovieService interface {
	List(ctx context.Context, filter domain.MovieFilter) ([]*domain.Movie, error)
	Get(ctx context.Context, id string) (*domain.Movie, error)
	Create(ctx context.Context, in CreateMovieInput) (*domain.Movie, error)
	Update(ctx context.Context, id string, fields domain.MovieFields) (*domain.Movie, error)
	Patch(ctx context.Context, id string, patch domain.MoviePatch) (*domain.Movie, error)
	Delete(ctx context.Context, id string) error
}
