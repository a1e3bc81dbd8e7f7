package ports

import (
	"context"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

// MovieRepository defines persistence operations for movies.
// Every id argument accepts the store-native identifier or the numeric seq.
type MovieRepository interface {
	List(ctx context.Context, filter domain.MovieFilter) ([]*domain.Movie, error)
	FindByID(ctx context.Context, id string) (*domain.Movie, error)
	Create(ctx context.Context, fields domain.MovieFields) (*domain.Movie, error)
	Replace(ctx context.Context, id string, fields domain.MovieFields) (*domain.Movie, error)
	Delete(ctx context.Context, id string) error
}
