package ports

import (
	"context"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

// EventRepository defines persistence operations for events.
// List results are ordered by date ascending.
type EventRepository interface {
	List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	Create(ctx context.Context, fields domain.EventFields) (*domain.Event, error)
	Replace(ctx context.Context, id string, fields domain.EventFields) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}
