package ports

import (
	"context"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

type CreateEventInput struct {
	Fields         domain.EventFields
	IdempotencyKey string
}

// EventService defines use-case operations for events.
type EventService interface {
	List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	Create(ctx context.Context, in CreateEventInput) (*domain.Event, error)
	Update(ctx context.Context, id string, fields domain.EventFields) (*domain.Event, error)
	Patch(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}
