package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
	"github.com/weekly-exercises/catalog-api/internal/core/ports"
)

const eventScope = "events"

var _ ports.EventService = (*EventService)(nil)

type EventService struct {
	repo ports.EventRepository
	idem ports.IdempotencyStore
	log  zerolog.Logger
}

// NewEventService returns an EventService. idem may be nil, which disables
// idempotent replays.
func NewEventService(repo ports.EventRepository, idem ports.IdempotencyStore, log zerolog.Logger) *EventService {
	return &EventService{repo: repo, idem: idem, log: log}
}

func (s *EventService) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	return s.repo.List(ctx, filter)
}

func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error) {
	// 1. Replay a previous create carrying the same key.
	if id := replayID(ctx, s.idem, eventScope, in.IdempotencyKey, s.log); id != "" {
		existing, err := s.repo.FindByID(ctx, id)
		if err == nil {
			s.log.Info().Str("idempotency_key", in.IdempotencyKey).Str("id", existing.ID).Msg("idempotent replay")
			return existing, nil
		}
		if !errors.Is(err, domain.ErrEventNotFound) {
			return nil, err
		}
	}

	// 2. Insert.
	ev, err := s.repo.Create(ctx, in.Fields)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create event")
		return nil, err
	}

	// 3. Remember the key (non-fatal on failure).
	remember(ctx, s.idem, eventScope, in.IdempotencyKey, ev.ID, s.log)

	s.log.Info().
		Str("id", ev.ID).
		Str("type", string(ev.Type)).
		Str("actor", domain.Actor(ctx)).
		Msg("event created")

	return ev, nil
}

func (s *EventService) Update(ctx context.Context, id string, fields domain.EventFields) (*domain.Event, error) {
	ev, err := s.repo.Replace(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("id", ev.ID).Str("actor", domain.Actor(ctx)).Msg("event updated")
	return ev, nil
}

func (s *EventService) Patch(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, current.ID, patch.Apply(current.Fields()))
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Str("actor", domain.Actor(ctx)).Msg("event deleted")
	return nil
}
