package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

// EventRepository lists events by date, ties broken by seq.
type EventRepository struct {
	mu     sync.RWMutex
	events map[int64]*domain.Event
	now    func() time.Time
}

func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[int64]*domain.Event), now: time.Now}
}

func (r *EventRepository) List(_ context.Context, f domain.EventFilter) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var from, to time.Time
	if !f.Day.IsZero() {
		from, to = f.DayRange()
	}

	out := make([]*domain.Event, 0, len(r.events))
	for _, e := range r.events {
		if f.Type != "" && e.Type != f.Type {
			continue
		}
		if f.Title != "" && !containsFold(e.Title, f.Title) {
			continue
		}
		if !f.Day.IsZero() && (e.Date.Before(from) || !e.Date.Before(to)) {
			continue
		}
		clone := *e
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Seq < out[j].Seq
	})
	return out, nil
}

func (r *EventRepository) FindByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.lookup(id)
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *EventRepository) Create(_ context.Context, f domain.EventFields) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var max int64
	for seq := range r.events {
		if seq > max {
			max = seq
		}
	}
	now := r.now().UTC()
	e := &domain.Event{
		ID:        strconv.FormatInt(max+1, 10),
		Seq:       max + 1,
		Title:     f.Title,
		Date:      f.Date,
		Location:  f.Location,
		Type:      f.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.events[e.Seq] = e
	clone := *e
	return &clone, nil
}

func (r *EventRepository) Replace(_ context.Context, id string, f domain.EventFields) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.lookup(id)
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	e.Title, e.Date, e.Location, e.Type = f.Title, f.Date, f.Location, f.Type
	e.UpdatedAt = r.now().UTC()
	clone := *e
	return &clone, nil
}

func (r *EventRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.lookup(id)
	if !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, e.Seq)
	return nil
}

// Reset drops every event.
func (r *EventRepository) Reset(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = make(map[int64]*domain.Event)
	return nil
}

func (r *EventRepository) lookup(id string) (*domain.Event, bool) {
	seq, ok := parseSeq(id)
	if !ok {
		return nil, false
	}
	e, ok := r.events[seq]
	return e, ok
}
