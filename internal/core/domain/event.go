package domain

import (
	"errors"
	"time"
)

// EventType classifies an event.
type EventType string

const (
	EventMeeting  EventType = "meeting"
	EventBirthday EventType = "birthday"
	EventExam     EventType = "exam"
	EventOther    EventType = "other"
)

var ErrEventNotFound = errors.New("event not found")

// Event is a planned occurrence on a given date.
type Event struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Location  string    `json:"location"`
	Type      EventType `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventFields is a validated event payload.
type EventFields struct {
	Title    string
	Date     time.Time
	Location string
	Type     EventType
}

// EventPatch carries the fields of a partial update; nil means unchanged.
type EventPatch struct {
	Title    *string
	Date     *time.Time
	Location *string
	Type     *EventType
}

func (e *Event) Fields() EventFields {
	return EventFields{Title: e.Title, Date: e.Date, Location: e.Location, Type: e.Type}
}

func (p EventPatch) Apply(f EventFields) EventFields {
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.Date != nil {
		f.Date = *p.Date
	}
	if p.Location != nil {
		f.Location = *p.Location
	}
	if p.Type != nil {
		f.Type = *p.Type
	}
	return f
}

// EventFilter narrows List.
//   - Type: exact
//   - Title: case-insensitive substring
//   - Day: events whose date falls in [Day, Day+24h); zero disables
type EventFilter struct {
	Type  EventType
	Title string
	Day   time.Time
}

// DayRange returns the half-open interval covering the filter day.
func (f EventFilter) DayRange() (from, to time.Time) {
	y, m, d := f.Day.Date()
	from = time.Date(y, m, d, 0, 0, 0, 0, f.Day.Location())
	return from, from.AddDate(0, 0, 1)
}
