package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
	"github.com/weekly-exercises/catalog-api/internal/core/ports"
	"github.com/weekly-exercises/catalog-api/internal/infrastructure/db/mongo"
)

type demoUser struct {
	username, password, role string
}

var demoUsers = []demoUser{
	{"admin", "admin123", domain.RoleAdmin},
	{"john", "user123", domain.RoleUser},
	{"sarah", "user123", domain.RoleUser},
	{"mike", "user123", domain.RoleUser},
}

var demoMovies = []domain.MovieFields{
	{Title: "Inception", Director: "Christopher Nolan", Year: 2010},
	{Title: "The Matrix", Director: "The Wachowskis", Year: 1999},
	{Title: "Parasite", Director: "Bong Joon-ho", Year: 2019},
}

func utc(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

var demoEvents = []domain.EventFields{
	{Title: "Team Meeting", Date: utc("2025-01-15T10:00:00Z"), Location: "Conference Room A", Type: domain.EventMeeting},
	{Title: "Project Deadline", Date: utc("2025-01-20T17:00:00Z"), Location: "Office", Type: domain.EventMeeting},
	{Title: "Sarah's Birthday Party", Date: utc("2025-01-25T18:00:00Z"), Location: "Restaurant Downtown", Type: domain.EventBirthday},
	{Title: "Final Exam - Web Development", Date: utc("2025-02-01T09:00:00Z"), Location: "TAMK A123", Type: domain.EventExam},
	{Title: "Midterm Exam - Database Systems", Date: utc("2025-01-28T14:00:00Z"), Location: "TAMK B456", Type: domain.EventExam},
	{Title: "Client Presentation", Date: utc("2025-01-18T13:00:00Z"), Location: "Virtual Meeting", Type: domain.EventMeeting},
	{Title: "John's Birthday", Date: utc("2025-02-05T12:00:00Z"), Location: "Home", Type: domain.EventBirthday},
	{Title: "Workshop: React Advanced", Date: utc("2025-01-22T10:00:00Z"), Location: "Training Center", Type: domain.EventOther},
	{Title: "Code Review Session", Date: utc("2025-01-17T15:00:00Z"), Location: "Development Room", Type: domain.EventMeeting},
	{Title: "Quarterly Exam", Date: utc("2025-02-10T09:00:00Z"), Location: "Main Hall", Type: domain.EventExam},
}

// resetter is implemented by repositories that can drop all their data.
type resetter interface {
	Reset(ctx context.Context) error
}

// SeedResult counts what Seed inserted.
type SeedResult struct {
	Users, Movies, Events int
}

// Seed loads the demo users, movies and events. With reset, existing data is
// dropped first; otherwise existing users are kept and a collection that
// already holds data is left alone.
func (a *App) Seed(ctx context.Context, reset bool) (SeedResult, error) {
	if reset {
		for _, repo := range []any{a.stores.users, a.stores.movies, a.stores.events} {
			if r, ok := repo.(resetter); ok {
				if err := r.Reset(ctx); err != nil {
					return SeedResult{}, fmt.Errorf("reset: %w", err)
				}
			}
		}
		if a.mongoDB != nil {
			if err := mongo.EnsureIndexes(ctx, a.mongoDB); err != nil {
				return SeedResult{}, fmt.Errorf("mongo indexes: %w", err)
			}
		}
	}

	var res SeedResult
	for _, u := range demoUsers {
		_, err := a.auth.Register(ctx, ports.RegisterInput{Username: u.username, Password: u.password, Role: u.role})
		switch {
		case errors.Is(err, domain.ErrUserExists):
			continue
		case err != nil:
			return res, fmt.Errorf("seed user %s: %w", u.username, err)
		}
		res.Users++
	}

	movies, err := a.stores.movies.List(ctx, domain.MovieFilter{})
	if err != nil {
		return res, err
	}
	if len(movies) == 0 {
		for _, m := range demoMovies {
			if _, err := a.stores.movies.Create(ctx, m); err != nil {
				return res, fmt.Errorf("seed movie %q: %w", m.Title, err)
			}
			res.Movies++
		}
	}

	events, err := a.stores.events.List(ctx, domain.EventFilter{})
	if err != nil {
		return res, err
	}
	if len(events) == 0 {
		for _, e := range demoEvents {
			if _, err := a.stores.events.Create(ctx, e); err != nil {
				return res, fmt.Errorf("seed event %q: %w", e.Title, err)
			}
			res.Events++
		}
	}

	a.log.Info().
		Int("users", res.Users).
		Int("movies", res.Movies).
		Int("events", res.Events).
		Msg("demo data seeded")
	return res, nil
}
