package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
	"github.com/weekly-exercises/catalog-api/internal/core/ports"
)

const movieScope = "movies"

var _ ports.MovieService = (*MovieService)(nil)

type MovieService struct {
	repo   ports.MovieRepository
	idem   ports.IdempotencyStore
	logger zerolog.Logger
}

// NewMovieService returns a MovieService. idem may be nil, which disables
// idempotent replays.
func NewMovieService(repo ports.MovieRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *MovieService {
	return &MovieService{repo: repo, idem: idem, logger: logger}
}

func (s *MovieService) List(ctx context.Context, filter domain.MovieFilter) ([]*domain.Movie, error) {
	return s.repo.List(ctx, filter)
}

func (s *MovieService) Get(ctx context.Context, id string) (*domain.Movie, error) {
	return s.repo.FindByID(ctx, id)
}

// Create inserts a movie. If the idempotency key was already used, the movie it
// created is returned without a second insert.
func (s *MovieService) Create(ctx context.Context, in ports.CreateMovieInput) (*domain.Movie, error) {
	if id := replayID(ctx, s.idem, movieScope, in.IdempotencyKey, s.logger); id != "" {
		existing, err := s.repo.FindByID(ctx, id)
		if err == nil {
			s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Str("id", existing.ID).Msg("idempotent replay")
			return existing, nil
		}
		if !errors.Is(err, domain.ErrMovieNotFound) {
			return nil, err
		}
	}

	m, err := s.repo.Create(ctx, in.Fields)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create movie")
		return nil, err
	}
	remember(ctx, s.idem, movieScope, in.IdempotencyKey, m.ID, s.logger)

	s.logger.Info().Str("id", m.ID).Str("title", m.Title).Str("actor", domain.Actor(ctx)).Msg("movie created")
	return m, nil
}

func (s *MovieService) Update(ctx context.Context, id string, fields domain.MovieFields) (*domain.Movie, error) {
	m, err := s.repo.Replace(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("id", m.ID).Str("actor", domain.Actor(ctx)).Msg("movie updated")
	return m, nil
}

func (s *MovieService) Patch(ctx context.Context, id string, patch domain.MoviePatch) (*domain.Movie, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, current.ID, patch.Apply(current.Fields()))
}

func (s *MovieService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Str("actor", domain.Actor(ctx)).Msg("movie deleted")
	return nil
}
