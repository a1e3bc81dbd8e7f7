package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

// MovieRepository keeps movies in insertion (seq) order.
type MovieRepository struct {
	mu     sync.RWMutex
	movies map[int64]*domain.Movie
}

func NewMovieRepository() *MovieRepository {
	return &MovieRepository{movies: make(map[int64]*domain.Movie)}
}

func (r *MovieRepository) List(_ context.Context, f domain.MovieFilter) ([]*domain.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		if f.Title != "" && !containsFold(m.Title, f.Title) {
			continue
		}
		if f.Director != "" && !containsFold(m.Director, f.Director) {
			continue
		}
		if f.Year != 0 && m.Year != f.Year {
			continue
		}
		clone := *m
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (r *MovieRepository) FindByID(_ context.Context, id string) (*domain.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.lookup(id)
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *MovieRepository) Create(_ context.Context, f domain.MovieFields) (*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seq := r.nextSeq()
	m := &domain.Movie{
		ID:       strconv.FormatInt(seq, 10),
		Seq:      seq,
		Title:    f.Title,
		Director: f.Director,
		Year:     f.Year,
	}
	r.movies[seq] = m
	clone := *m
	return &clone, nil
}

func (r *MovieRepository) Replace(_ context.Context, id string, f domain.MovieFields) (*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.lookup(id)
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	m.Title, m.Director, m.Year = f.Title, f.Director, f.Year
	clone := *m
	return &clone, nil
}

func (r *MovieRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.lookup(id)
	if !ok {
		return domain.ErrMovieNotFound
	}
	delete(r.movies, m.Seq)
	return nil
}

// Reset drops every movie.
func (r *MovieRepository) Reset(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movies = make(map[int64]*domain.Movie)
	return nil
}

// lookup and nextSeq expect r.mu to be held.
func (r *MovieRepository) lookup(id string) (*domain.Movie, bool) {
	seq, ok := parseSeq(id)
	if !ok {
		return nil, false
	}
	m, ok := r.movies[seq]
	return m, ok
}

func (r *MovieRepository) nextSeq() int64 {
	var max int64
	for seq := range r.movies {
		if seq > max {
			max = seq
		}
	}
	return max + 1
}
