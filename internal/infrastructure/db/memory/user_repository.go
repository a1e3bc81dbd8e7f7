package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

type UserRepository struct {
	mu         sync.RWMutex
	byUsername map[string]*domain.User
	next       int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byUsername: make(map[string]*domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	r.next++
	stored := *user
	stored.ID = strconv.FormatInt(r.next, 10)
	r.byUsername[stored.Username] = &stored

	out := stored
	return &out, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

// Reset drops every user.
func (r *UserRepository) Reset(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUsername = make(map[string]*domain.User)
	r.next = 0
	return nil
}
