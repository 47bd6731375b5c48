package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/belandja/commerce-api/internal/domains/users/domain"
	"github.com/belandja/commerce-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byEmail map[string]string
}

func NewRepository() *Repository {
	return &Repository{users: map[string]*domain.User{}, byEmail: map[string]string{}}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	clone.Roles = append([]string(nil), user.Roles...)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existingID, ok := r.byEmail[clone.Email]; ok && existingID != clone.ID {
		return nil, ports.ErrEmailTaken
	}
	if existing, ok := r.users[clone.ID]; ok && existing.Email != clone.Email {
		delete(r.byEmail, existing.Email)
	}
	r.users[clone.ID] = &clone
	r.byEmail[clone.Email] = clone.ID
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.users[id]
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.byEmail, user.Email)
	delete(r.users, id)
	return nil
}
