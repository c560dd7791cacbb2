package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

// UserRepo is an in-memory domain.UserRepository
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	order []string
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: map[string]*domain.User{}}
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with email %s: %w", user.Email, domain.ErrConflict)
		}
	}

	if user.ID == "" {
		user.ID = newID()
	}
	user.CreatedAt = stamp()
	user.UpdatedAt = user.CreatedAt

	cp := *user
	r.users[user.ID] = &cp
	r.order = append(r.order, user.ID)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound("user with email", email)
}

func (r *UserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		if u, ok := r.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return notFound("user", id)
	}
	delete(r.users, id)
	return nil
}
