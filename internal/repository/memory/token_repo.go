package memory

import (
	"context"
	"sync"
	"time"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

// RefreshTokenRepo is an in-memory domain.RefreshTokenRepository
type RefreshTokenRepo struct {
	mu     sync.RWMutex
	tokens map[string]*domain.RefreshToken // keyed by token value
	order  []string
}

func NewRefreshTokenRepo() *RefreshTokenRepo {
	return &RefreshTokenRepo{tokens: map[string]*domain.RefreshToken{}}
}

func (r *RefreshTokenRepo) Create(_ context.Context, token *domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token.ID == "" {
		token.ID = newID()
	}
	token.CreatedAt = stamp()

	cp := *token
	r.tokens[token.Token] = &cp
	r.order = append(r.order, token.Token)
	return nil
}

func (r *RefreshTokenRepo) GetByToken(_ context.Context, tokenValue string) (*domain.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[tokenValue]
	if !ok {
		return nil, notFound("refresh token", "")
	}
	cp := *t
	return &cp, nil
}

// DeleteByToken is idempotent: deleting an absent token is not an error.
func (r *RefreshTokenRepo) DeleteByToken(_ context.Context, tokenValue string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, tokenValue)
	return nil
}

func (r *RefreshTokenRepo) DeleteCreatedBefore(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	kept := r.order[:0]
	for _, key := range r.order {
		t, ok := r.tokens[key]
		if ok && t.CreatedAt.Before(cutoff) {
			delete(r.tokens, key)
			removed++
			continue
		}
		if ok {
			kept = append(kept, key)
		}
	}
	r.order = kept
	return removed, nil
}

func (r *RefreshTokenRepo) List(_ context.Context) ([]*domain.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.RefreshToken, 0, len(r.order))
	for _, key := range r.order {
		if t, ok := r.tokens[key]; ok {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}
