package memory

import (
	"context"
	"sync"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

// InteractionRepo is an in-memory domain.InteractionRepository. It holds
// a reference to the lead repo so creation can perform the same atomic
// back-link as the postgres transaction.
type InteractionRepo struct {
	mu           sync.RWMutex
	interactions map[string]*domain.Interaction
	order        []string
	leads        *LeadRepo
}

func NewInteractionRepo(leads *LeadRepo) *InteractionRepo {
	return &InteractionRepo{
		interactions: map[string]*domain.Interaction{},
		leads:        leads,
	}
}

func (r *InteractionRepo) Create(_ context.Context, interaction *domain.Interaction) error {
	if interaction.ID == "" {
		interaction.ID = newID()
	}

	// Lead must exist before the interaction is stored; mirrors the
	// rollback behavior of the postgres implementation.
	if err := r.leads.appendInteraction(interaction.LeadID, interaction.ID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	interaction.CreatedAt = stamp()
	interaction.UpdatedAt = interaction.CreatedAt

	cp := copyInteraction(interaction)
	r.interactions[interaction.ID] = cp
	r.order = append(r.order, interaction.ID)
	return nil
}

func (r *InteractionRepo) GetByID(_ context.Context, id string) (*domain.Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.interactions[id]
	if !ok {
		return nil, notFound("interaction", id)
	}
	return copyInteraction(i), nil
}

func (r *InteractionRepo) List(_ context.Context) ([]*domain.Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Interaction, 0, len(r.order))
	for _, id := range r.order {
		if i, ok := r.interactions[id]; ok {
			out = append(out, copyInteraction(i))
		}
	}
	return out, nil
}

func (r *InteractionRepo) ListByIDs(_ context.Context, ids []string) ([]*domain.Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Interaction, 0, len(ids))
	for _, id := range ids {
		if i, ok := r.interactions[id]; ok {
			out = append(out, copyInteraction(i))
		}
	}
	return out, nil
}

func (r *InteractionRepo) Update(_ context.Context, id string, in domain.UpdateInteractionInput) (*domain.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.interactions[id]
	if !ok {
		return nil, notFound("interaction", id)
	}

	if in.Notes != nil {
		i.Notes = *in.Notes
	}
	if in.InteractionType != nil {
		i.InteractionType = *in.InteractionType
	}
	if in.HandledByID != nil {
		i.HandledByID = *in.HandledByID
	}
	i.UpdatedAt = stamp()

	return copyInteraction(i), nil
}

func (r *InteractionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.interactions[id]; !ok {
		return notFound("interaction", id)
	}
	delete(r.interactions, id)
	return nil
}

func copyInteraction(i *domain.Interaction) *domain.Interaction {
	cp := *i
	cp.Lead = nil
	cp.HandledBy = nil
	return &cp
}
