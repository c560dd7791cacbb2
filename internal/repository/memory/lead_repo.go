package memory

import (
	"context"
	"sync"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

// LeadRepo is an in-memory domain.LeadRepository
type LeadRepo struct {
	mu    sync.RWMutex
	leads map[string]*domain.Lead
	order []string
}

func NewLeadRepo() *LeadRepo {
	return &LeadRepo{leads: map[string]*domain.Lead{}}
}

func (r *LeadRepo) Create(_ context.Context, lead *domain.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lead.ID == "" {
		lead.ID = newID()
	}
	if lead.Status == "" {
		lead.Status = domain.LeadStatusNew
	}
	if lead.InteractionIDs == nil {
		lead.InteractionIDs = []string{}
	}
	lead.CreatedAt = stamp()
	lead.UpdatedAt = lead.CreatedAt

	cp := copyLead(lead)
	r.leads[lead.ID] = cp
	r.order = append(r.order, lead.ID)
	return nil
}

func (r *LeadRepo) GetByID(_ context.Context, id string) (*domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.leads[id]
	if !ok {
		return nil, notFound("lead", id)
	}
	return copyLead(l), nil
}

func (r *LeadRepo) List(_ context.Context) ([]*domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Lead, 0, len(r.order))
	for _, id := range r.order {
		if l, ok := r.leads[id]; ok {
			out = append(out, copyLead(l))
		}
	}
	return out, nil
}

func (r *LeadRepo) Update(_ context.Context, id string, in domain.UpdateLeadInput) (*domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.leads[id]
	if !ok {
		return nil, notFound("lead", id)
	}

	if in.Name != nil {
		l.Name = *in.Name
	}
	if in.Email != nil {
		l.Email = *in.Email
	}
	if in.Phone != nil {
		l.Phone = *in.Phone
	}
	if in.Source != nil {
		l.Source = *in.Source
	}
	if in.Status != nil {
		l.Status = *in.Status
	}
	l.UpdatedAt = stamp()

	return copyLead(l), nil
}

func (r *LeadRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leads[id]; !ok {
		return notFound("lead", id)
	}
	delete(r.leads, id)
	return nil
}

// appendInteraction mirrors the transactional back-link the postgres
// implementation performs during interaction creation.
func (r *LeadRepo) appendInteraction(leadID, interactionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.leads[leadID]
	if !ok {
		return notFound("lead", leadID)
	}
	l.InteractionIDs = append(l.InteractionIDs, interactionID)
	l.UpdatedAt = stamp()
	return nil
}

func copyLead(l *domain.Lead) *domain.Lead {
	cp := *l
	cp.InteractionIDs = append([]string{}, l.InteractionIDs...)
	cp.Interactions = nil
	cp.Enquiry = nil
	return &cp
}
