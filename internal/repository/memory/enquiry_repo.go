package memory

import (
	"context"
	"sync"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

// EnquiryRepo is an in-memory domain.EnquiryRepository
type EnquiryRepo struct {
	mu        sync.RWMutex
	enquiries map[string]*domain.Enquiry
	order     []string
}

func NewEnquiryRepo() *EnquiryRepo {
	return &EnquiryRepo{enquiries: map[string]*domain.Enquiry{}}
}

func (r *EnquiryRepo) Create(_ context.Context, enquiry *domain.Enquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if enquiry.ID == "" {
		enquiry.ID = newID()
	}
	if enquiry.Status == "" {
		enquiry.Status = domain.EnquiryStatusScheduled
	}
	enquiry.CreatedAt = stamp()
	enquiry.UpdatedAt = enquiry.CreatedAt

	cp := copyEnquiry(enquiry)
	r.enquiries[enquiry.ID] = cp
	r.order = append(r.order, enquiry.ID)
	return nil
}

func (r *EnquiryRepo) GetByID(_ context.Context, id string) (*domain.Enquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.enquiries[id]
	if !ok {
		return nil, notFound("enquiry", id)
	}
	return copyEnquiry(e), nil
}

func (r *EnquiryRepo) List(_ context.Context) ([]*domain.Enquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Enquiry, 0, len(r.order))
	for _, id := range r.order {
		if e, ok := r.enquiries[id]; ok {
			out = append(out, copyEnquiry(e))
		}
	}
	return out, nil
}

func (r *EnquiryRepo) Update(_ context.Context, id string, in domain.UpdateEnquiryInput) (*domain.Enquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.enquiries[id]
	if !ok {
		return nil, notFound("enquiry", id)
	}

	if in.PropertyInterest != nil {
		e.PropertyInterest = *in.PropertyInterest
	}
	if in.SiteVisitDate != nil {
		t := *in.SiteVisitDate
		e.SiteVisitDate = &t
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
	e.UpdatedAt = stamp()

	return copyEnquiry(e), nil
}

func (r *EnquiryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.enquiries[id]; !ok {
		return notFound("enquiry", id)
	}
	delete(r.enquiries, id)
	return nil
}

func copyEnquiry(e *domain.Enquiry) *domain.Enquiry {
	cp := *e
	cp.Lead = nil
	if e.SiteVisitDate != nil {
		t := *e.SiteVisitDate
		cp.SiteVisitDate = &t
	}
	return &cp
}
