package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

// LeadService handles lead CRUD and relationship population
type LeadService struct {
	leads        domain.LeadRepository
	interactions domain.InteractionRepository
	enquiries    domain.EnquiryRepository
	users        domain.UserRepository
	logger       *slog.Logger
}

// NewLeadService creates a new lead service
func NewLeadService(
	leads domain.LeadRepository,
	interactions domain.InteractionRepository,
	enquiries domain.EnquiryRepository,
	users domain.UserRepository,
	logger *slog.Logger,
) *LeadService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LeadService{
		leads:        leads,
		interactions: interactions,
		enquiries:    enquiries,
		users:        users,
		logger:       logger,
	}
}

// CreateLeadInput carries the lead creation fields
type CreateLeadInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Source string `json:"source"`
	Status string `json:"status"`
}

// Create validates and persists a new lead. Status defaults to New.
func (s *LeadService) Create(ctx context.Context, in CreateLeadInput) (*domain.Lead, error) {
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.Source == "" {
		return nil, fmt.Errorf("name, email, phone, source is required: %w", domain.ErrValidation)
	}
	if !domain.IsValidLeadSource(in.Source) {
		return nil, fmt.Errorf("invalid source %q: %w", in.Source, domain.ErrValidation)
	}
	if in.Status != "" && !domain.IsValidLeadStatus(in.Status) {
		return nil, fmt.Errorf("invalid status %q: %w", in.Status, domain.ErrValidation)
	}

	lead := &domain.Lead{
		Name:   in.Name,
		Email:  in.Email,
		Phone:  in.Phone,
		Source: in.Source,
		Status: in.Status,
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	s.logger.Info("lead created",
		slog.String("lead_id", lead.ID),
		slog.String("source", lead.Source),
	)

	return lead, nil
}

// GetAll returns every lead with interactions (handler resolved to
// name/email) and enquiry populated.
func (s *LeadService) GetAll(ctx context.Context) ([]*domain.Lead, error) {
	leads, err := s.leads.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, lead := range leads {
		s.resolve(ctx, lead)
	}

	return leads, nil
}

// GetByID returns a single lead with the same population as GetAll.
func (s *LeadService) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.resolve(ctx, lead)
	return lead, nil
}

// Update applies a partial update to the mutable lead fields.
func (s *LeadService) Update(ctx context.Context, id string, in domain.UpdateLeadInput) (*domain.Lead, error) {
	if in.Source != nil && !domain.IsValidLeadSource(*in.Source) {
		return nil, fmt.Errorf("invalid source %q: %w", *in.Source, domain.ErrValidation)
	}
	if in.Status != nil && !domain.IsValidLeadStatus(*in.Status) {
		return nil, fmt.Errorf("invalid status %q: %w", *in.Status, domain.ErrValidation)
	}

	lead, err := s.leads.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.resolve(ctx, lead)
	return lead, nil
}

// Delete removes the lead only. Its interactions, enquiry and bookings
// are deliberately left as orphans; they stay independently fetchable.
func (s *LeadService) Delete(ctx context.Context, id string) error {
	if err := s.leads.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("lead deleted", slog.String("lead_id", id))
	return nil
}

func (s *LeadService) resolve(ctx context.Context, lead *domain.Lead) {
	interactions, err := s.interactions.ListByIDs(ctx, lead.InteractionIDs)
	if err != nil {
		s.logger.Warn("failed to resolve lead interactions",
			slog.String("lead_id", lead.ID),
			slog.String("error", err.Error()),
		)
		interactions = []*domain.Interaction{}
	}
	for _, interaction := range interactions {
		interaction.HandledBy = resolveUserRef(ctx, s.users, interaction.HandledByID, false)
	}
	lead.Interactions = interactions

	if lead.EnquiryID != nil {
		if enquiry, err := s.enquiries.GetByID(ctx, *lead.EnquiryID); err == nil {
			lead.Enquiry = enquiry
		}
	}
}
