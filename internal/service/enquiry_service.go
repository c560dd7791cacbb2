package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

// EnquiryService handles enquiry CRUD and parent lead population
type EnquiryService struct {
	enquiries domain.EnquiryRepository
	leads     domain.LeadRepository
	logger    *slog.Logger
}

// NewEnquiryService creates a new enquiry service
func NewEnquiryService(
	enquiries domain.EnquiryRepository,
	leads domain.LeadRepository,
	logger *slog.Logger,
) *EnquiryService {
	if logger == nil {
		logger = slog.Default()
	}

	return &EnquiryService{
		enquiries: enquiries,
		leads:     leads,
		logger:    logger,
	}
}

// CreateEnquiryInput carries the enquiry creation fields
type CreateEnquiryInput struct {
	LeadID           string     `json:"leadId"`
	PropertyInterest string     `json:"propertyInterest"`
	SiteVisitDate    *time.Time `json:"siteVisitDate"`
	Status           string     `json:"status"`
}

// Create validates and persists a new enquiry. Status defaults to
// Scheduled. The lead reference is not existence-checked.
func (s *EnquiryService) Create(ctx context.Context, in CreateEnquiryInput) (*domain.Enquiry, error) {
	if in.LeadID == "" || in.PropertyInterest == "" {
		return nil, fmt.Errorf("leadId, propertyInterest is required: %w", domain.ErrValidation)
	}
	if in.Status != "" && !domain.IsValidEnquiryStatus(in.Status) {
		return nil, fmt.Errorf("invalid status %q: %w", in.Status, domain.ErrValidation)
	}

	enquiry := &domain.Enquiry{
		LeadID:           in.LeadID,
		PropertyInterest: in.PropertyInterest,
		SiteVisitDate:    in.SiteVisitDate,
		Status:           in.Status,
	}

	if err := s.enquiries.Create(ctx, enquiry); err != nil {
		return nil, err
	}

	s.logger.Info("enquiry created",
		slog.String("enquiry_id", enquiry.ID),
		slog.String("lead_id", enquiry.LeadID),
	)

	return enquiry, nil
}

// GetAll returns every enquiry with the parent lead resolved.
func (s *EnquiryService) GetAll(ctx context.Context) ([]*domain.Enquiry, error) {
	enquiries, err := s.enquiries.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, enquiry := range enquiries {
		enquiry.Lead = resolveLeadRef(ctx, s.leads, enquiry.LeadID)
	}

	return enquiries, nil
}

// GetByID returns a single enquiry with the parent lead resolved.
func (s *EnquiryService) GetByID(ctx context.Context, id string) (*domain.Enquiry, error) {
	enquiry, err := s.enquiries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	enquiry.Lead = resolveLeadRef(ctx, s.leads, enquiry.LeadID)
	return enquiry, nil
}

// Update applies a partial update to the mutable enquiry fields.
func (s *EnquiryService) Update(ctx context.Context, id string, in domain.UpdateEnquiryInput) (*domain.Enquiry, error) {
	if in.Status != nil && !domain.IsValidEnquiryStatus(*in.Status) {
		return nil, fmt.Errorf("invalid status %q: %w", *in.Status, domain.ErrValidation)
	}

	enquiry, err := s.enquiries.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	enquiry.Lead = resolveLeadRef(ctx, s.leads, enquiry.LeadID)
	return enquiry, nil
}

// Delete removes the enquiry record.
func (s *EnquiryService) Delete(ctx context.Context, id string) error {
	return s.enquiries.Delete(ctx, id)
}
