package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

// BookingService handles booking CRUD and relationship population
type BookingService struct {
	bookings domain.BookingRepository
	leads    domain.LeadRepository
	users    domain.UserRepository
	logger   *slog.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookings domain.BookingRepository,
	leads domain.LeadRepository,
	users domain.UserRepository,
	logger *slog.Logger,
) *BookingService {
	if logger == nil {
		logger = slog.Default()
	}

	return &BookingService{
		bookings: bookings,
		leads:    leads,
		users:    users,
		logger:   logger,
	}
}

// CreateBookingInput carries the booking creation fields
type CreateBookingInput struct {
	LeadID      string     `json:"leadId"`
	Property    string     `json:"property"`
	TokenAmount float64    `json:"tokenAmount"`
	BookingDate *time.Time `json:"bookingDate"`
	HandledByID string     `json:"handledBy"`
	Status      string     `json:"status"`
}

// Create validates and persists a new booking. Status defaults to
// Pending, bookingDate to the creation time.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*domain.Booking, error) {
	if in.LeadID == "" || in.Property == "" || in.HandledByID == "" {
		return nil, fmt.Errorf("leadId, property, tokenAmount, handledBy is required: %w", domain.ErrValidation)
	}
	if in.TokenAmount <= 0 {
		return nil, fmt.Errorf("tokenAmount must be positive: %w", domain.ErrValidation)
	}
	if in.Status != "" && !domain.IsValidBookingStatus(in.Status) {
		return nil, fmt.Errorf("invalid status %q: %w", in.Status, domain.ErrValidation)
	}

	booking := &domain.Booking{
		LeadID:      in.LeadID,
		Property:    in.Property,
		TokenAmount: in.TokenAmount,
		HandledByID: in.HandledByID,
		Status:      in.Status,
	}
	if in.BookingDate != nil {
		booking.BookingDate = *in.BookingDate
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		slog.String("booking_id", booking.ID),
		slog.String("lead_id", booking.LeadID),
		slog.Float64("token_amount", booking.TokenAmount),
	)

	return booking, nil
}

// GetAll returns every booking newest-first, with lead and handler
// resolved.
func (s *BookingService) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, booking := range bookings {
		s.resolve(ctx, booking)
	}

	return bookings, nil
}

// GetByID returns a single booking with the same population as GetAll.
func (s *BookingService) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.resolve(ctx, booking)
	return booking, nil
}

// Update applies a partial update to the mutable booking fields.
func (s *BookingService) Update(ctx context.Context, id string, in domain.UpdateBookingInput) (*domain.Booking, error) {
	if in.Status != nil && !domain.IsValidBookingStatus(*in.Status) {
		return nil, fmt.Errorf("invalid status %q: %w", *in.Status, domain.ErrValidation)
	}
	if in.TokenAmount != nil && *in.TokenAmount <= 0 {
		return nil, fmt.Errorf("tokenAmount must be positive: %w", domain.ErrValidation)
	}

	booking, err := s.bookings.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.resolve(ctx, booking)
	return booking, nil
}

// Delete removes the booking record.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	return s.bookings.Delete(ctx, id)
}

func (s *BookingService) resolve(ctx context.Context, booking *domain.Booking) {
	booking.Lead = resolveLeadRef(ctx, s.leads, booking.LeadID)
	booking.HandledBy = resolveUserRef(ctx, s.users, booking.HandledByID, true)
}
