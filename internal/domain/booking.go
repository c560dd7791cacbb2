package domain

import (
	"context"
	"time"
)

// Booking statuses
const (
	BookingStatusPending   = "Pending"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCancelled = "Cancelled"
)

var bookingStatuses = map[string]bool{
	BookingStatusPending:   true,
	BookingStatusConfirmed: true,
	BookingStatusCancelled: true,
}

// IsValidBookingStatus reports whether s is a known booking status.
func IsValidBookingStatus(s string) bool { return bookingStatuses[s] }

// Booking is a pending or confirmed reservation of a property against a
// lead, with an earnest-money token amount. The lead holds no
// back-reference to its bookings.
type Booking struct {
	ID          string    `json:"id"` // UUID
	LeadID      string    `json:"leadId"`
	Property    string    `json:"property"`
	TokenAmount float64   `json:"tokenAmount"`
	BookingDate time.Time `json:"bookingDate"` // defaults to creation time
	HandledByID string    `json:"handledById"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Populated on reads, never persisted
	Lead      *LeadRef `json:"lead,omitempty"`
	HandledBy *UserRef `json:"handledBy,omitempty"`
}

// UpdateBookingInput carries the mutable booking fields; nil means unchanged.
type UpdateBookingInput struct {
	Property    *string    `json:"property"`
	TokenAmount *float64   `json:"tokenAmount"`
	BookingDate *time.Time `json:"bookingDate"`
	Status      *string    `json:"status"`
}

// BookingRepository defines data access for bookings
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	// List returns bookings newest-first by creation time.
	List(ctx context.Context) ([]*Booking, error)
	Update(ctx context.Context, id string, in UpdateBookingInput) (*Booking, error)
	Delete(ctx context.Context, id string) error
}
