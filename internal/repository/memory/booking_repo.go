package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

// BookingRepo is an in-memory domain.BookingRepository
type BookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
	order    []string
}

func NewBookingRepo() *BookingRepo {
	return &BookingRepo{bookings: map[string]*domain.Booking{}}
}

func (r *BookingRepo) Create(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if booking.ID == "" {
		booking.ID = newID()
	}
	if booking.Status == "" {
		booking.Status = domain.BookingStatusPending
	}
	booking.CreatedAt = stamp()
	booking.UpdatedAt = booking.CreatedAt
	if booking.BookingDate.IsZero() {
		booking.BookingDate = booking.CreatedAt
	}

	cp := copyBooking(booking)
	r.bookings[booking.ID] = cp
	r.order = append(r.order, booking.ID)
	return nil
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, notFound("booking", id)
	}
	return copyBooking(b), nil
}

// List returns bookings newest-first, as the postgres implementation does.
func (r *BookingRepo) List(_ context.Context) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Booking, 0, len(r.order))
	for _, id := range r.order {
		if b, ok := r.bookings[id]; ok {
			out = append(out, copyBooking(b))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *BookingRepo) Update(_ context.Context, id string, in domain.UpdateBookingInput) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, notFound("booking", id)
	}

	if in.Property != nil {
		b.Property = *in.Property
	}
	if in.TokenAmount != nil {
		b.TokenAmount = *in.TokenAmount
	}
	if in.BookingDate != nil {
		b.BookingDate = *in.BookingDate
	}
	if in.Status != nil {
		b.Status = *in.Status
	}
	b.UpdatedAt = stamp()

	return copyBooking(b), nil
}

func (r *BookingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return notFound("booking", id)
	}
	delete(r.bookings, id)
	return nil
}

func copyBooking(b *domain.Booking) *domain.Booking {
	cp := *b
	cp.Lead = nil
	cp.HandledBy = nil
	return &cp
}
