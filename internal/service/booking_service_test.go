package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huzi29/crmsystemdesign/internal/domain"
	"github.com/huzi29/crmsystemdesign/internal/repository/memory"
)

type bookingFixture struct {
	bookings *memory.BookingRepo
	leads    *memory.LeadRepo
	users    *memory.UserRepo

	bookingService *BookingService
	leadService    *LeadService
}

func newBookingFixture() *bookingFixture {
	bookings := memory.NewBookingRepo()
	leads := memory.NewLeadRepo()
	interactions := memory.NewInteractionRepo(leads)
	enquiries := memory.NewEnquiryRepo()
	users := memory.NewUserRepo()

	return &bookingFixture{
		bookings: bookings,
		leads:    leads,
		users:    users,

		bookingService: NewBookingService(bookings, leads, users, nil),
		leadService:    NewLeadService(leads, interactions, enquiries, users, nil),
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()

	agent := &domain.User{Name: "Asha Mehta", Email: "asha@example.com", Roles: []string{"agent"}, MobileNo: "5551230000"}
	require.NoError(t, f.users.Create(ctx, agent))

	lead, err := f.leadService.Create(ctx, validLead())
	require.NoError(t, err)

	booking, err := f.bookingService.Create(ctx, CreateBookingInput{
		LeadID:      lead.ID,
		Property:    "Sunrise Towers 4B",
		TokenAmount: 50000,
		HandledByID: agent.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, domain.BookingStatusPending, booking.Status, "status defaults to Pending")
	assert.False(t, booking.BookingDate.IsZero(), "booking date defaults to creation time")
}

func TestCreateBookingValidation(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()

	in := CreateBookingInput{
		LeadID:      "lead-1",
		Property:    "Sunrise Towers 4B",
		TokenAmount: 50000,
		HandledByID: "agent-1",
	}

	bad := in
	bad.TokenAmount = 0
	_, err := f.bookingService.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	bad = in
	bad.Status = "Ghosted"
	_, err = f.bookingService.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	bad = in
	bad.Property = ""
	_, err = f.bookingService.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateBooking(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()

	booking, err := f.bookingService.Create(ctx, CreateBookingInput{
		LeadID:      "lead-1",
		Property:    "Sunrise Towers 4B",
		TokenAmount: 50000,
		HandledByID: "agent-1",
	})
	require.NoError(t, err)

	status := domain.BookingStatusConfirmed
	amount := 75000.0
	updated, err := f.bookingService.Update(ctx, booking.ID, domain.UpdateBookingInput{
		Status:      &status,
		TokenAmount: &amount,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, updated.Status)
	assert.Equal(t, 75000.0, updated.TokenAmount)

	negative := -1.0
	_, err = f.bookingService.Update(ctx, booking.ID, domain.UpdateBookingInput{TokenAmount: &negative})
	assert.ErrorIs(t, err, domain.ErrValidation)

	badStatus := "Ghosted"
	_, err = f.bookingService.Update(ctx, booking.ID, domain.UpdateBookingInput{Status: &badStatus})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetAllBookingsNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()

	older := time.Now().Add(-48 * time.Hour)
	newer := time.Now().Add(-1 * time.Hour)

	first, err := f.bookingService.Create(ctx, CreateBookingInput{
		LeadID:      "lead-1",
		Property:    "Sunrise Towers 4B",
		TokenAmount: 50000,
		BookingDate: &older,
		HandledByID: "agent-1",
	})
	require.NoError(t, err)

	// Ensure distinct creation timestamps
	time.Sleep(5 * time.Millisecond)

	second, err := f.bookingService.Create(ctx, CreateBookingInput{
		LeadID:      "lead-2",
		Property:    "Lakeview Villa 7",
		TokenAmount: 120000,
		BookingDate: &newer,
		HandledByID: "agent-1",
	})
	require.NoError(t, err)

	all, err := f.bookingService.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func TestBookingResolvesReferences(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()

	agent := &domain.User{Name: "Asha Mehta", Email: "asha@example.com", Roles: []string{"agent"}, MobileNo: "5551230000"}
	require.NoError(t, f.users.Create(ctx, agent))

	lead, err := f.leadService.Create(ctx, validLead())
	require.NoError(t, err)

	booking, err := f.bookingService.Create(ctx, CreateBookingInput{
		LeadID:      lead.ID,
		Property:    "Sunrise Towers 4B",
		TokenAmount: 50000,
		HandledByID: agent.ID,
	})
	require.NoError(t, err)

	fetched, err := f.bookingService.GetByID(ctx, booking.ID)
	require.NoError(t, err)

	require.NotNil(t, fetched.Lead)
	assert.Equal(t, "Sam Buyer", fetched.Lead.Name)
	assert.Equal(t, "5559876543", fetched.Lead.Phone)

	require.NotNil(t, fetched.HandledBy)
	assert.Equal(t, "Asha Mehta", fetched.HandledBy.Name)
	assert.Equal(t, []string{"agent"}, fetched.HandledBy.Roles)
}
