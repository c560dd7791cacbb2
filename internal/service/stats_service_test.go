package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huzi29/crmsystemdesign/internal/domain"
	"github.com/huzi29/crmsystemdesign/internal/repository/memory"
)

func newStatsFixture() (*StatsService, *LeadService, *BookingService) {
	leads := memory.NewLeadRepo()
	interactions := memory.NewInteractionRepo(leads)
	enquiries := memory.NewEnquiryRepo()
	bookings := memory.NewBookingRepo()
	users := memory.NewUserRepo()
	stats := memory.NewStatsRepo(leads, enquiries, bookings, interactions)

	return NewStatsService(stats, NewMemorySnapshotCache(), nil),
		NewLeadService(leads, interactions, enquiries, users, nil),
		NewBookingService(bookings, leads, users, nil)
}

func TestStatsSnapshot(t *testing.T) {
	ctx := context.Background()
	statsService, leadService, bookingService := newStatsFixture()

	_, err := leadService.Create(ctx, validLead())
	require.NoError(t, err)

	in := validLead()
	in.Email = "second@example.com"
	in.Status = domain.LeadStatusContacted
	_, err = leadService.Create(ctx, in)
	require.NoError(t, err)

	_, err = bookingService.Create(ctx, CreateBookingInput{
		LeadID:      "lead-1",
		Property:    "Sunrise Towers 4B",
		TokenAmount: 50000,
		HandledByID: "agent-1",
	})
	require.NoError(t, err)

	stats, err := statsService.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Leads.Total)
	assert.Equal(t, 1, stats.Leads.ByStatus[domain.LeadStatusNew])
	assert.Equal(t, 1, stats.Leads.ByStatus[domain.LeadStatusContacted])
	assert.Equal(t, 1, stats.Bookings.Total)
	assert.Equal(t, 1, stats.Bookings.ByStatus[domain.BookingStatusPending])
	assert.Equal(t, 0, stats.Interactions)
}

// The snapshot is cached: a write inside the TTL window is not visible
// until the cache entry expires.
func TestStatsSnapshotCached(t *testing.T) {
	ctx := context.Background()
	statsService, leadService, _ := newStatsFixture()

	_, err := leadService.Create(ctx, validLead())
	require.NoError(t, err)

	first, err := statsService.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, first.Leads.Total)

	in := validLead()
	in.Email = "second@example.com"
	_, err = leadService.Create(ctx, in)
	require.NoError(t, err)

	second, err := statsService.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Leads.Total, "served from cache")
}

func TestStatsWithoutCache(t *testing.T) {
	ctx := context.Background()

	leads := memory.NewLeadRepo()
	interactions := memory.NewInteractionRepo(leads)
	enquiries := memory.NewEnquiryRepo()
	bookings := memory.NewBookingRepo()
	users := memory.NewUserRepo()
	stats := memory.NewStatsRepo(leads, enquiries, bookings, interactions)

	statsService := NewStatsService(stats, nil, nil)
	leadService := NewLeadService(leads, interactions, enquiries, users, nil)

	_, err := leadService.Create(ctx, validLead())
	require.NoError(t, err)

	first, err := statsService.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, first.Leads.Total)

	in := validLead()
	in.Email = "second@example.com"
	_, err = leadService.Create(ctx, in)
	require.NoError(t, err)

	// Without a cache every call recomputes
	second, err := statsService.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Leads.Total)
}
