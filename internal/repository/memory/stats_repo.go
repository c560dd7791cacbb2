package memory

import (
	"context"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

// StatsRepo computes the dashboard snapshot from the in-memory repos
type StatsRepo struct {
	leads        *LeadRepo
	enquiries    *EnquiryRepo
	bookings     *BookingRepo
	interactions *InteractionRepo
}

func NewStatsRepo(leads *LeadRepo, enquiries *EnquiryRepo, bookings *BookingRepo, interactions *InteractionRepo) *StatsRepo {
	return &StatsRepo{leads: leads, enquiries: enquiries, bookings: bookings, interactions: interactions}
}

func (r *StatsRepo) Snapshot(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{
		Leads:     domain.CollectionStats{ByStatus: map[string]int{}},
		Enquiries: domain.CollectionStats{ByStatus: map[string]int{}},
		Bookings:  domain.CollectionStats{ByStatus: map[string]int{}},
	}

	leads, err := r.leads.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range leads {
		stats.Leads.Total++
		stats.Leads.ByStatus[l.Status]++
	}

	enquiries, err := r.enquiries.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range enquiries {
		stats.Enquiries.Total++
		stats.Enquiries.ByStatus[e.Status]++
	}

	bookings, err := r.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		stats.Bookings.Total++
		stats.Bookings.ByStatus[b.Status]++
	}

	interactions, err := r.interactions.List(ctx)
	if err != nil {
		return nil, err
	}
	stats.Interactions = len(interactions)

	return stats, nil
}
