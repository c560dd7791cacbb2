package domain

import "context"

// Stats is the dashboard summary: record counts per collection, grouped
// by status where the entity has one.
type Stats struct {
	Leads        CollectionStats `json:"leads"`
	Enquiries    CollectionStats `json:"enquiries"`
	Bookings     CollectionStats `json:"bookings"`
	Interactions int             `json:"interactions"`
}

// CollectionStats holds a total plus a per-status breakdown.
type CollectionStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}

// StatsRepository computes the dashboard snapshot
type StatsRepository interface {
	Snapshot(ctx context.Context) (*Stats, error)
}
