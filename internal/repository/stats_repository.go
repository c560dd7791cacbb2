package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

// PostgresStatsRepository computes the dashboard snapshot with grouped
// counts over the four collections
type PostgresStatsRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresStatsRepository creates a new stats repository
func NewPostgresStatsRepository(db *sql.DB, logger *slog.Logger) *PostgresStatsRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStatsRepository{
		db:     db,
		logger: logger,
	}
}

// Snapshot returns per-status counts for leads, enquiries and bookings
// plus the interaction total.
func (r *PostgresStatsRepository) Snapshot(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{}

	var err error
	if stats.Leads, err = r.countByStatus(ctx, "leads"); err != nil {
		return nil, err
	}
	if stats.Enquiries, err = r.countByStatus(ctx, "enquiries"); err != nil {
		return nil, err
	}
	if stats.Bookings, err = r.countByStatus(ctx, "bookings"); err != nil {
		return nil, err
	}

	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM interactions`).Scan(&stats.Interactions); err != nil {
		return nil, fmt.Errorf("failed to count interactions: %w", err)
	}

	return stats, nil
}

func (r *PostgresStatsRepository) countByStatus(ctx context.Context, table string) (domain.CollectionStats, error) {
	out := domain.CollectionStats{ByStatus: map[string]int{}}

	// table is one of our fixed collection names, never user input
	rows, err := r.db.QueryContext(ctx, `SELECT status, count(*) FROM `+table+` GROUP BY status`)
	if err != nil {
		r.logger.Error("failed to count by status",
			slog.String("table", table),
			slog.String("error", err.Error()),
		)
		return out, fmt.Errorf("failed to count %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return out, fmt.Errorf("failed to scan %s count: %w", table, err)
		}
		out.ByStatus[status] = count
		out.Total += count
	}

	return out, rows.Err()
}
