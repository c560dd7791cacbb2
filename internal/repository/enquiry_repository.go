package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

const enquiryColumns = `id, lead_id, property_interest, site_visit_date, status, created_at, updated_at`

// PostgresEnquiryRepository implements domain.EnquiryRepository using PostgreSQL
type PostgresEnquiryRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresEnquiryRepository creates a new enquiry repository
func NewPostgresEnquiryRepository(db *sql.DB, logger *slog.Logger) *PostgresEnquiryRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEnquiryRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new enquiry
func (r *PostgresEnquiryRepository) Create(ctx context.Context, enquiry *domain.Enquiry) error {
	if enquiry.ID == "" {
		enquiry.ID = uuid.NewString()
	}
	if enquiry.Status == "" {
		enquiry.Status = domain.EnquiryStatusScheduled
	}

	query := `
		INSERT INTO enquiries (id, lead_id, property_interest, site_visit_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		enquiry.ID,
		enquiry.LeadID,
		enquiry.PropertyInterest,
		enquiry.SiteVisitDate,
		enquiry.Status,
	).Scan(&enquiry.CreatedAt, &enquiry.UpdatedAt)

	if err != nil {
		r.logger.Error("failed to create enquiry",
			slog.String("lead_id", enquiry.LeadID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create enquiry: %w", err)
	}

	return nil
}

// GetByID retrieves an enquiry by ID
func (r *PostgresEnquiryRepository) GetByID(ctx context.Context, id string) (*domain.Enquiry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+enquiryColumns+` FROM enquiries WHERE id = $1`, id)

	enquiry, err := scanEnquiry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("enquiry %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get enquiry: %w", err)
	}

	return enquiry, nil
}

// List returns all enquiries in insertion order
func (r *PostgresEnquiryRepository) List(ctx context.Context) ([]*domain.Enquiry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+enquiryColumns+` FROM enquiries ORDER BY created_at ASC`)
	if err != nil {
		r.logger.Error("failed to list enquiries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}
	defer rows.Close()

	var enquiries []*domain.Enquiry
	for rows.Next() {
		enquiry, err := scanEnquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enquiry: %w", err)
		}
		enquiries = append(enquiries, enquiry)
	}

	return enquiries, rows.Err()
}

// Update applies a partial update; nil fields keep their stored value
func (r *PostgresEnquiryRepository) Update(ctx context.Context, id string, in domain.UpdateEnquiryInput) (*domain.Enquiry, error) {
	query := `
		UPDATE enquiries
		SET property_interest = COALESCE($2, property_interest),
		    site_visit_date = COALESCE($3, site_visit_date),
		    status = COALESCE($4, status),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + enquiryColumns

	row := r.db.QueryRowContext(ctx, query, id, in.PropertyInterest, in.SiteVisitDate, in.Status)

	enquiry, err := scanEnquiry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("enquiry %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update enquiry: %w", err)
	}

	return enquiry, nil
}

// Delete removes the enquiry record
func (r *PostgresEnquiryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM enquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete enquiry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("enquiry %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanEnquiry(s scanner) (*domain.Enquiry, error) {
	enquiry := &domain.Enquiry{}
	var siteVisit sql.NullTime

	err := s.Scan(
		&enquiry.ID,
		&enquiry.LeadID,
		&enquiry.PropertyInterest,
		&siteVisit,
		&enquiry.Status,
		&enquiry.CreatedAt,
		&enquiry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if siteVisit.Valid {
		enquiry.SiteVisitDate = &siteVisit.Time
	}

	return enquiry, nil
}
