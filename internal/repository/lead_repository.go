package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

const leadColumns = `id, name, email, phone, source, status, interaction_ids, enquiry_id, created_at, updated_at`

// PostgresLeadRepository implements domain.LeadRepository using PostgreSQL
type PostgresLeadRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresLeadRepository creates a new lead repository
func NewPostgresLeadRepository(db *sql.DB, logger *slog.Logger) *PostgresLeadRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLeadRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new lead
func (r *PostgresLeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.Status == "" {
		lead.Status = domain.LeadStatusNew
	}
	if lead.InteractionIDs == nil {
		lead.InteractionIDs = []string{}
	}

	query := `
		INSERT INTO leads (id, name, email, phone, source, status, interaction_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Source,
		lead.Status,
		pq.Array(lead.InteractionIDs),
	).Scan(&lead.CreatedAt, &lead.UpdatedAt)

	if err != nil {
		r.logger.Error("failed to create lead",
			slog.String("email", lead.Email),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create lead: %w", err)
	}

	return nil
}

// GetByID retrieves a lead by ID
func (r *PostgresLeadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)

	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lead %s: %w", id, domain.ErrNotFound)
		}
		r.logger.Error("failed to get lead by id",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	return lead, nil
}

// List returns all leads in insertion order
func (r *PostgresLeadRepository) List(ctx context.Context) ([]*domain.Lead, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at ASC`)
	if err != nil {
		r.logger.Error("failed to list leads", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []*domain.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// Update applies a partial update; nil fields keep their stored value
func (r *PostgresLeadRepository) Update(ctx context.Context, id string, in domain.UpdateLeadInput) (*domain.Lead, error) {
	query := `
		UPDATE leads
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    phone = COALESCE($4, phone),
		    source = COALESCE($5, source),
		    status = COALESCE($6, status),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + leadColumns

	row := r.db.QueryRowContext(ctx, query, id, in.Name, in.Email, in.Phone, in.Source, in.Status)

	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lead %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	return lead, nil
}

// Delete removes the lead record only; interactions, enquiries and
// bookings that reference it are left in place.
func (r *PostgresLeadRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("lead %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(s scanner) (*domain.Lead, error) {
	lead := &domain.Lead{}
	var enquiryID sql.NullString

	err := s.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Source,
		&lead.Status,
		pq.Array(&lead.InteractionIDs),
		&enquiryID,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if enquiryID.Valid {
		lead.EnquiryID = &enquiryID.String
	}
	if lead.InteractionIDs == nil {
		lead.InteractionIDs = []string{}
	}

	return lead, nil
}
