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

const interactionColumns = `id, lead_id, notes, interaction_type, handled_by, created_at, updated_at`

// PostgresInteractionRepository implements domain.InteractionRepository
// using PostgreSQL
type PostgresInteractionRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresInteractionRepository creates a new interaction repository
func NewPostgresInteractionRepository(db *sql.DB, logger *slog.Logger) *PostgresInteractionRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresInteractionRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the interaction and appends its id to the parent lead's
// interaction list in one transaction. If the lead row does not exist the
// whole operation rolls back with domain.ErrNotFound, so the two writes
// can never diverge.
func (r *PostgresInteractionRepository) Create(ctx context.Context, interaction *domain.Interaction) error {
	if interaction.ID == "" {
		interaction.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO interactions (id, lead_id, notes, interaction_type, handled_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`,
		interaction.ID,
		interaction.LeadID,
		interaction.Notes,
		interaction.InteractionType,
		interaction.HandledByID,
	).Scan(&interaction.CreatedAt, &interaction.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to create interaction",
			slog.String("lead_id", interaction.LeadID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create interaction: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE leads
		SET interaction_ids = array_append(interaction_ids, $2),
		    updated_at = now()
		WHERE id = $1
	`, interaction.LeadID, interaction.ID)
	if err != nil {
		return fmt.Errorf("failed to link interaction to lead: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("lead %s: %w", interaction.LeadID, domain.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit interaction: %w", err)
	}

	return nil
}

// GetByID retrieves an interaction by ID
func (r *PostgresInteractionRepository) GetByID(ctx context.Context, id string) (*domain.Interaction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+interactionColumns+` FROM interactions WHERE id = $1`, id)

	interaction, err := scanInteraction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("interaction %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get interaction: %w", err)
	}

	return interaction, nil
}

// List returns all interactions in insertion order
func (r *PostgresInteractionRepository) List(ctx context.Context) ([]*domain.Interaction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+interactionColumns+` FROM interactions ORDER BY created_at ASC`)
	if err != nil {
		r.logger.Error("failed to list interactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	defer rows.Close()

	return collectInteractions(rows)
}

// ListByIDs returns interactions in the order of the given ids. Ids that
// no longer resolve are skipped; a lead's list may reference interactions
// deleted out from under it.
func (r *PostgresInteractionRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Interaction, error) {
	if len(ids) == 0 {
		return []*domain.Interaction{}, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+interactionColumns+` FROM interactions WHERE id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions by ids: %w", err)
	}
	defer rows.Close()

	fetched, err := collectInteractions(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Interaction, len(fetched))
	for _, interaction := range fetched {
		byID[interaction.ID] = interaction
	}

	ordered := make([]*domain.Interaction, 0, len(ids))
	for _, id := range ids {
		if interaction, ok := byID[id]; ok {
			ordered = append(ordered, interaction)
		}
	}

	return ordered, nil
}

// Update applies a partial update; nil fields keep their stored value
func (r *PostgresInteractionRepository) Update(ctx context.Context, id string, in domain.UpdateInteractionInput) (*domain.Interaction, error) {
	query := `
		UPDATE interactions
		SET notes = COALESCE($2, notes),
		    interaction_type = COALESCE($3, interaction_type),
		    handled_by = COALESCE($4, handled_by),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + interactionColumns

	row := r.db.QueryRowContext(ctx, query, id, in.Notes, in.InteractionType, in.HandledByID)

	interaction, err := scanInteraction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("interaction %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update interaction: %w", err)
	}

	return interaction, nil
}

// Delete removes the interaction record. The parent lead's id list is
// left as-is; stale entries are skipped on population.
func (r *PostgresInteractionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM interactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete interaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("interaction %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanInteraction(s scanner) (*domain.Interaction, error) {
	interaction := &domain.Interaction{}
	err := s.Scan(
		&interaction.ID,
		&interaction.LeadID,
		&interaction.Notes,
		&interaction.InteractionType,
		&interaction.HandledByID,
		&interaction.CreatedAt,
		&interaction.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return interaction, nil
}

func collectInteractions(rows *sql.Rows) ([]*domain.Interaction, error) {
	var interactions []*domain.Interaction
	for rows.Next() {
		interaction, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		interactions = append(interactions, interaction)
	}
	return interactions, rows.Err()
}
