package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

// PostgresRefreshTokenRepository implements domain.RefreshTokenRepository
// using PostgreSQL
type PostgresRefreshTokenRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresRefreshTokenRepository creates a new refresh token repository
func NewPostgresRefreshTokenRepository(db *sql.DB, logger *slog.Logger) *PostgresRefreshTokenRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRefreshTokenRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists an issued refresh token
func (r *PostgresRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}

	query := `
		INSERT INTO refresh_tokens (id, token, user_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, token.ID, token.Token, token.UserID).Scan(&token.CreatedAt)
	if err != nil {
		r.logger.Error("failed to persist refresh token",
			slog.String("user_id", token.UserID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return nil
}

// GetByToken finds the persisted record for a refresh token value
func (r *PostgresRefreshTokenRepository) GetByToken(ctx context.Context, tokenValue string) (*domain.RefreshToken, error) {
	token := &domain.RefreshToken{}

	query := `
		SELECT id, token, user_id, created_at
		FROM refresh_tokens
		WHERE token = $1
	`

	err := r.db.QueryRowContext(ctx, query, tokenValue).Scan(
		&token.ID,
		&token.Token,
		&token.UserID,
		&token.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("refresh token: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return token, nil
}

// DeleteByToken removes the record if present. Deleting an absent token
// is not an error; logout must be idempotent.
func (r *PostgresRefreshTokenRepository) DeleteByToken(ctx context.Context, tokenValue string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, tokenValue)
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

// DeleteCreatedBefore purges tokens issued before the cutoff
func (r *PostgresRefreshTokenRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge refresh tokens: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged refresh tokens: %w", err)
	}
	return int(n), nil
}

// List returns every persisted refresh token
func (r *PostgresRefreshTokenRepository) List(ctx context.Context) ([]*domain.RefreshToken, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, token, user_id, created_at
		FROM refresh_tokens
		ORDER BY created_at ASC
	`)
	if err != nil {
		r.logger.Error("failed to list refresh tokens", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list refresh tokens: %w", err)
	}
	defer rows.Close()

	var tokens []*domain.RefreshToken
	for rows.Next() {
		token := &domain.RefreshToken{}
		if err := rows.Scan(&token.ID, &token.Token, &token.UserID, &token.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan refresh token: %w", err)
		}
		tokens = append(tokens, token)
	}

	return tokens, rows.Err()
}
