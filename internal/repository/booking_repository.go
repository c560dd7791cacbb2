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

const bookingColumns = `id, lead_id, property, token_amount, booking_date, handled_by, status, created_at, updated_at`

// PostgresBookingRepository implements domain.BookingRepository using PostgreSQL
type PostgresBookingRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresBookingRepository creates a new booking repository
func NewPostgresBookingRepository(db *sql.DB, logger *slog.Logger) *PostgresBookingRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBookingRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new booking. booking_date falls back to now() when the
// caller leaves it zero.
func (r *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.Status == "" {
		booking.Status = domain.BookingStatusPending
	}

	var bookingDate interface{}
	if !booking.BookingDate.IsZero() {
		bookingDate = booking.BookingDate
	}

	query := `
		INSERT INTO bookings (id, lead_id, property, token_amount, booking_date, handled_by, status)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()), $6, $7)
		RETURNING booking_date, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		booking.ID,
		booking.LeadID,
		booking.Property,
		booking.TokenAmount,
		bookingDate,
		booking.HandledByID,
		booking.Status,
	).Scan(&booking.BookingDate, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		r.logger.Error("failed to create booking",
			slog.String("lead_id", booking.LeadID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (r *PostgresBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)

	booking, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

// List returns all bookings newest-first by creation time
func (r *PostgresBookingRepository) List(ctx context.Context) ([]*domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("failed to list bookings", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

// Update applies a partial update; nil fields keep their stored value
func (r *PostgresBookingRepository) Update(ctx context.Context, id string, in domain.UpdateBookingInput) (*domain.Booking, error) {
	query := `
		UPDATE bookings
		SET property = COALESCE($2, property),
		    token_amount = COALESCE($3, token_amount),
		    booking_date = COALESCE($4, booking_date),
		    status = COALESCE($5, status),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + bookingColumns

	row := r.db.QueryRowContext(ctx, query, id, in.Property, in.TokenAmount, in.BookingDate, in.Status)

	booking, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	return booking, nil
}

// Delete removes the booking record
func (r *PostgresBookingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanBooking(s scanner) (*domain.Booking, error) {
	booking := &domain.Booking{}
	err := s.Scan(
		&booking.ID,
		&booking.LeadID,
		&booking.Property,
		&booking.TokenAmount,
		&booking.BookingDate,
		&booking.HandledByID,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return booking, nil
}
