package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/khiasu/UniManagePro/internal/domain"
)

const bookingColumns = `id, resource_id, user_id, start_time, end_time, status, purpose, attendees,
	approved_by, approved_at, created_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID,
		&b.ResourceID,
		&b.UserID,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.Purpose,
		&b.Attendees,
		&b.ApprovedBy,
		&b.ApprovedAt,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}
	return &b, nil
}

func (s *Store) listBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// ListBookings retrieves all bookings
func (s *Store) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY start_time`
	return s.listBookings(ctx, query)
}

// GetBooking retrieves a booking by ID
func (s *Store) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(s.db.Pool.QueryRow(ctx, query, id))
}

// ListBookingsByUser retrieves all bookings created by a user
func (s *Store) ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY start_time`
	return s.listBookings(ctx, query, userID)
}

// ListBookingsByResource retrieves all bookings against a resource
func (s *Store) ListBookingsByResource(ctx context.Context, resourceID uuid.UUID) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE resource_id = $1 ORDER BY start_time`
	return s.listBookings(ctx, query, resourceID)
}

// ListBookingsByDateRange retrieves bookings fully contained in [start, end]
func (s *Store) ListBookingsByDateRange(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE start_time >= $1 AND end_time <= $2 ORDER BY start_time`
	return s.listBookings(ctx, query, start, end)
}

// CreateBooking creates a new booking
func (s *Store) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, resource_id, user_id, start_time, end_time, status, purpose, attendees,
			approved_by, approved_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := s.db.Pool.Exec(ctx, query,
		booking.ID,
		booking.ResourceID,
		booking.UserID,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.Purpose,
		booking.Attendees,
		booking.ApprovedBy,
		booking.ApprovedAt,
		booking.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// UpdateBookingStatus sets a booking's status and returns the updated row, or
// (nil, nil) when the booking does not exist.
func (s *Store) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	query := `UPDATE bookings SET status = $2 WHERE id = $1 RETURNING ` + bookingColumns
	return scanBooking(s.db.Pool.QueryRow(ctx, query, id, status))
}

// CancelBooking soft-cancels a booking; returns false when it does not exist.
func (s *Store) CancelBooking(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `UPDATE bookings SET status = $2 WHERE id = $1`

	tag, err := s.db.Pool.Exec(ctx, query, id, domain.BookingCancelled)
	if err != nil {
		return false, fmt.Errorf("failed to cancel booking: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
