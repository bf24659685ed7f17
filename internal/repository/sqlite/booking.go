package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khiasu/UniManagePro/internal/domain"
)

const bookingColumns = `id, resource_id, user_id, start_time, end_time, status, purpose, attendees,
	approved_by, approved_at, created_at`

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b          domain.Booking
		id         string
		resourceID string
		userID     string
		startTime  string
		endTime    string
		approvedBy sql.NullString
		approvedAt sql.NullString
		createdAt  string
	)
	err := row.Scan(
		&id,
		&resourceID,
		&userID,
		&startTime,
		&endTime,
		&b.Status,
		&b.Purpose,
		&b.Attendees,
		&approvedBy,
		&approvedAt,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}

	if b.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid stored uuid %q: %w", id, err)
	}
	if b.ResourceID, err = uuid.Parse(resourceID); err != nil {
		return nil, fmt.Errorf("invalid stored uuid %q: %w", resourceID, err)
	}
	if b.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("invalid stored uuid %q: %w", userID, err)
	}
	if b.StartTime, err = parseTime(startTime); err != nil {
		return nil, err
	}
	if b.EndTime, err = parseTime(endTime); err != nil {
		return nil, err
	}
	if b.ApprovedBy, err = parseNullUUID(approvedBy); err != nil {
		return nil, err
	}
	if b.ApprovedAt, err = parseNullTime(approvedAt); err != nil {
		return nil, err
	}
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) listBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
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
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	return scanBooking(s.db.QueryRowContext(ctx, query, id.String()))
}

// ListBookingsByUser retrieves all bookings created by a user
func (s *Store) ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ? ORDER BY start_time`
	return s.listBookings(ctx, query, userID.String())
}

// ListBookingsByResource retrieves all bookings against a resource
func (s *Store) ListBookingsByResource(ctx context.Context, resourceID uuid.UUID) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE resource_id = ? ORDER BY start_time`
	return s.listBookings(ctx, query, resourceID.String())
}

// ListBookingsByDateRange retrieves bookings fully contained in [start, end].
// Timestamps are stored fixed-width UTC, so text comparison matches time order.
func (s *Store) ListBookingsByDateRange(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE start_time >= ? AND end_time <= ? ORDER BY start_time`
	return s.listBookings(ctx, query, formatTime(start), formatTime(end))
}

// CreateBooking creates a new booking
func (s *Store) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, resource_id, user_id, start_time, end_time, status, purpose, attendees,
			approved_by, approved_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		booking.ID.String(),
		booking.ResourceID.String(),
		booking.UserID.String(),
		formatTime(booking.StartTime),
		formatTime(booking.EndTime),
		string(booking.Status),
		booking.Purpose,
		booking.Attendees,
		formatNullUUID(booking.ApprovedBy),
		formatNullTime(booking.ApprovedAt),
		formatTime(booking.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// UpdateBookingStatus sets a booking's status and returns the updated row, or
// (nil, nil) when the booking does not exist.
func (s *Store) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	query := `UPDATE bookings SET status = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query, string(status), id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	} else if n == 0 {
		return nil, nil
	}

	return s.GetBooking(ctx, id)
}

// CancelBooking soft-cancels a booking; returns false when it does not exist.
func (s *Store) CancelBooking(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `UPDATE bookings SET status = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query, string(domain.BookingCancelled), id.String())
	if err != nil {
		return false, fmt.Errorf("failed to cancel booking: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to cancel booking: %w", err)
	}
	return n > 0, nil
}
