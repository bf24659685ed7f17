package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khiasu/UniManagePro/internal/domain"
	"github.com/khiasu/UniManagePro/internal/repository"
)

// ErrAttendeesExceedCapacity rejects payloads asking for more attendees than
// the resource holds. Enforced at the request layer, not inside Validate.
var ErrAttendeesExceedCapacity = errors.New("attendees exceed resource capacity")

// ErrInvalidInterval rejects payloads where the start does not precede the end.
var ErrInvalidInterval = errors.New("start time must be before end time")

// BookingService owns booking creation, cancellation and the conflict /
// working-hours validation around them.
type BookingService struct {
	resources repository.ResourceRepository
	bookings  repository.BookingRepository
	locks     *resourceLocks
	now       func() time.Time
}

// NewBookingService creates a new booking service.
func NewBookingService(resources repository.ResourceRepository, bookings repository.BookingRepository) *BookingService {
	return &BookingService{
		resources: resources,
		bookings:  bookings,
		locks:     newResourceLocks(),
		now:       time.Now,
	}
}

// Validate checks a proposed interval [start, end) against the resource's
// working-hours policy and its existing non-cancelled bookings. Expected
// rejections come back as *domain.BookingError or domain.ErrResourceNotFound;
// only store failures are returned as plain errors. The start < end
// precondition is the caller's.
func (s *BookingService) Validate(ctx context.Context, resourceID uuid.UUID, start, end time.Time) error {
	resource, err := s.resources.GetResource(ctx, resourceID)
	if err != nil {
		return fmt.Errorf("failed to get resource: %w", err)
	}
	if resource == nil {
		return domain.ErrResourceNotFound
	}

	if resource.HasWorkingHours {
		windowStart, err := domain.ParseClock(resource.WorkingHoursStart)
		if err != nil {
			return fmt.Errorf("resource %s has malformed working hours: %w", resource.ID, err)
		}
		windowEnd, err := domain.ParseClock(resource.WorkingHoursEnd)
		if err != nil {
			return fmt.Errorf("resource %s has malformed working hours: %w", resource.ID, err)
		}
		if domain.MinuteOfDay(start) < windowStart || domain.MinuteOfDay(end) > windowEnd {
			return domain.NewOutsideWorkingHours(resource.WorkingHoursStart, resource.WorkingHoursEnd)
		}
	}

	conflicts, err := s.ConflictingBookings(ctx, resourceID, start, end)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return domain.NewTimeConflict(conflicts)
	}

	return nil
}

// ConflictingBookings returns the resource's non-cancelled bookings whose
// intervals overlap [start, end] under the boundary-inclusive rule.
func (s *BookingService) ConflictingBookings(ctx context.Context, resourceID uuid.UUID, start, end time.Time) ([]domain.Booking, error) {
	existing, err := s.bookings.ListBookingsByResource(ctx, resourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	var conflicts []domain.Booking
	for _, b := range existing {
		if b.Status == domain.BookingCancelled {
			continue
		}
		if b.Overlaps(start, end) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts, nil
}

// Create validates and persists a new pending booking. The whole
// validate-then-insert sequence holds the resource's lock so at most one of
// two racing overlapping requests can be admitted.
func (s *BookingService) Create(ctx context.Context, input domain.BookingCreate) (*domain.Booking, error) {
	if !input.StartTime.Before(input.EndTime) {
		return nil, ErrInvalidInterval
	}

	resourceID, err := uuid.Parse(input.ResourceID)
	if err != nil {
		return nil, fmt.Errorf("invalid resource id: %w", err)
	}
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	resource, err := s.resources.GetResource(ctx, resourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	if resource == nil {
		return nil, domain.ErrResourceNotFound
	}
	if input.Attendees > resource.Capacity {
		return nil, ErrAttendeesExceedCapacity
	}

	lock := s.locks.get(resourceID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.Validate(ctx, resourceID, input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:         uuid.New(),
		ResourceID: resourceID,
		UserID:     userID,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Status:     domain.BookingPending,
		Purpose:    input.Purpose,
		Attendees:  input.Attendees,
		CreatedAt:  s.now(),
	}

	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return booking, nil
}

// List returns bookings filtered by at most one of user, resource or date,
// each enriched with its resource.
func (s *BookingService) List(ctx context.Context, userID, resourceID *uuid.UUID, date *time.Time) ([]domain.BookingView, error) {
	var (
		bookings []domain.Booking
		err      error
	)
	switch {
	case userID != nil:
		bookings, err = s.bookings.ListBookingsByUser(ctx, *userID)
	case resourceID != nil:
		bookings, err = s.bookings.ListBookingsByResource(ctx, *resourceID)
	case date != nil:
		day := date.Truncate(24 * time.Hour)
		bookings, err = s.bookings.ListBookingsByDateRange(ctx, day, day.Add(24*time.Hour))
	default:
		bookings, err = s.bookings.ListBookings(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	views := make([]domain.BookingView, 0, len(bookings))
	for _, b := range bookings {
		view := domain.BookingView{Booking: b}
		resource, err := s.resources.GetResource(ctx, b.ResourceID)
		if err != nil {
			return nil, fmt.Errorf("failed to get resource: %w", err)
		}
		view.Resource = resource
		views = append(views, view)
	}
	return views, nil
}

// Availability returns the resource's non-cancelled bookings starting on the
// given day.
func (s *BookingService) Availability(ctx context.Context, resourceID uuid.UUID, day time.Time) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListBookingsByResource(ctx, resourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	dayStart := day.Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	out := make([]domain.Booking, 0)
	for _, b := range bookings {
		if b.Status == domain.BookingCancelled {
			continue
		}
		if !b.StartTime.Before(dayStart) && b.StartTime.Before(dayEnd) {
			out = append(out, b)
		}
	}
	return out, nil
}

// UpdateStatus sets a booking's status directly.
func (s *BookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.bookings.UpdateBookingStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}
	return booking, nil
}

// Cancel soft-cancels a booking.
func (s *BookingService) Cancel(ctx context.Context, id uuid.UUID) error {
	ok, err := s.bookings.CancelBooking(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	if !ok {
		return domain.ErrBookingNotFound
	}
	return nil
}
