package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khiasu/UniManagePro/internal/domain"
	"github.com/khiasu/UniManagePro/internal/repository"
)

// DashboardService folds the status deriver over all active resources and
// counts the requesting user's live bookings. Pure read-only aggregation.
type DashboardService struct {
	resources    *ResourceService
	resourceRepo repository.ResourceRepository
	bookings     repository.BookingRepository
	now          func() time.Time
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(resources *ResourceService, resourceRepo repository.ResourceRepository, bookings repository.BookingRepository) *DashboardService {
	return &DashboardService{
		resources:    resources,
		resourceRepo: resourceRepo,
		bookings:     bookings,
		now:          time.Now,
	}
}

// Stats tallies derived status over active resources and counts the user's
// bookings that are neither cancelled nor concluded.
func (s *DashboardService) Stats(ctx context.Context, userID uuid.UUID) (*domain.DashboardStats, error) {
	now := s.now()

	active, err := s.resourceRepo.ListResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	stats := &domain.DashboardStats{}
	for _, r := range active {
		status, err := s.resources.Status(ctx, r.ID, now)
		if err != nil {
			return nil, err
		}
		switch status {
		case domain.StatusAvailable:
			stats.Available++
		case domain.StatusBooked:
			stats.Booked++
		case domain.StatusOngoing:
			stats.Ongoing++
		}
	}

	mine, err := s.bookings.ListBookingsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	for _, b := range mine {
		if b.Status != domain.BookingCancelled && !b.EndTime.Before(now) {
			stats.MyBookings++
		}
	}

	return stats, nil
}
