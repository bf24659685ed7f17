package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a booking. Ongoing and completed are
// declared for schema compatibility; no operation transitions into them.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingOngoing   BookingStatus = "ongoing"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingOngoing, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Booking represents a time-bounded reservation of a resource by a user.
// Invariant: StartTime < EndTime.
type Booking struct {
	ID         uuid.UUID     `json:"id"`
	ResourceID uuid.UUID     `json:"resourceId"`
	UserID     uuid.UUID     `json:"userId"`
	StartTime  time.Time     `json:"startTime"`
	EndTime    time.Time     `json:"endTime"`
	Status     BookingStatus `json:"status"`
	Purpose    string        `json:"purpose"`
	Attendees  int           `json:"attendees"`
	ApprovedBy *uuid.UUID    `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time    `json:"approvedAt,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Overlaps reports whether the booking's interval conflicts with
// [start, end]. The test is deliberately boundary-inclusive: back-to-back
// bookings sharing an exact instant are treated as conflicting.
func (b Booking) Overlaps(start, end time.Time) bool {
	if !b.StartTime.After(start) && !b.EndTime.Before(start) {
		return true
	}
	if !b.StartTime.After(end) && !b.EndTime.Before(end) {
		return true
	}
	return !start.After(b.StartTime) && !b.EndTime.After(end)
}

// BookingCreate represents booking creation data
type BookingCreate struct {
	ResourceID string    `json:"resourceId" validate:"required,uuid"`
	UserID     string    `json:"userId" validate:"required,uuid"`
	StartTime  time.Time `json:"startTime" validate:"required"`
	EndTime    time.Time `json:"endTime" validate:"required"`
	Purpose    string    `json:"purpose" validate:"required,max=512"`
	Attendees  int       `json:"attendees" validate:"required,gt=0"`
}

// BookingStatusUpdate represents a direct status change
type BookingStatusUpdate struct {
	Status BookingStatus `json:"status" validate:"required"`
}

// BookingView is a booking enriched with its resource for API responses.
type BookingView struct {
	Booking
	Resource *Resource `json:"resource,omitempty"`
}

// DashboardStats are the aggregate counts shown on the dashboard: derived
// status tallies over all active resources plus the requesting user's
// not-yet-concluded bookings.
type DashboardStats struct {
	Available  int `json:"available"`
	Booked     int `json:"booked"`
	Ongoing    int `json:"ongoing"`
	MyBookings int `json:"myBookings"`
}
