package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for missing entities. Handlers map these to 404.
var (
	ErrResourceNotFound   = errors.New("resource not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrDepartmentNotFound = errors.New("department not found")
)

// Booking rejection codes
const (
	CodeOutsideWorkingHours = "outside_working_hours"
	CodeTimeConflict        = "time_conflict"
)

// BookingError is the tagged result returned when a proposed booking interval
// is rejected for an expected business reason. It is not used for store
// failures; those propagate as plain errors and become 500s at the boundary.
type BookingError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Conflicts []Booking `json:"conflicts,omitempty"`
}

func (e *BookingError) Error() string {
	return e.Message
}

// NewOutsideWorkingHours builds the rejection for an interval that leaves the
// resource's configured daily window. The window is included for user display.
func NewOutsideWorkingHours(start, end string) *BookingError {
	return &BookingError{
		Code:    CodeOutsideWorkingHours,
		Message: fmt.Sprintf("booking time is outside of working hours (%s-%s)", start, end),
	}
}

// NewTimeConflict builds the rejection for an interval overlapping existing
// bookings. The conflicting bookings ride along so the client can show them.
func NewTimeConflict(conflicts []Booking) *BookingError {
	return &BookingError{
		Code:      CodeTimeConflict,
		Message:   "booking time conflicts with existing bookings",
		Conflicts: conflicts,
	}
}
