package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResourceStatus classifies a resource's current booking state at a given
// instant. Derived on demand, never stored.
type ResourceStatus string

const (
	StatusAvailable ResourceStatus = "available"
	StatusBooked    ResourceStatus = "booked"
	StatusOngoing   ResourceStatus = "ongoing"
	// StatusMaintenance is part of the taxonomy for interface compatibility
	// but no operation currently produces it.
	StatusMaintenance ResourceStatus = "maintenance"
)

// Resource represents a bookable physical asset (lab, hall, court, room).
type Resource struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	DepartmentID     uuid.UUID `json:"departmentId"`
	Capacity         int       `json:"capacity"`
	Equipment        []string  `json:"equipment,omitempty"`
	Description      string    `json:"description,omitempty"`
	Location         string    `json:"location"`
	IsActive         bool      `json:"isActive"`
	RequiresApproval bool      `json:"requiresApproval"`
	// Daily time-of-day window during which the resource may be booked,
	// "HH:MM" 24-hour format. Ignored when HasWorkingHours is false
	// (courts and grounds open around the clock).
	WorkingHoursStart string    `json:"workingHoursStart"`
	WorkingHoursEnd   string    `json:"workingHoursEnd"`
	HasWorkingHours   bool      `json:"hasWorkingHours"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ResourceCreate represents resource creation data
type ResourceCreate struct {
	Name              string   `json:"name" validate:"required,max=128"`
	Type              string   `json:"type" validate:"required,max=64"`
	DepartmentID      string   `json:"departmentId" validate:"required,uuid"`
	Capacity          int      `json:"capacity" validate:"required,gt=0"`
	Equipment         []string `json:"equipment,omitempty"`
	Description       string   `json:"description,omitempty" validate:"omitempty,max=512"`
	Location          string   `json:"location" validate:"required,max=128"`
	RequiresApproval  bool     `json:"requiresApproval"`
	WorkingHoursStart string   `json:"workingHoursStart,omitempty"`
	WorkingHoursEnd   string   `json:"workingHoursEnd,omitempty"`
	HasWorkingHours   *bool    `json:"hasWorkingHours,omitempty"`
}

// ResourceUpdate represents a partial resource update (e.g. deactivation).
// Nil fields are left untouched.
type ResourceUpdate struct {
	Name              *string  `json:"name,omitempty" validate:"omitempty,max=128"`
	Capacity          *int     `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Equipment         []string `json:"equipment,omitempty"`
	Description       *string  `json:"description,omitempty" validate:"omitempty,max=512"`
	Location          *string  `json:"location,omitempty" validate:"omitempty,max=128"`
	IsActive          *bool    `json:"isActive,omitempty"`
	RequiresApproval  *bool    `json:"requiresApproval,omitempty"`
	WorkingHoursStart *string  `json:"workingHoursStart,omitempty"`
	WorkingHoursEnd   *string  `json:"workingHoursEnd,omitempty"`
	HasWorkingHours   *bool    `json:"hasWorkingHours,omitempty"`
}

// ResourceView is a resource enriched with its department and derived status
// for API responses.
type ResourceView struct {
	Resource
	Department *Department    `json:"department,omitempty"`
	Status     ResourceStatus `json:"status"`
}

// ParseClock converts an "HH:MM" working-hours boundary to minutes since
// midnight.
func ParseClock(s string) (int, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in clock value %q", s)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in clock value %q", s)
	}
	return hours*60 + minutes, nil
}

// MinuteOfDay returns the UTC time-of-day component of t in minutes since
// midnight. Working-hours comparisons are done in UTC throughout; callers
// convert for display only.
func MinuteOfDay(t time.Time) int {
	utc := t.UTC()
	return utc.Hour()*60 + utc.Minute()
}
