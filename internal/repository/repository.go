// Package repository defines the storage seam the services depend on. Any
// backend satisfying these narrow contracts is interchangeable; the booking
// validator and status deriver never see past them.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/khiasu/UniManagePro/internal/domain"
)

// UserRepository provides user lookup and creation. Lookups return (nil, nil)
// when no row matches.
type UserRepository interface {
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
}

// DepartmentRepository provides access to department reference data.
type DepartmentRepository interface {
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	GetDepartment(ctx context.Context, id uuid.UUID) (*domain.Department, error)
	CreateDepartment(ctx context.Context, dept *domain.Department) error
}

// ResourceRepository provides resource access. List methods return active
// resources only; GetResource resolves inactive ones too.
type ResourceRepository interface {
	ListResources(ctx context.Context) ([]domain.Resource, error)
	GetResource(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	ListResourcesByDepartment(ctx context.Context, departmentID uuid.UUID) ([]domain.Resource, error)
	ListResourcesByType(ctx context.Context, resourceType string) ([]domain.Resource, error)
	CreateResource(ctx context.Context, resource *domain.Resource) error
	UpdateResource(ctx context.Context, id uuid.UUID, update *domain.ResourceUpdate) (*domain.Resource, error)
}

// BookingRepository provides booking access. Cancellation is soft: the row
// stays, its status flips to cancelled.
type BookingRepository interface {
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
	ListBookingsByResource(ctx context.Context, resourceID uuid.UUID) ([]domain.Booking, error)
	ListBookingsByDateRange(ctx context.Context, start, end time.Time) ([]domain.Booking, error)
	CreateBooking(ctx context.Context, booking *domain.Booking) error
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (bool, error)
}

// Store bundles the four repositories a full backend implements.
type Store interface {
	UserRepository
	DepartmentRepository
	ResourceRepository
	BookingRepository
}
