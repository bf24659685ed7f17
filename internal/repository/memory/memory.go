// Package memory implements the repository contracts over in-process maps.
// It backs tests and the zero-dependency dev mode; semantics deliberately
// mirror the SQL-backed stores.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/khiasu/UniManagePro/internal/domain"
)

// Store holds all entities in maps keyed by generated identifier.
type Store struct {
	mu          sync.RWMutex
	users       map[uuid.UUID]domain.User
	departments map[uuid.UUID]domain.Department
	resources   map[uuid.UUID]domain.Resource
	bookings    map[uuid.UUID]domain.Booking
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:       make(map[uuid.UUID]domain.User),
		departments: make(map[uuid.UUID]domain.Department),
		resources:   make(map[uuid.UUID]domain.Resource),
		bookings:    make(map[uuid.UUID]domain.Booking),
	}
}

// User methods

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

// Department methods

func (s *Store) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Department, 0, len(s.departments))
	for _, d := range s.departments {
		out = append(out, d)
	}
	return out, nil
}

func (s *Store) GetDepartment(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.departments[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (s *Store) CreateDepartment(ctx context.Context, dept *domain.Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments[dept.ID] = *dept
	return nil
}

// Resource methods

func (s *Store) ListResources(ctx context.Context) ([]domain.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Resource
	for _, r := range s.resources {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) GetResource(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.resources[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (s *Store) ListResourcesByDepartment(ctx context.Context, departmentID uuid.UUID) ([]domain.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Resource
	for _, r := range s.resources {
		if r.DepartmentID == departmentID && r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) ListResourcesByType(ctx context.Context, resourceType string) ([]domain.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Resource
	for _, r := range s.resources {
		if r.Type == resourceType && r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) CreateResource(ctx context.Context, resource *domain.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[resource.ID] = *resource
	return nil
}

func (s *Store) UpdateResource(ctx context.Context, id uuid.UUID, update *domain.ResourceUpdate) (*domain.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resources[id]
	if !ok {
		return nil, nil
	}
	if update.Name != nil {
		r.Name = *update.Name
	}
	if update.Capacity != nil {
		r.Capacity = *update.Capacity
	}
	if update.Equipment != nil {
		r.Equipment = update.Equipment
	}
	if update.Description != nil {
		r.Description = *update.Description
	}
	if update.Location != nil {
		r.Location = *update.Location
	}
	if update.IsActive != nil {
		r.IsActive = *update.IsActive
	}
	if update.RequiresApproval != nil {
		r.RequiresApproval = *update.RequiresApproval
	}
	if update.WorkingHoursStart != nil {
		r.WorkingHoursStart = *update.WorkingHoursStart
	}
	if update.WorkingHoursEnd != nil {
		r.WorkingHoursEnd = *update.WorkingHoursEnd
	}
	if update.HasWorkingHours != nil {
		r.HasWorkingHours = *update.HasWorkingHours
	}
	s.resources[id] = r
	return &r, nil
}

// Booking methods

func (s *Store) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (s *Store) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.bookings[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (s *Store) ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) ListBookingsByResource(ctx context.Context, resourceID uuid.UUID) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.ResourceID == resourceID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) ListBookingsByDateRange(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Booking
	for _, b := range s.bookings {
		if !b.StartTime.Before(start) && !b.EndTime.After(end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[booking.ID] = *booking
	return nil
}

func (s *Store) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	b.Status = status
	s.bookings[id] = b
	return &b, nil
}

func (s *Store) CancelBooking(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return false, nil
	}
	b.Status = domain.BookingCancelled
	s.bookings[id] = b
	return true, nil
}
