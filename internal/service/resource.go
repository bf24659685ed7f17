package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khiasu/UniManagePro/internal/domain"
	"github.com/khiasu/UniManagePro/internal/repository"
)

// ResourceService serves the resource catalogue and derives per-resource
// status from confirmed bookings and the current instant.
type ResourceService struct {
	resources   repository.ResourceRepository
	departments repository.DepartmentRepository
	bookings    repository.BookingRepository
	now         func() time.Time
}

// NewResourceService creates a new resource service.
func NewResourceService(
	resources repository.ResourceRepository,
	departments repository.DepartmentRepository,
	bookings repository.BookingRepository,
) *ResourceService {
	return &ResourceService{
		resources:   resources,
		departments: departments,
		bookings:    bookings,
		now:         time.Now,
	}
}

// Status classifies the resource at instant now by scanning its confirmed
// bookings: ongoing when one covers now (end-exclusive, so a booking's final
// instant does not double-classify), booked when one is scheduled later,
// available otherwise. Maintenance is never derived here.
func (s *ResourceService) Status(ctx context.Context, resourceID uuid.UUID, now time.Time) (domain.ResourceStatus, error) {
	bookings, err := s.bookings.ListBookingsByResource(ctx, resourceID)
	if err != nil {
		return "", fmt.Errorf("failed to list bookings: %w", err)
	}

	future := false
	for _, b := range bookings {
		if b.Status != domain.BookingConfirmed {
			continue
		}
		if !b.StartTime.After(now) && b.EndTime.After(now) {
			return domain.StatusOngoing, nil
		}
		if b.StartTime.After(now) {
			future = true
		}
	}
	if future {
		return domain.StatusBooked, nil
	}
	return domain.StatusAvailable, nil
}

// List returns active resources, optionally filtered by department or type,
// each enriched with its department and derived status.
func (s *ResourceService) List(ctx context.Context, departmentID *uuid.UUID, resourceType string) ([]domain.ResourceView, error) {
	var (
		resources []domain.Resource
		err       error
	)
	switch {
	case departmentID != nil:
		resources, err = s.resources.ListResourcesByDepartment(ctx, *departmentID)
	case resourceType != "":
		resources, err = s.resources.ListResourcesByType(ctx, resourceType)
	default:
		resources, err = s.resources.ListResources(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	departments, err := s.departments.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	byID := make(map[uuid.UUID]domain.Department, len(departments))
	for _, d := range departments {
		byID[d.ID] = d
	}

	now := s.now()
	views := make([]domain.ResourceView, 0, len(resources))
	for _, r := range resources {
		status, err := s.Status(ctx, r.ID, now)
		if err != nil {
			return nil, err
		}
		view := domain.ResourceView{Resource: r, Status: status}
		if d, ok := byID[r.DepartmentID]; ok {
			dept := d
			view.Department = &dept
		}
		views = append(views, view)
	}
	return views, nil
}

// Get returns a single resource enriched with department and derived status.
func (s *ResourceService) Get(ctx context.Context, id uuid.UUID) (*domain.ResourceView, error) {
	resource, err := s.resources.GetResource(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	if resource == nil {
		return nil, domain.ErrResourceNotFound
	}

	status, err := s.Status(ctx, id, s.now())
	if err != nil {
		return nil, err
	}

	view := &domain.ResourceView{Resource: *resource, Status: status}
	department, err := s.departments.GetDepartment(ctx, resource.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	view.Department = department
	return view, nil
}

// Create registers a new resource. Working hours default to the campus
// standard window unless the payload overrides them.
func (s *ResourceService) Create(ctx context.Context, input domain.ResourceCreate) (*domain.Resource, error) {
	departmentID, err := uuid.Parse(input.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid department id: %w", err)
	}
	department, err := s.departments.GetDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	if department == nil {
		return nil, domain.ErrDepartmentNotFound
	}

	resource := &domain.Resource{
		ID:                uuid.New(),
		Name:              input.Name,
		Type:              input.Type,
		DepartmentID:      departmentID,
		Capacity:          input.Capacity,
		Equipment:         input.Equipment,
		Description:       input.Description,
		Location:          input.Location,
		IsActive:          true,
		RequiresApproval:  input.RequiresApproval,
		WorkingHoursStart: "09:00",
		WorkingHoursEnd:   "15:00",
		HasWorkingHours:   true,
		CreatedAt:         s.now(),
	}
	if input.WorkingHoursStart != "" {
		if _, err := domain.ParseClock(input.WorkingHoursStart); err != nil {
			return nil, err
		}
		resource.WorkingHoursStart = input.WorkingHoursStart
	}
	if input.WorkingHoursEnd != "" {
		if _, err := domain.ParseClock(input.WorkingHoursEnd); err != nil {
			return nil, err
		}
		resource.WorkingHoursEnd = input.WorkingHoursEnd
	}
	if input.HasWorkingHours != nil {
		resource.HasWorkingHours = *input.HasWorkingHours
	}

	if err := s.resources.CreateResource(ctx, resource); err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return resource, nil
}

// Update applies a partial update to a resource.
func (s *ResourceService) Update(ctx context.Context, id uuid.UUID, update domain.ResourceUpdate) (*domain.Resource, error) {
	if update.WorkingHoursStart != nil {
		if _, err := domain.ParseClock(*update.WorkingHoursStart); err != nil {
			return nil, err
		}
	}
	if update.WorkingHoursEnd != nil {
		if _, err := domain.ParseClock(*update.WorkingHoursEnd); err != nil {
			return nil, err
		}
	}

	resource, err := s.resources.UpdateResource(ctx, id, &update)
	if err != nil {
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}
	if resource == nil {
		return nil, domain.ErrResourceNotFound
	}
	return resource, nil
}
