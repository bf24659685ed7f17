package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/khiasu/UniManagePro/internal/domain"
)

const resourceColumns = `id, name, type, department_id, capacity, equipment, description, location,
	is_active, requires_approval, working_hours_start, working_hours_end, has_working_hours, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResource(row rowScanner) (*domain.Resource, error) {
	var (
		r            domain.Resource
		id           string
		departmentID string
		equipment    string
		createdAt    string
	)
	err := row.Scan(
		&id,
		&r.Name,
		&r.Type,
		&departmentID,
		&r.Capacity,
		&equipment,
		&r.Description,
		&r.Location,
		&r.IsActive,
		&r.RequiresApproval,
		&r.WorkingHoursStart,
		&r.WorkingHoursEnd,
		&r.HasWorkingHours,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan resource: %w", err)
	}

	if r.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid stored uuid %q: %w", id, err)
	}
	if r.DepartmentID, err = uuid.Parse(departmentID); err != nil {
		return nil, fmt.Errorf("invalid stored uuid %q: %w", departmentID, err)
	}
	if r.Equipment, err = unmarshalEquipment(equipment); err != nil {
		return nil, err
	}
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) listResources(ctx context.Context, query string, args ...any) ([]domain.Resource, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer rows.Close()

	var resources []domain.Resource
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, *r)
	}
	return resources, rows.Err()
}

// ListResources retrieves all active resources
func (s *Store) ListResources(ctx context.Context) ([]domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE is_active = 1 ORDER BY name`
	return s.listResources(ctx, query)
}

// GetResource retrieves a resource by ID, active or not
func (s *Store) GetResource(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = ?`
	return scanResource(s.db.QueryRowContext(ctx, query, id.String()))
}

// ListResourcesByDepartment retrieves active resources owned by a department
func (s *Store) ListResourcesByDepartment(ctx context.Context, departmentID uuid.UUID) ([]domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE department_id = ? AND is_active = 1 ORDER BY name`
	return s.listResources(ctx, query, departmentID.String())
}

// ListResourcesByType retrieves active resources of a given type
func (s *Store) ListResourcesByType(ctx context.Context, resourceType string) ([]domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE type = ? AND is_active = 1 ORDER BY name`
	return s.listResources(ctx, query, resourceType)
}

// CreateResource creates a new resource
func (s *Store) CreateResource(ctx context.Context, resource *domain.Resource) error {
	equipment, err := marshalEquipment(resource.Equipment)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO resources (id, name, type, department_id, capacity, equipment, description, location,
			is_active, requires_approval, working_hours_start, working_hours_end, has_working_hours, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		resource.ID.String(),
		resource.Name,
		resource.Type,
		resource.DepartmentID.String(),
		resource.Capacity,
		equipment,
		resource.Description,
		resource.Location,
		resource.IsActive,
		resource.RequiresApproval,
		resource.WorkingHoursStart,
		resource.WorkingHoursEnd,
		resource.HasWorkingHours,
		formatTime(resource.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	return nil
}

// UpdateResource applies a partial update and returns the updated row, or
// (nil, nil) when the resource does not exist.
func (s *Store) UpdateResource(ctx context.Context, id uuid.UUID, update *domain.ResourceUpdate) (*domain.Resource, error) {
	var equipment any
	if update.Equipment != nil {
		marshalled, err := marshalEquipment(update.Equipment)
		if err != nil {
			return nil, err
		}
		equipment = marshalled
	}

	query := `
		UPDATE resources
		SET name = COALESCE(?, name),
		    capacity = COALESCE(?, capacity),
		    equipment = COALESCE(?, equipment),
		    description = COALESCE(?, description),
		    location = COALESCE(?, location),
		    is_active = COALESCE(?, is_active),
		    requires_approval = COALESCE(?, requires_approval),
		    working_hours_start = COALESCE(?, working_hours_start),
		    working_hours_end = COALESCE(?, working_hours_end),
		    has_working_hours = COALESCE(?, has_working_hours)
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		update.Name,
		update.Capacity,
		equipment,
		update.Description,
		update.Location,
		update.IsActive,
		update.RequiresApproval,
		update.WorkingHoursStart,
		update.WorkingHoursEnd,
		update.HasWorkingHours,
		id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to update resource: %w", err)
	} else if n == 0 {
		return nil, nil
	}

	return s.GetResource(ctx, id)
}
