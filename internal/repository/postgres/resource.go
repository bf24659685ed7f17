package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/khiasu/UniManagePro/internal/domain"
)

const resourceColumns = `id, name, type, department_id, capacity, equipment, description, location,
	is_active, requires_approval, working_hours_start, working_hours_end, has_working_hours, created_at`

func scanResource(row pgx.Row) (*domain.Resource, error) {
	var r domain.Resource
	err := row.Scan(
		&r.ID,
		&r.Name,
		&r.Type,
		&r.DepartmentID,
		&r.Capacity,
		&r.Equipment,
		&r.Description,
		&r.Location,
		&r.IsActive,
		&r.RequiresApproval,
		&r.WorkingHoursStart,
		&r.WorkingHoursEnd,
		&r.HasWorkingHours,
		&r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan resource: %w", err)
	}
	return &r, nil
}

func (s *Store) listResources(ctx context.Context, query string, args ...any) ([]domain.Resource, error) {
	rows, err := s.db.Pool.Query(ctx, query, args...)
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
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE is_active ORDER BY name`
	return s.listResources(ctx, query)
}

// GetResource retrieves a resource by ID, active or not
func (s *Store) GetResource(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`
	return scanResource(s.db.Pool.QueryRow(ctx, query, id))
}

// ListResourcesByDepartment retrieves active resources owned by a department
func (s *Store) ListResourcesByDepartment(ctx context.Context, departmentID uuid.UUID) ([]domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE department_id = $1 AND is_active ORDER BY name`
	return s.listResources(ctx, query, departmentID)
}

// ListResourcesByType retrieves active resources of a given type
func (s *Store) ListResourcesByType(ctx context.Context, resourceType string) ([]domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE type = $1 AND is_active ORDER BY name`
	return s.listResources(ctx, query, resourceType)
}

// CreateResource creates a new resource
func (s *Store) CreateResource(ctx context.Context, resource *domain.Resource) error {
	query := `
		INSERT INTO resources (id, name, type, department_id, capacity, equipment, description, location,
			is_active, requires_approval, working_hours_start, working_hours_end, has_working_hours, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := s.db.Pool.Exec(ctx, query,
		resource.ID,
		resource.Name,
		resource.Type,
		resource.DepartmentID,
		resource.Capacity,
		resource.Equipment,
		resource.Description,
		resource.Location,
		resource.IsActive,
		resource.RequiresApproval,
		resource.WorkingHoursStart,
		resource.WorkingHoursEnd,
		resource.HasWorkingHours,
		resource.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	return nil
}

// UpdateResource applies a partial update and returns the updated row, or
// (nil, nil) when the resource does not exist.
func (s *Store) UpdateResource(ctx context.Context, id uuid.UUID, update *domain.ResourceUpdate) (*domain.Resource, error) {
	query := `
		UPDATE resources
		SET name = COALESCE($2, name),
		    capacity = COALESCE($3, capacity),
		    equipment = COALESCE($4, equipment),
		    description = COALESCE($5, description),
		    location = COALESCE($6, location),
		    is_active = COALESCE($7, is_active),
		    requires_approval = COALESCE($8, requires_approval),
		    working_hours_start = COALESCE($9, working_hours_start),
		    working_hours_end = COALESCE($10, working_hours_end),
		    has_working_hours = COALESCE($11, has_working_hours)
		WHERE id = $1
		RETURNING ` + resourceColumns

	return scanResource(s.db.Pool.QueryRow(ctx, query, id,
		update.Name,
		update.Capacity,
		update.Equipment,
		update.Description,
		update.Location,
		update.IsActive,
		update.RequiresApproval,
		update.WorkingHoursStart,
		update.WorkingHoursEnd,
		update.HasWorkingHours,
	))
}
