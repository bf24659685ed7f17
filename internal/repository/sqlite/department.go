package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/khiasu/UniManagePro/internal/domain"
)

// ListDepartments retrieves all departments
func (s *Store) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	query := `SELECT id, name, code, description, icon, color FROM departments ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []domain.Department
	for rows.Next() {
		var (
			d  domain.Department
			id string
		)
		if err := rows.Scan(&id, &d.Name, &d.Code, &d.Description, &d.Icon, &d.Color); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		if d.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid stored uuid %q: %w", id, err)
		}
		departments = append(departments, d)
	}

	return departments, rows.Err()
}

// GetDepartment retrieves a department by ID
func (s *Store) GetDepartment(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	query := `SELECT id, name, code, description, icon, color FROM departments WHERE id = ?`

	var (
		d   domain.Department
		raw string
	)
	err := s.db.QueryRowContext(ctx, query, id.String()).Scan(&raw, &d.Name, &d.Code, &d.Description, &d.Icon, &d.Color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	if d.ID, err = uuid.Parse(raw); err != nil {
		return nil, fmt.Errorf("invalid stored uuid %q: %w", raw, err)
	}

	return &d, nil
}

// CreateDepartment creates a new department
func (s *Store) CreateDepartment(ctx context.Context, dept *domain.Department) error {
	query := `
		INSERT INTO departments (id, name, code, description, icon, color)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		dept.ID.String(),
		dept.Name,
		dept.Code,
		dept.Description,
		dept.Icon,
		dept.Color,
	)
	if err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}

	return nil
}
