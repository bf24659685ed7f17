package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/khiasu/UniManagePro/internal/domain"
)

// ListDepartments retrieves all departments
func (s *Store) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	query := `SELECT id, name, code, description, icon, color FROM departments ORDER BY name`

	rows, err := s.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []domain.Department
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Code, &d.Description, &d.Icon, &d.Color); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}

	return departments, rows.Err()
}

// GetDepartment retrieves a department by ID
func (s *Store) GetDepartment(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	query := `SELECT id, name, code, description, icon, color FROM departments WHERE id = $1`

	var d domain.Department
	err := s.db.Pool.QueryRow(ctx, query, id).Scan(&d.ID, &d.Name, &d.Code, &d.Description, &d.Icon, &d.Color)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	return &d, nil
}

// CreateDepartment creates a new department
func (s *Store) CreateDepartment(ctx context.Context, dept *domain.Department) error {
	query := `
		INSERT INTO departments (id, name, code, description, icon, color)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.Pool.Exec(ctx, query,
		dept.ID,
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
