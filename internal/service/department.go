package service

import (
	"context"
	"fmt"

	"github.com/khiasu/UniManagePro/internal/domain"
	"github.com/khiasu/UniManagePro/internal/repository"
	"github.com/rs/zerolog/log"
)

// DepartmentCache is the read-through cache in front of the department list.
// Nil caches are tolerated so the memory backend can run without Redis.
type DepartmentCache interface {
	Get(ctx context.Context) ([]domain.Department, error)
	Set(ctx context.Context, departments []domain.Department) error
	Invalidate(ctx context.Context) error
}

// DepartmentService serves department reference data.
type DepartmentService struct {
	departments repository.DepartmentRepository
	cache       DepartmentCache
}

// NewDepartmentService creates a new department service. cache may be nil.
func NewDepartmentService(departments repository.DepartmentRepository, cache DepartmentCache) *DepartmentService {
	return &DepartmentService{departments: departments, cache: cache}
}

// List returns all departments, read through the cache when one is wired.
func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("department cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	departments, err := s.departments.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	if s.cache != nil && len(departments) > 0 {
		if err := s.cache.Set(ctx, departments); err != nil {
			log.Warn().Err(err).Msg("department cache write failed")
		}
	}
	return departments, nil
}

// Create registers a department and drops the cached list.
func (s *DepartmentService) Create(ctx context.Context, dept *domain.Department) error {
	if err := s.departments.CreateDepartment(ctx, dept); err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("department cache invalidate failed")
		}
	}
	return nil
}
