package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/khiasu/UniManagePro/internal/domain"
)

const (
	departmentCacheKey = "departments:all"
	departmentCacheTTL = 10 * time.Minute
)

// DepartmentCache caches the department list in Redis. Departments are static
// reference data, so a short TTL is plenty.
type DepartmentCache struct {
	client *Client
}

// NewDepartmentCache creates a new department cache
func NewDepartmentCache(client *Client) *DepartmentCache {
	return &DepartmentCache{client: client}
}

// Get retrieves the cached department list. A miss returns (nil, nil).
func (c *DepartmentCache) Get(ctx context.Context) ([]domain.Department, error) {
	data, err := c.client.rdb.Get(ctx, departmentCacheKey).Bytes()
	if err != nil {
		return nil, nil // cache miss
	}

	var departments []domain.Department
	if err := json.Unmarshal(data, &departments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal departments: %w", err)
	}
	return departments, nil
}

// Set caches the department list
func (c *DepartmentCache) Set(ctx context.Context, departments []domain.Department) error {
	data, err := json.Marshal(departments)
	if err != nil {
		return fmt.Errorf("failed to marshal departments: %w", err)
	}
	return c.client.rdb.Set(ctx, departmentCacheKey, data, departmentCacheTTL).Err()
}

// Invalidate drops the cached department list
func (c *DepartmentCache) Invalidate(ctx context.Context) error {
	return c.client.rdb.Del(ctx, departmentCacheKey).Err()
}
