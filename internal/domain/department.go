package domain

import "github.com/google/uuid"

// Department represents an owning academic department. Static reference data:
// created at seed or admin time, never mutated afterwards.
type Department struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
}

// DepartmentCreate represents department creation data
type DepartmentCreate struct {
	Name        string `json:"name" validate:"required,max=128"`
	Code        string `json:"code" validate:"required,max=16"`
	Description string `json:"description,omitempty" validate:"omitempty,max=512"`
	Icon        string `json:"icon" validate:"required,max=64"`
	Color       string `json:"color" validate:"required,max=32"`
}
