package domain

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
)

// User represents a platform user. The service runs with a single seeded demo
// user; the password field is never serialized.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         string    `json:"role"`
	Department   string    `json:"department"`
	ProfileImage string    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
