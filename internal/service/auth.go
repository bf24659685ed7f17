package service

import (
	"context"
	"fmt"

	"github.com/khiasu/UniManagePro/internal/domain"
	"github.com/khiasu/UniManagePro/internal/repository"
)

// AuthService resolves the session user. Real authentication is out of scope;
// sessions resolve to the single configured demo user.
type AuthService struct {
	users        repository.UserRepository
	demoUsername string
}

// NewAuthService creates a new auth service.
func NewAuthService(users repository.UserRepository, demoUsername string) *AuthService {
	return &AuthService{users: users, demoUsername: demoUsername}
}

// CurrentUser returns the demo session user, or domain.ErrUserNotFound when
// the seed is absent (surfaced as 401 by the boundary).
func (s *AuthService) CurrentUser(ctx context.Context) (*domain.User, error) {
	user, err := s.users.GetUserByUsername(ctx, s.demoUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
