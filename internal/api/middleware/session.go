package middleware

import (
	"context"
	"net/http"

	"github.com/khiasu/UniManagePro/internal/api/response"
	"github.com/khiasu/UniManagePro/internal/domain"
	"github.com/khiasu/UniManagePro/internal/service"
)

type contextKey string

const userKey contextKey = "user"

// SessionMiddleware resolves the demo session user and stores it on the
// request context. Requests fail with 401 when the user cannot be resolved.
type SessionMiddleware struct {
	auth *service.AuthService
}

// NewSessionMiddleware creates a new session middleware.
func NewSessionMiddleware(auth *service.AuthService) *SessionMiddleware {
	return &SessionMiddleware{auth: auth}
}

// Require resolves the session user or rejects with 401.
func (m *SessionMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.auth.CurrentUser(r.Context())
		if err != nil {
			response.Unauthorized(w, "not authenticated")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUser gets the session user from context.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}
