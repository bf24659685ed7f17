package handler

import (
	"net/http"

	"github.com/khiasu/UniManagePro/internal/api/middleware"
	"github.com/khiasu/UniManagePro/internal/api/response"
)

// AuthHandler handles the session endpoints
type AuthHandler struct{}

// NewAuthHandler creates a new auth handler
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Me returns the session user. The password hash carries a json:"-" tag and
// never leaves the server.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	response.OK(w, user)
}
