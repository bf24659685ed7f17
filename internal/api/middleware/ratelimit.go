package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/khiasu/UniManagePro/internal/api/response"
	"github.com/khiasu/UniManagePro/internal/repository/redis"
)

// RateLimitMiddleware applies a fixed-window rate limit per client IP. There
// is no per-user identity to key on, so the remote address has to do.
type RateLimitMiddleware struct {
	rateLimiter *redis.RateLimiter
}

// NewRateLimitMiddleware creates a new rate limit middleware.
func NewRateLimitMiddleware(rateLimiter *redis.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{rateLimiter: rateLimiter}
}

// Limit enforces the rate limit. A failing limiter lets requests through
// rather than taking the API down with it.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}

		allowed, remaining, resetTime, err := m.rateLimiter.Allow(r.Context(), host)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", resetTime.Format(time.RFC3339))

		if !allowed {
			response.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
