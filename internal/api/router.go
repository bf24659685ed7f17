package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/khiasu/UniManagePro/internal/api/handler"
	custommw "github.com/khiasu/UniManagePro/internal/api/middleware"
	"github.com/khiasu/UniManagePro/internal/config"
	"github.com/khiasu/UniManagePro/internal/repository"
	"github.com/khiasu/UniManagePro/internal/repository/redis"
	"github.com/khiasu/UniManagePro/internal/service"
)

// Deps carries the wired infrastructure the router assembles the API from.
// Pinger and Redis are nil when the memory backend runs without them.
type Deps struct {
	Store  repository.Store
	Pinger handler.Pinger
	Redis  *redis.Client
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, deps Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommw.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.WriteTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize services
	var departmentCache service.DepartmentCache
	if deps.Redis != nil {
		departmentCache = redis.NewDepartmentCache(deps.Redis)
	}
	authService := service.NewAuthService(deps.Store, cfg.Auth.DemoUsername)
	departmentService := service.NewDepartmentService(deps.Store, departmentCache)
	bookingService := service.NewBookingService(deps.Store, deps.Store)
	resourceService := service.NewResourceService(deps.Store, deps.Store, deps.Store)
	dashboardService := service.NewDashboardService(resourceService, deps.Store, deps.Store)

	// Initialize handlers
	authHandler := handler.NewAuthHandler()
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	resourceHandler := handler.NewResourceHandler(resourceService, bookingService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Middleware over the API group
	sessionMiddleware := custommw.NewSessionMiddleware(authService)

	r.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(deps.Pinger))

		// Rate-limited business routes; health probes stay unthrottled.
		r.Group(func(r chi.Router) {
			if deps.Redis != nil {
				rateLimiter := redis.NewRateLimiter(
					deps.Redis,
					cfg.RateLimit.RequestsPerMinute,
					cfg.RateLimit.Burst,
				)
				r.Use(custommw.NewRateLimitMiddleware(rateLimiter).Limit)
			}

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", departmentHandler.List)
				r.Post("/", departmentHandler.Create)
			})

			r.Route("/resources", func(r chi.Router) {
				r.Get("/", resourceHandler.List)
				r.Post("/", resourceHandler.Create)

				r.Route("/{resourceID}", func(r chi.Router) {
					r.Get("/", resourceHandler.Get)
					r.Patch("/", resourceHandler.Update)
					r.Get("/availability", resourceHandler.Availability)
				})
			})

			r.Route("/bookings", func(r chi.Router) {
				r.Get("/", bookingHandler.List)
				r.Post("/", bookingHandler.Create)

				r.Route("/{bookingID}", func(r chi.Router) {
					r.Patch("/status", bookingHandler.UpdateStatus)
					r.Delete("/", bookingHandler.Cancel)
				})
			})

			// Session-scoped routes
			r.Group(func(r chi.Router) {
				r.Use(sessionMiddleware.Require)

				r.Get("/auth/me", authHandler.Me)
				r.Get("/dashboard/stats", dashboardHandler.Stats)
			})
		})
	})

	return r
}
