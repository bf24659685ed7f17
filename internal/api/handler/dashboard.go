package handler

import (
	"net/http"

	"github.com/khiasu/UniManagePro/internal/api/middleware"
	"github.com/khiasu/UniManagePro/internal/api/response"
	"github.com/khiasu/UniManagePro/internal/service"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles aggregated dashboard counts for the session user
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
		return
	}

	stats, err := h.dashboardService.Stats(r.Context(), user.ID)
	if err != nil {
		response.InternalError(w, "failed to fetch dashboard stats")
		return
	}

	response.OK(w, stats)
}
