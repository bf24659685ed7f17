package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/khiasu/UniManagePro/internal/api/response"
	"github.com/khiasu/UniManagePro/internal/domain"
	"github.com/khiasu/UniManagePro/internal/service"
)

var validate = validator.New()

// ResourceHandler handles resource endpoints
type ResourceHandler struct {
	resourceService *service.ResourceService
	bookingService  *service.BookingService
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(resourceService *service.ResourceService, bookingService *service.BookingService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService, bookingService: bookingService}
}

// List handles listing active resources, optionally filtered by department or
// type, enriched with department and derived status.
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	var departmentID *uuid.UUID
	if raw := r.URL.Query().Get("department"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "invalid department ID")
			return
		}
		departmentID = &id
	}
	resourceType := r.URL.Query().Get("type")

	resources, err := h.resourceService.List(r.Context(), departmentID, resourceType)
	if err != nil {
		response.InternalError(w, "failed to fetch resources")
		return
	}

	response.OK(w, resources)
}

// Get handles fetching a single resource with status
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "resourceID"))
	if err != nil {
		response.BadRequest(w, "invalid resource ID")
		return
	}

	resource, err := h.resourceService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			response.NotFound(w, "resource not found")
			return
		}
		response.InternalError(w, "failed to fetch resource")
		return
	}

	response.OK(w, resource)
}

// Create handles resource creation
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.ResourceCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	resource, err := h.resourceService.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrDepartmentNotFound) {
			response.BadRequest(w, "department not found")
			return
		}
		response.InternalError(w, "failed to create resource")
		return
	}

	response.Created(w, resource)
}

// Update handles partial resource updates (e.g. deactivation)
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "resourceID"))
	if err != nil {
		response.BadRequest(w, "invalid resource ID")
		return
	}

	var input domain.ResourceUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	resource, err := h.resourceService.Update(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			response.NotFound(w, "resource not found")
			return
		}
		response.InternalError(w, "failed to update resource")
		return
	}

	response.OK(w, resource)
}

// Availability handles listing a resource's bookings on a given date
func (h *ResourceHandler) Availability(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "resourceID"))
	if err != nil {
		response.BadRequest(w, "invalid resource ID")
		return
	}

	raw := r.URL.Query().Get("date")
	if raw == "" {
		response.BadRequest(w, "date parameter is required")
		return
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.BadRequest(w, "invalid date, expected YYYY-MM-DD")
		return
	}

	bookings, err := h.bookingService.Availability(r.Context(), id, day)
	if err != nil {
		response.InternalError(w, "failed to check availability")
		return
	}

	response.OK(w, bookings)
}
