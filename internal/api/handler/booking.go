package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/khiasu/UniManagePro/internal/api/response"
	"github.com/khiasu/UniManagePro/internal/domain"
	"github.com/khiasu/UniManagePro/internal/service"
)

// BookingHandler handles booking endpoints
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// List handles listing bookings filtered by user, resource or date
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		userID     *uuid.UUID
		resourceID *uuid.UUID
		date       *time.Time
	)

	if raw := r.URL.Query().Get("user"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "invalid user ID")
			return
		}
		userID = &id
	}
	if raw := r.URL.Query().Get("resource"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "invalid resource ID")
			return
		}
		resourceID = &id
	}
	if raw := r.URL.Query().Get("date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = &day
	}

	bookings, err := h.bookingService.List(r.Context(), userID, resourceID, date)
	if err != nil {
		response.InternalError(w, "failed to fetch bookings")
		return
	}

	response.OK(w, bookings)
}

// Create handles booking creation: payload validation, then the
// working-hours/conflict check, then insertion as a pending booking.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.BookingCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	booking, err := h.bookingService.Create(r.Context(), input)
	if err != nil {
		var be *domain.BookingError
		switch {
		case errors.As(err, &be):
			if be.Code == domain.CodeTimeConflict {
				response.Conflict(w, be)
			} else {
				response.BadRequest(w, be.Message)
			}
		case errors.Is(err, domain.ErrResourceNotFound):
			response.NotFound(w, "resource not found")
		case errors.Is(err, service.ErrInvalidInterval),
			errors.Is(err, service.ErrAttendeesExceedCapacity):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "failed to create booking")
		}
		return
	}

	response.Created(w, booking)
}

// UpdateStatus handles setting a booking's status directly
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bookingID"))
	if err != nil {
		response.BadRequest(w, "invalid booking ID")
		return
	}

	var input domain.BookingStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if !domain.ValidBookingStatus(input.Status) {
		response.BadRequest(w, "invalid booking status")
		return
	}

	booking, err := h.bookingService.UpdateStatus(r.Context(), id, input.Status)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			response.NotFound(w, "booking not found")
			return
		}
		response.InternalError(w, "failed to update booking status")
		return
	}

	response.OK(w, booking)
}

// Cancel handles soft-cancelling a booking
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "bookingID"))
	if err != nil {
		response.BadRequest(w, "invalid booking ID")
		return
	}

	if err := h.bookingService.Cancel(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			response.NotFound(w, "booking not found")
			return
		}
		response.InternalError(w, "failed to cancel booking")
		return
	}

	response.OK(w, map[string]string{"message": "booking cancelled successfully"})
}
