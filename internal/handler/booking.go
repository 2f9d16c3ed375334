package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/pawmarket/api/internal/metrics"
	"github.com/pawmarket/api/internal/middleware"
	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/service"
)

// BookingHandler handles booking lifecycle endpoints
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// BookingActionRequest carries the optional caregiver notes on a status
// transition. The body may be omitted entirely.
type BookingActionRequest struct {
	Notes string `json:"notes,omitempty"`
}

// Create handles POST /api/v1/bookings - owner requests a booking
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateBookingRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	booking, err := h.bookingService.Create(r.Context(), userID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	metrics.IncBookingCreated(req.ServiceTypeCode)

	WriteData(w, http.StatusCreated, booking, map[string]string{
		"self": "/api/v1/bookings/" + booking.ID,
	})
}

// List handles GET /api/v1/bookings - bookings for the calling party
//
// Query parameters: as (owner|caregiver, default owner), status, limit, offset.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	q := r.URL.Query()

	as := q.Get("as")
	if as != "" && as != "owner" && as != "caregiver" {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "as", Message: "as must be owner or caregiver"},
		}))
		return
	}

	var status model.BookingStatus
	if v := q.Get("status"); v != "" {
		status = model.BookingStatus(v)
		if !validBookingStatus(status) {
			WriteError(w, model.NewValidationError([]model.FieldError{
				{Field: "status", Message: "unknown booking status"},
			}))
			return
		}
	}

	limit := 20
	offset := 0
	if v := q.Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 {
			limit = l
		}
	}
	if v := q.Get("offset"); v != "" {
		if o, err := strconv.Atoi(v); err == nil && o >= 0 {
			offset = o
		}
	}

	bookings, err := h.bookingService.List(r.Context(), userID, as, status, limit, offset)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, bookings, nil, map[string]string{
		"self": "/api/v1/bookings",
	})
}

// Get handles GET /api/v1/bookings/{bookingId}
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	bookingID := r.PathValue("bookingId")
	if bookingID == "" {
		WriteError(w, model.NewBadRequestError("booking ID required"))
		return
	}

	booking, err := h.bookingService.Get(r.Context(), userID, bookingID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, booking, map[string]string{
		"self": "/api/v1/bookings/" + bookingID,
	})
}

// Accept handles POST /api/v1/bookings/{bookingId}/accept - caregiver confirms
func (h *BookingHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "accept", h.bookingService.Accept)
}

// Reject handles POST /api/v1/bookings/{bookingId}/reject - caregiver declines
func (h *BookingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "reject", h.bookingService.Reject)
}

// Complete handles POST /api/v1/bookings/{bookingId}/complete - caregiver
// marks the service as delivered
func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "complete", h.bookingService.Complete)
}

func (h *BookingHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	fn func(ctx context.Context, caregiverID, bookingID, notes string) (*model.Booking, error),
) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	bookingID := r.PathValue("bookingId")
	if bookingID == "" {
		WriteError(w, model.NewBadRequestError("booking ID required"))
		return
	}

	var req BookingActionRequest
	if err := DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	booking, err := fn(r.Context(), userID, bookingID, req.Notes)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, action+" booking"))
		return
	}

	WriteData(w, http.StatusOK, booking, map[string]string{
		"self": "/api/v1/bookings/" + bookingID,
	})
}

// Cancel handles POST /api/v1/bookings/{bookingId}/cancel - either party backs
// out before completion
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	bookingID := r.PathValue("bookingId")
	if bookingID == "" {
		WriteError(w, model.NewBadRequestError("booking ID required"))
		return
	}

	booking, err := h.bookingService.Cancel(r.Context(), userID, bookingID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "cancel booking"))
		return
	}

	WriteData(w, http.StatusOK, booking, map[string]string{
		"self": "/api/v1/bookings/" + bookingID,
	})
}

// Pay handles POST /api/v1/bookings/{bookingId}/pay - owner settles an
// accepted or completed booking
func (h *BookingHandler) Pay(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	bookingID := r.PathValue("bookingId")
	if bookingID == "" {
		WriteError(w, model.NewBadRequestError("booking ID required"))
		return
	}

	booking, err := h.bookingService.MarkPaid(r.Context(), userID, bookingID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "pay booking"))
		return
	}

	WriteData(w, http.StatusOK, booking, map[string]string{
		"self": "/api/v1/bookings/" + bookingID,
	})
}

func validBookingStatus(s model.BookingStatus) bool {
	switch s {
	case model.BookingStatusPending, model.BookingStatusAccepted, model.BookingStatusRejected,
		model.BookingStatusCancelled, model.BookingStatusCompleted:
		return true
	}
	return false
}
