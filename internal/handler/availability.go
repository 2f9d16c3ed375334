package handler

import (
	"net/http"

	"github.com/pawmarket/api/internal/middleware"
	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/service"
)

// AvailabilityHandler handles caregiver schedule endpoints
type AvailabilityHandler struct {
	availabilityService *service.AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(availabilityService *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityService: availabilityService,
	}
}

// ListWindows handles GET /api/v1/caregivers/me/availability
func (h *AvailabilityHandler) ListWindows(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	windows, err := h.availabilityService.ListWindows(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, windows, nil, map[string]string{
		"self": "/api/v1/caregivers/me/availability",
	})
}

// CreateWindow handles POST /api/v1/caregivers/me/availability
func (h *AvailabilityHandler) CreateWindow(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateAvailabilityRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	window, err := h.availabilityService.CreateWindow(r.Context(), userID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, window, map[string]string{
		"self": "/api/v1/caregivers/me/availability/" + window.ID,
	})
}

// DeleteWindow handles DELETE /api/v1/caregivers/me/availability/{availabilityId}
func (h *AvailabilityHandler) DeleteWindow(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	windowID := r.PathValue("availabilityId")
	if windowID == "" {
		WriteError(w, model.NewBadRequestError("availability ID required"))
		return
	}

	if err := h.availabilityService.DeleteWindow(r.Context(), userID, windowID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// ListTimeOff handles GET /api/v1/caregivers/me/time-off
func (h *AvailabilityHandler) ListTimeOff(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	entries, err := h.availabilityService.ListTimeOff(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, entries, nil, map[string]string{
		"self": "/api/v1/caregivers/me/time-off",
	})
}

// CreateTimeOff handles POST /api/v1/caregivers/me/time-off
func (h *AvailabilityHandler) CreateTimeOff(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateTimeOffRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	entry, err := h.availabilityService.CreateTimeOff(r.Context(), userID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, entry, map[string]string{
		"self": "/api/v1/caregivers/me/time-off/" + entry.ID,
	})
}

// DeleteTimeOff handles DELETE /api/v1/caregivers/me/time-off/{timeOffId}
func (h *AvailabilityHandler) DeleteTimeOff(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	timeOffID := r.PathValue("timeOffId")
	if timeOffID == "" {
		WriteError(w, model.NewBadRequestError("time off ID required"))
		return
	}

	if err := h.availabilityService.DeleteTimeOff(r.Context(), userID, timeOffID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
