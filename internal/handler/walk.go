package handler

import (
	"net/http"
	"strconv"

	"github.com/pawmarket/api/internal/middleware"
	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/service"
)

// WalkHandler handles walk tracking endpoints
type WalkHandler struct {
	walkService *service.WalkService
}

// NewWalkHandler creates a new walk handler
func NewWalkHandler(walkService *service.WalkService) *WalkHandler {
	return &WalkHandler{
		walkService: walkService,
	}
}

// Start handles POST /api/v1/walks - caregiver opens a walk for an accepted
// booking
func (h *WalkHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.StartWalkRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if req.BookingID == "" {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "booking_id", Message: "booking_id is required"},
		}))
		return
	}

	walk, err := h.walkService.Start(r.Context(), userID, req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "start walk"))
		return
	}

	WriteData(w, http.StatusCreated, walk, map[string]string{
		"self": "/api/v1/walks/" + walk.ID,
	})
}

// List handles GET /api/v1/walks - walk history
//
// Without parameters it returns the caller's walks as caregiver. With
// ?booking= it returns the walks of that booking to either party.
func (h *WalkHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	q := r.URL.Query()

	if bookingID := q.Get("booking"); bookingID != "" {
		walks, err := h.walkService.ListForBooking(r.Context(), userID, bookingID)
		if err != nil {
			WriteError(w, MapServiceError(err))
			return
		}
		WriteCollection(w, http.StatusOK, walks, nil, map[string]string{
			"self": "/api/v1/walks?booking=" + bookingID,
		})
		return
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

	walks, err := h.walkService.List(r.Context(), userID, limit, offset)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, walks, nil, map[string]string{
		"self": "/api/v1/walks",
	})
}

// Get handles GET /api/v1/walks/{walkId}
func (h *WalkHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	walkID := r.PathValue("walkId")
	if walkID == "" {
		WriteError(w, model.NewBadRequestError("walk ID required"))
		return
	}

	walk, err := h.walkService.Get(r.Context(), userID, walkID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, walk, map[string]string{
		"self": "/api/v1/walks/" + walkID,
	})
}

// Update handles PATCH /api/v1/walks/{walkId} - record progress or finish
func (h *WalkHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	walkID := r.PathValue("walkId")
	if walkID == "" {
		WriteError(w, model.NewBadRequestError("walk ID required"))
		return
	}

	var req model.UpdateWalkRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	walk, err := h.walkService.Update(r.Context(), userID, walkID, req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "update walk"))
		return
	}

	WriteData(w, http.StatusOK, walk, map[string]string{
		"self": "/api/v1/walks/" + walkID,
	})
}

// AddPhoto handles POST /api/v1/walks/{walkId}/photos
func (h *WalkHandler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	walkID := r.PathValue("walkId")
	if walkID == "" {
		WriteError(w, model.NewBadRequestError("walk ID required"))
		return
	}

	var req model.AddWalkPhotoRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	photo, err := h.walkService.AddPhoto(r.Context(), userID, walkID, req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "add walk photo"))
		return
	}

	WriteData(w, http.StatusCreated, photo, map[string]string{
		"self": "/api/v1/walks/" + walkID,
	})
}
