package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/pawmarket/api/internal/middleware"
	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/service"
)

// CaregiverHandler handles the public caregiver directory and the
// caregiver's own profile endpoints.
type CaregiverHandler struct {
	caregiverService *service.CaregiverService
}

// NewCaregiverHandler creates a new caregiver handler
func NewCaregiverHandler(caregiverService *service.CaregiverService) *CaregiverHandler {
	return &CaregiverHandler{
		caregiverService: caregiverService,
	}
}

// Search handles GET /api/v1/caregivers - public directory search
//
// Query parameters: city, service_type, min_rating (stars, e.g. 4.5),
// price_min, price_max (cents), accepts_large_dogs, limit, offset.
func (h *CaregiverHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := model.CaregiverSearchFilter{
		City:            q.Get("city"),
		ServiceTypeCode: q.Get("service_type"),
	}

	if v := q.Get("min_rating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			filter.MinRating = int(math.Round(f * 100))
		}
	}
	if v := q.Get("price_min"); v != "" {
		if p, err := strconv.ParseInt(v, 10, 64); err == nil && p > 0 {
			filter.PriceMinCents = p
		}
	}
	if v := q.Get("price_max"); v != "" {
		if p, err := strconv.ParseInt(v, 10, 64); err == nil && p > 0 {
			filter.PriceMaxCents = p
		}
	}
	if v := q.Get("accepts_large_dogs"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.AcceptsLargeDogs = &b
		}
	}
	if v := q.Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 {
			filter.Limit = l
		}
	}
	if v := q.Get("offset"); v != "" {
		if o, err := strconv.Atoi(v); err == nil && o >= 0 {
			filter.Offset = o
		}
	}

	listings, err := h.caregiverService.Search(r.Context(), filter)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, listings, nil, map[string]string{
		"self": "/api/v1/caregivers",
	})
}

// Detail handles GET /api/v1/caregivers/{caregiverId} - public detail view
func (h *CaregiverHandler) Detail(w http.ResponseWriter, r *http.Request) {
	caregiverID := r.PathValue("caregiverId")
	if caregiverID == "" {
		WriteError(w, model.NewBadRequestError("caregiver ID required"))
		return
	}

	detail, err := h.caregiverService.Detail(r.Context(), caregiverID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, detail, map[string]string{
		"self": "/api/v1/caregivers/" + caregiverID,
	})
}

// GetMyProfile handles GET /api/v1/caregivers/me - own profile
func (h *CaregiverHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	profile, err := h.caregiverService.GetProfile(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, profile, map[string]string{
		"self": "/api/v1/caregivers/me",
	})
}

// UpdateMyProfile handles PATCH /api/v1/caregivers/me
func (h *CaregiverHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.UpdateCaregiverProfileRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	profile, err := h.caregiverService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, profile, map[string]string{
		"self": "/api/v1/caregivers/me",
	})
}
