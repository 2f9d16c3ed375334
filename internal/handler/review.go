package handler

import (
	"net/http"
	"strconv"

	"github.com/pawmarket/api/internal/middleware"
	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/service"
)

// ReviewHandler handles review endpoints
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// Create handles POST /api/v1/reviews - owner reviews a completed booking
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateReviewRequest
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

	review, err := h.reviewService.Create(r.Context(), userID, req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create review"))
		return
	}

	WriteData(w, http.StatusCreated, review, map[string]string{
		"self": "/api/v1/reviews/" + review.ID,
	})
}

// ListByCaregiver handles GET /api/v1/reviews?caregiver= - public review feed
func (h *ReviewHandler) ListByCaregiver(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	caregiverID := q.Get("caregiver")
	if caregiverID == "" {
		WriteError(w, model.NewValidationError([]model.FieldError{
			{Field: "caregiver", Message: "caregiver query parameter is required"},
		}))
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

	reviews, err := h.reviewService.ListByCaregiver(r.Context(), caregiverID, limit, offset)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, reviews, nil, map[string]string{
		"self": "/api/v1/reviews?caregiver=" + caregiverID,
	})
}
