package handler

import (
	"net/http"
	"strconv"

	"github.com/pawmarket/api/internal/middleware"
	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/service"
)

// CatalogHandler handles the service catalog and caregiver offerings
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ListServiceTypes handles GET /api/v1/service-types - public catalog
func (h *CatalogHandler) ListServiceTypes(w http.ResponseWriter, r *http.Request) {
	serviceTypes, err := h.catalogService.ListServiceTypes(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, serviceTypes, nil, map[string]string{
		"self": "/api/v1/service-types",
	})
}

// UpsertServiceType handles POST /api/v1/admin/service-types - admin catalog
// management. Creates the entry or updates it in place by code.
func (h *CatalogHandler) UpsertServiceType(w http.ResponseWriter, r *http.Request) {
	var req model.UpsertServiceTypeRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	serviceType, err := h.catalogService.UpsertServiceType(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, serviceType, map[string]string{
		"self": "/api/v1/service-types",
	})
}

// ListMyOfferings handles GET /api/v1/caregivers/me/services
func (h *CatalogHandler) ListMyOfferings(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	activeOnly := false
	if v := r.URL.Query().Get("active"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			activeOnly = b
		}
	}

	offerings, err := h.catalogService.ListOfferings(r.Context(), userID, activeOnly)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, offerings, nil, map[string]string{
		"self": "/api/v1/caregivers/me/services",
	})
}

// CreateOffering handles POST /api/v1/caregivers/me/services
func (h *CatalogHandler) CreateOffering(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateCaregiverServiceRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	offering, err := h.catalogService.CreateOffering(r.Context(), userID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, offering, map[string]string{
		"self": "/api/v1/caregivers/me/services/" + offering.ID,
	})
}

// UpdateOffering handles PATCH /api/v1/caregivers/me/services/{serviceId}
func (h *CatalogHandler) UpdateOffering(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	offeringID := r.PathValue("serviceId")
	if offeringID == "" {
		WriteError(w, model.NewBadRequestError("service ID required"))
		return
	}

	var req model.UpdateCaregiverServiceRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	offering, err := h.catalogService.UpdateOffering(r.Context(), userID, offeringID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, offering, map[string]string{
		"self": "/api/v1/caregivers/me/services/" + offeringID,
	})
}

// DeleteOffering handles DELETE /api/v1/caregivers/me/services/{serviceId}
func (h *CatalogHandler) DeleteOffering(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	offeringID := r.PathValue("serviceId")
	if offeringID == "" {
		WriteError(w, model.NewBadRequestError("service ID required"))
		return
	}

	if err := h.catalogService.DeleteOffering(r.Context(), userID, offeringID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
