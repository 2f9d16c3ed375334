package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/service"
)

// AdminSeederHandler handles admin seeding endpoints
type AdminSeederHandler struct {
	seederService *service.SeederService
}

// NewAdminSeederHandler creates a new admin seeder handler
func NewAdminSeederHandler(seederService *service.SeederService) *AdminSeederHandler {
	return &AdminSeederHandler{seederService: seederService}
}

// SeedRequest configures a seeding run. A named scenario overrides the
// individual counts; an empty body seeds the default demo dataset.
type SeedRequest struct {
	service.SeedAllRequest
	Scenario string `json:"scenario,omitempty"`
}

// Seed handles POST /api/v1/admin/seed
func (h *AdminSeederHandler) Seed(w http.ResponseWriter, r *http.Request) {
	var req SeedRequest
	if err := DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	var (
		result *service.SeedResult
		err    error
	)
	if req.Scenario != "" {
		result, err = h.seederService.SeedScenario(r.Context(), service.SeedScenarioRequest{Scenario: req.Scenario})
	} else {
		result, err = h.seederService.SeedAll(r.Context(), req.SeedAllRequest)
	}
	if err != nil {
		WriteError(w, model.NewBadRequestError(err.Error()))
		return
	}

	WriteData(w, http.StatusCreated, result, map[string]string{
		"self":    "/api/v1/admin/seed",
		"cleanup": "/api/v1/admin/seed",
	})
}

// Cleanup handles DELETE /api/v1/admin/seed - remove seeded data by prefix
func (h *AdminSeederHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")

	result, err := h.seederService.Cleanup(r.Context(), prefix)
	if err != nil {
		WriteError(w, model.NewInternalError("cleanup failed"))
		return
	}

	WriteData(w, http.StatusOK, result, map[string]string{
		"self": "/api/v1/admin/seed",
	})
}
