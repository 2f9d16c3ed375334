package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pawmarket/api/internal/metrics"
	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/service"
)

// AdminActionsHandler handles admin maintenance operations that otherwise
// run on a schedule or from the CLI
type AdminActionsHandler struct {
	financeService   *service.FinanceService
	caregiverService *service.CaregiverService
}

// NewAdminActionsHandler creates a new admin actions handler
func NewAdminActionsHandler(
	financeService *service.FinanceService,
	caregiverService *service.CaregiverService,
) *AdminActionsHandler {
	return &AdminActionsHandler{
		financeService:   financeService,
		caregiverService: caregiverService,
	}
}

// PayoutRunResult reports one manual payout pipeline run
type PayoutRunResult struct {
	PayoutsCreated  int `json:"payouts_created"`
	PayoutsAdvanced int `json:"payouts_advanced"`
}

// ProcessPayouts handles POST /api/v1/admin/payouts/process - run the payout
// pipeline immediately instead of waiting for the background job
func (h *AdminActionsHandler) ProcessPayouts(w http.ResponseWriter, r *http.Request) {
	created, advanced, err := h.financeService.ProcessPayouts(r.Context())
	if err != nil {
		slog.Error("manual payout run failed", slog.String("error", err.Error()))
		WriteError(w, model.NewInternalError("payout processing failed"))
		return
	}

	metrics.AddPayoutsProcessed(advanced)

	WriteData(w, http.StatusOK, PayoutRunResult{
		PayoutsCreated:  created,
		PayoutsAdvanced: advanced,
	}, map[string]string{
		"self": "/api/v1/admin/payouts/process",
	})
}

// ExportPayouts handles GET /api/v1/admin/payouts/export - download all
// payouts as an xlsx workbook
func (h *AdminActionsHandler) ExportPayouts(w http.ResponseWriter, r *http.Request) {
	filename, data, err := h.financeService.ExportPayouts(r.Context())
	if err != nil {
		slog.Error("payout export failed", slog.String("error", err.Error()))
		WriteError(w, model.NewInternalError("payout export failed"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write payout export", slog.String("error", err.Error()))
	}
}

// RatingRecalcResult reports a full rating rebuild
type RatingRecalcResult struct {
	CaregiversUpdated int `json:"caregivers_updated"`
}

// RecalcRatings handles POST /api/v1/admin/ratings/recalc - rebuild every
// caregiver's rating aggregate from stored reviews
func (h *AdminActionsHandler) RecalcRatings(w http.ResponseWriter, r *http.Request) {
	updated, err := h.caregiverService.RecalcAllRatings(r.Context())
	if err != nil {
		slog.Error("rating recalc failed", slog.String("error", err.Error()))
		WriteError(w, model.NewInternalError("rating recalculation failed"))
		return
	}

	WriteData(w, http.StatusOK, RatingRecalcResult{CaregiversUpdated: updated}, map[string]string{
		"self": "/api/v1/admin/ratings/recalc",
	})
}
