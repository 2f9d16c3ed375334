package handler

import (
	"net/http"
	"strconv"

	"github.com/pawmarket/api/internal/middleware"
	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/service"
)

// FinanceHandler handles caregiver earnings endpoints
type FinanceHandler struct {
	financeService *service.FinanceService
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
	}
}

// ListPayouts handles GET /api/v1/payouts - caregiver's payout history
func (h *FinanceHandler) ListPayouts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	limit, offset := paginationParams(r)

	payouts, err := h.financeService.ListPayouts(r.Context(), userID, limit, offset)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, payouts, nil, map[string]string{
		"self": "/api/v1/payouts",
	})
}

// Summary handles GET /api/v1/finance/summary - caregiver earnings overview
func (h *FinanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	summary, err := h.financeService.Summary(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, summary, map[string]string{
		"self": "/api/v1/finance/summary",
	})
}

// Transactions handles GET /api/v1/finance/transactions - ledger history for
// either party
func (h *FinanceHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	limit, offset := paginationParams(r)

	transactions, err := h.financeService.Transactions(r.Context(), userID, limit, offset)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, transactions, nil, map[string]string{
		"self": "/api/v1/finance/transactions",
	})
}

// paginationParams reads limit/offset query parameters. Invalid values fall
// back to the service defaults.
func paginationParams(r *http.Request) (int, int) {
	limit := 0
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 {
			limit = l
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if o, err := strconv.Atoi(v); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}
