package handler

import (
	"net/http"

	"github.com/pawmarket/api/internal/service"
)

// StatsHandler handles the public marketplace stats endpoint
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// Marketplace handles GET /api/v1/stats - public marketplace counters
func (h *StatsHandler) Marketplace(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Marketplace(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, stats, map[string]string{
		"self": "/api/v1/stats",
	})
}
