package handlers

import (
	"net/http"

	"fraudlens/internal/domain/services"
	"fraudlens/pkg/logger"
)

// StatsHandler handles usage statistics endpoints
type StatsHandler struct {
	usage  *services.UsageTracker
	logger *logger.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(usage *services.UsageTracker, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		usage:  usage,
		logger: log.WithComponent("stats_handler"),
	}
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.usage.Snapshot())
}
