package handlers

import (
	"encoding/json"
	"net/http"

	"fraudlens/internal/domain/services"
	"fraudlens/internal/infrastructure/cache"
	"fraudlens/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health *HealthHandler
	SMS    *SMSHandler
	Email  *EmailHandler
	Chat   *ChatHandler
	Stats  *StatsHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	SMSAnalyzer   *services.SMSAnalyzer
	EmailAnalyzer *services.EmailAnalyzer
	ChatAnalyzer  *services.ChatAnalyzer
	Usage         *services.UsageTracker
	Cache         *cache.RedisCache
	Logger        *logger.Logger
	Version       string
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(deps.Cache, deps.Version, deps.Logger),
		SMS:    NewSMSHandler(deps.SMSAnalyzer, deps.Usage, deps.Logger),
		Email:  NewEmailHandler(deps.EmailAnalyzer, deps.Usage, deps.Logger),
		Chat:   NewChatHandler(deps.ChatAnalyzer, deps.Usage, deps.Logger),
		Stats:  NewStatsHandler(deps.Usage, deps.Logger),
	}
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorResponse is the standard error envelope
type errorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
