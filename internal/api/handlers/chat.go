package handlers

import (
	"encoding/json"
	"net/http"

	"fraudlens/internal/domain/services"
	"fraudlens/pkg/logger"
)

// ChatHandler handles chat analysis endpoints
type ChatHandler struct {
	analyzer *services.ChatAnalyzer
	usage    *services.UsageTracker
	logger   *logger.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(analyzer *services.ChatAnalyzer, usage *services.UsageTracker, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		analyzer: analyzer,
		usage:    usage,
		logger:   log.WithComponent("chat_handler"),
	}
}

// ChatAnalyzeRequest is the request body for chat analysis
type ChatAnalyzeRequest struct {
	Sender   string   `json:"sender"`
	Messages []string `json:"messages"`
}

// Analyze handles POST /api/v1/chat/analyze
func (h *ChatHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req ChatAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages are required")
		return
	}

	result := h.analyzer.Analyze(r.Context(), req.Sender, req.Messages)
	h.usage.Record(result)

	writeJSON(w, http.StatusOK, result)
}
