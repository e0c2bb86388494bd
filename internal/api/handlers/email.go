package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"fraudlens/internal/domain/services"
	"fraudlens/pkg/logger"
)

// EmailHandler handles email analysis endpoints
type EmailHandler struct {
	analyzer *services.EmailAnalyzer
	usage    *services.UsageTracker
	logger   *logger.Logger
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(analyzer *services.EmailAnalyzer, usage *services.UsageTracker, log *logger.Logger) *EmailHandler {
	return &EmailHandler{
		analyzer: analyzer,
		usage:    usage,
		logger:   log.WithComponent("email_handler"),
	}
}

// EmailAnalyzeRequest is the request body for email analysis
type EmailAnalyzeRequest struct {
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Analyze handles POST /api/v1/email/analyze
func (h *EmailHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req EmailAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Subject) == "" && strings.TrimSpace(req.Body) == "" {
		writeError(w, http.StatusBadRequest, "subject or body is required")
		return
	}

	result := h.analyzer.Analyze(r.Context(), req.Sender, req.Subject, req.Body)
	h.usage.Record(result)

	writeJSON(w, http.StatusOK, result)
}
