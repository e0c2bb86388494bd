package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"fraudlens/internal/domain/services"
	"fraudlens/pkg/logger"
)

// SMSHandler handles SMS analysis endpoints
type SMSHandler struct {
	analyzer *services.SMSAnalyzer
	usage    *services.UsageTracker
	logger   *logger.Logger
}

// NewSMSHandler creates a new SMSHandler
func NewSMSHandler(analyzer *services.SMSAnalyzer, usage *services.UsageTracker, log *logger.Logger) *SMSHandler {
	return &SMSHandler{
		analyzer: analyzer,
		usage:    usage,
		logger:   log.WithComponent("sms_handler"),
	}
}

// SMSAnalyzeRequest is the request body for SMS analysis
type SMSAnalyzeRequest struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// Analyze handles POST /api/v1/sms/analyze
func (h *SMSHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req SMSAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	result := h.analyzer.Analyze(r.Context(), req.Sender, req.Message)
	h.usage.Record(result)

	writeJSON(w, http.StatusOK, result)
}
