package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudlens/internal/domain/models"
	"fraudlens/internal/domain/services"
	"fraudlens/internal/infrastructure/cache"
	"fraudlens/pkg/logger"
)

type stubClassifier struct {
	result models.Classification
}

func (s *stubClassifier) Classify(_ context.Context, _ string) (models.Classification, error) {
	return s.result, nil
}

func testHandlers() *Handlers {
	log := logger.NewDefault()
	clf := &stubClassifier{result: models.Classification{Label: "scam", Confidence: 0.9, IsPositive: true}}
	return NewHandlers(Dependencies{
		SMSAnalyzer: services.NewSMSAnalyzer(clf, nil, services.DefaultSMSFusionConfig(), log),
		EmailAnalyzer: services.NewEmailAnalyzer(clf, nil, services.DefaultEmailFusionConfig(),
			cache.NewResultCache(10), nil, time.Hour, log),
		ChatAnalyzer: services.NewChatAnalyzer(clf, nil, services.DefaultChatFusionConfig(), log),
		Usage:        services.NewUsageTracker(),
		Logger:       log,
		Version:      "test",
	})
}

func TestSMSAnalyzeEndpoint(t *testing.T) {
	h := testHandlers()

	body, _ := json.Marshal(SMSAnalyzeRequest{
		Sender:  "12345",
		Message: "urgent: verify your account now, send gift cards",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sms/analyze", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.SMS.Analyze(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result models.AnalysisResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, models.ChannelSMS, result.Channel)
	assert.NotEmpty(t, result.AnalysisID)
	assert.Greater(t, result.RiskScore, 0.0)
}

func TestSMSAnalyzeEndpointRejectsEmptyMessage(t *testing.T) {
	h := testHandlers()

	body, _ := json.Marshal(SMSAnalyzeRequest{Sender: "12345", Message: "  "})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sms/analyze", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.SMS.Analyze(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSMSAnalyzeEndpointRejectsBadJSON(t *testing.T) {
	h := testHandlers()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sms/analyze", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	h.SMS.Analyze(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmailAnalyzeEndpoint(t *testing.T) {
	h := testHandlers()

	body, _ := json.Marshal(EmailAnalyzeRequest{
		Sender:  "alerts@secure-check.tk",
		Subject: "Account suspended",
		Body:    "Click here to verify your account: http://bit.ly/verify",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/email/analyze", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Email.Analyze(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result models.AnalysisResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, models.ChannelEmail, result.Channel)
	assert.True(t, result.Flagged)
}

func TestEmailAnalyzeEndpointRejectsEmptyContent(t *testing.T) {
	h := testHandlers()

	body, _ := json.Marshal(EmailAnalyzeRequest{Sender: "a@b.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/email/analyze", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Email.Analyze(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatAnalyzeEndpoint(t *testing.T) {
	h := testHandlers()

	body, _ := json.Marshal(ChatAnalyzeRequest{
		Sender:   "cryptoKing",
		Messages: []string{"guaranteed returns", "double your money"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/analyze", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Chat.Analyze(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result models.AnalysisResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, models.ChannelChat, result.Channel)
}

func TestChatAnalyzeEndpointRejectsNoMessages(t *testing.T) {
	h := testHandlers()

	body, _ := json.Marshal(ChatAnalyzeRequest{Sender: "x"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/analyze", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Chat.Analyze(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsEndpointCountsAnalyses(t *testing.T) {
	h := testHandlers()

	body, _ := json.Marshal(SMSAnalyzeRequest{Sender: "12345", Message: "urgent: act now"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sms/analyze", bytes.NewReader(body))
	h.SMS.Analyze(httptest.NewRecorder(), req)

	rec := httptest.NewRecorder()
	h.Stats.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var snap services.UsageSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Equal(t, int64(1), snap.SMS.Analyzed)
	assert.Equal(t, int64(1), snap.TotalAnalyzed)
}

func TestHealthEndpoints(t *testing.T) {
	h := testHandlers()

	rec := httptest.NewRecorder()
	h.Health.Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp.Status)

	rec = httptest.NewRecorder()
	h.Health.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
