package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudlens/pkg/logger"
)

func TestZeroShotClientClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/facebook/bart-large-mnli", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req zeroShotRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "win a free prize now", req.Inputs)
		assert.Contains(t, req.Parameters.CandidateLabels, "scam")

		json.NewEncoder(w).Encode(zeroShotResponse{
			Labels: []string{"scam", "legitimate"},
			Scores: []float64{0.91, 0.09},
		})
	}))
	defer srv.Close()

	client := NewZeroShotClient(HTTPConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "facebook/bart-large-mnli",
	}, SMSLabels(), logger.NewDefault())

	result, err := client.Classify(context.Background(), "win a free prize now")
	require.NoError(t, err)
	assert.Equal(t, "scam", result.Label)
	assert.InDelta(t, 0.91, result.Confidence, 1e-9)
	assert.True(t, result.IsPositive)
}

func TestTextClassificationClientNestedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[{"label":"LABEL_1","score":0.97},{"label":"LABEL_0","score":0.03}]]`))
	}))
	defer srv.Close()

	client := NewTextClassificationClient(HTTPConfig{
		BaseURL: srv.URL,
		Model:   "spam-detector",
	}, SMSLabels(), logger.NewDefault())

	result, err := client.Classify(context.Background(), "free entry win cash")
	require.NoError(t, err)
	assert.Equal(t, "spam", result.Label)
	assert.True(t, result.IsPositive)
}

func TestTextClassificationClientHamLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"label":"ham","score":0.88}]`))
	}))
	defer srv.Close()

	client := NewTextClassificationClient(HTTPConfig{
		BaseURL: srv.URL,
		Model:   "spam-detector",
	}, SMSLabels(), logger.NewDefault())

	result, err := client.Classify(context.Background(), "see you at dinner")
	require.NoError(t, err)
	assert.Equal(t, "legitimate", result.Label)
	assert.False(t, result.IsPositive)
}

func TestHTTPClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewZeroShotClient(HTTPConfig{
		BaseURL: srv.URL,
		Model:   "m",
	}, SMSLabels(), logger.NewDefault())

	_, err := client.Classify(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
