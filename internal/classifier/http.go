package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fraudlens/internal/domain/models"
	"fraudlens/pkg/logger"
)

// HTTPConfig holds connection settings for a hosted inference endpoint
type HTTPConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// TextClassificationClient calls a fine-tuned text-classification model.
// The endpoint returns ranked label/score pairs for the input text.
type TextClassificationClient struct {
	cfg        HTTPConfig
	httpClient *http.Client
	labels     LabelSet
	log        *logger.Logger
}

func NewTextClassificationClient(cfg HTTPConfig, labels LabelSet, log *logger.Logger) *TextClassificationClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &TextClassificationClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		labels:     labels,
		log:        log.WithComponent("classifier_http"),
	}
}

func (c *TextClassificationClient) Name() string { return "text_classification" }

type textClassRequest struct {
	Inputs string `json:"inputs"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (c *TextClassificationClient) Classify(ctx context.Context, text string) (models.Classification, error) {
	body, err := c.post(ctx, textClassRequest{Inputs: text})
	if err != nil {
		return models.Classification{}, err
	}

	// Response is a list of ranked candidates, sometimes nested one level
	var nested [][]labelScore
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return c.toClassification(nested[0][0]), nil
	}
	var flat []labelScore
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return c.toClassification(flat[0]), nil
	}
	return models.Classification{}, fmt.Errorf("unexpected classification response: %s", truncate(string(body), 200))
}

func (c *TextClassificationClient) toClassification(top labelScore) models.Classification {
	label := normalizeLabel(top.Label)
	return models.Classification{
		Label:      label,
		Confidence: top.Score,
		IsPositive: c.labels.IsPositive(label),
	}
}

// normalizeLabel maps model-specific label names onto the catalog's
// vocabulary. Binary spam models commonly emit LABEL_0/LABEL_1 or ham/spam.
func normalizeLabel(label string) string {
	switch strings.ToLower(label) {
	case "label_1", "spam":
		return "spam"
	case "label_0", "ham":
		return "legitimate"
	default:
		return strings.ToLower(label)
	}
}

// ZeroShotClient calls a zero-shot NLI model with the channel's candidate
// labels; used as fallback when the fine-tuned model is unavailable.
type ZeroShotClient struct {
	cfg        HTTPConfig
	httpClient *http.Client
	labels     LabelSet
	log        *logger.Logger
}

func NewZeroShotClient(cfg HTTPConfig, labels LabelSet, log *logger.Logger) *ZeroShotClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &ZeroShotClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		labels:     labels,
		log:        log.WithComponent("classifier_zeroshot"),
	}
}

func (c *ZeroShotClient) Name() string { return "zero_shot" }

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

func (c *ZeroShotClient) Classify(ctx context.Context, text string) (models.Classification, error) {
	body, err := post(ctx, c.httpClient, c.cfg, zeroShotRequest{
		Inputs:     text,
		Parameters: zeroShotParameters{CandidateLabels: c.labels.Labels},
	})
	if err != nil {
		return models.Classification{}, err
	}

	var resp zeroShotResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.Classification{}, fmt.Errorf("failed to decode zero-shot response: %w", err)
	}
	if len(resp.Labels) == 0 || len(resp.Scores) == 0 {
		return models.Classification{}, fmt.Errorf("empty zero-shot response")
	}

	label := strings.ToLower(resp.Labels[0])
	return models.Classification{
		Label:      label,
		Confidence: resp.Scores[0],
		IsPositive: c.labels.IsPositive(label),
	}, nil
}

func (c *TextClassificationClient) post(ctx context.Context, payload any) ([]byte, error) {
	return post(ctx, c.httpClient, c.cfg, payload)
}

func post(ctx context.Context, client *http.Client, cfg HTTPConfig, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(cfg.BaseURL, "/") + "/" + cfg.Model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference endpoint returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
