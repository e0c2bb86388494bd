package services

import (
	"context"
	"time"

	"fraudlens/internal/domain/models"
)

// Classifier is the external text classification dependency. Analyzers
// accept the interface so tests can inject deterministic stubs.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.Classification, error)
}

// Explainer optionally enriches a result's explanation in place
type Explainer interface {
	Enrich(ctx context.Context, result *models.AnalysisResult)
}

// newResult initializes the common envelope of an analysis result
func newResult(channel models.Channel) models.AnalysisResult {
	return models.AnalysisResult{
		AnalysisID: models.NewAnalysisID(),
		Channel:    channel,
		AnalyzedAt: time.Now().UTC(),
	}
}

// finalize stamps fusion outputs and processing time onto a result
func finalize(result *models.AnalysisResult, fusion models.FusionResult, started time.Time) {
	result.Fusion = fusion
	result.RiskScore = fusion.Score
	result.RiskLevel = fusion.Level
	result.Flagged = fusion.Flagged
	result.ProcessingMS = time.Since(started).Milliseconds()
}

// unknownClassification is the neutral verdict substituted when the
// classifier chain is unavailable
func unknownClassification() models.Classification {
	return models.Classification{Label: "unknown", Confidence: 0.0, IsPositive: false}
}
