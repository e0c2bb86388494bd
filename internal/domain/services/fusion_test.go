package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudlens/internal/domain/models"
	"fraudlens/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewDefault()
}

func TestFuseClampsToUnitRange(t *testing.T) {
	engine := NewFusionEngine(DefaultEmailFusionConfig(), testLogger())

	result := engine.Fuse(
		models.Classification{Label: "phishing", Confidence: 0.99, IsPositive: true},
		map[string]float64{
			ComponentPattern:     1.0,
			ComponentStatistical: 1.0,
			ComponentSender:      1.0,
			ComponentLink:        1.0,
		},
	)

	assert.LessOrEqual(t, result.Score, 1.0)
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.Equal(t, models.RiskHigh, result.Level)
	assert.True(t, result.Flagged)
}

func TestFuseZeroSignalsIsLowRisk(t *testing.T) {
	for _, cfg := range []FusionConfig{
		DefaultSMSFusionConfig(),
		DefaultEmailFusionConfig(),
		DefaultChatFusionConfig(),
	} {
		engine := NewFusionEngine(cfg, testLogger())
		result := engine.Fuse(
			models.Classification{Label: "unknown", Confidence: 0.0},
			map[string]float64{},
		)
		assert.Equal(t, 0.0, result.Score)
		assert.Equal(t, models.RiskLow, result.Level)
		assert.False(t, result.Flagged)
	}
}

func TestFuseLevelMappingIsMonotonic(t *testing.T) {
	engine := NewFusionEngine(DefaultSMSFusionConfig(), testLogger())

	prev := models.RiskLow
	rank := map[models.RiskLevel]int{models.RiskLow: 0, models.RiskMedium: 1, models.RiskHigh: 2}
	for conf := 0.0; conf <= 1.0; conf += 0.05 {
		result := engine.Fuse(
			models.Classification{Label: "scam", Confidence: conf, IsPositive: true},
			map[string]float64{ComponentPattern: conf, ComponentStatistical: conf, ComponentSender: conf},
		)
		assert.GreaterOrEqual(t, rank[result.Level], rank[prev])
		prev = result.Level
	}
}

func TestFuseReweightingPrecedence(t *testing.T) {
	engine := NewFusionEngine(DefaultEmailFusionConfig(), testLogger())

	// All three override rules fire; they apply in order (pattern, link,
	// sender) and the last rule wins on contested keys.
	result := engine.Fuse(
		models.Classification{Label: "phishing", Confidence: 0.5, IsPositive: true},
		map[string]float64{
			ComponentPattern: 0.5,
			ComponentLink:    0.6,
			ComponentSender:  0.7,
		},
	)

	require.NotNil(t, result.Weights)
	assert.InDelta(t, 0.45, result.Weights[ComponentPattern], 1e-9)
	assert.InDelta(t, 0.2, result.Weights[ComponentLink], 1e-9)
	assert.InDelta(t, 0.2, result.Weights[ComponentSender], 1e-9)
	assert.InDelta(t, 0.3, result.Weights[ComponentClassification], 1e-9)
}

func TestFuseReweightingOnlyPattern(t *testing.T) {
	engine := NewFusionEngine(DefaultEmailFusionConfig(), testLogger())

	result := engine.Fuse(
		models.Classification{Label: "phishing", Confidence: 0.5, IsPositive: true},
		map[string]float64{ComponentPattern: 0.5},
	)

	assert.InDelta(t, 0.45, result.Weights[ComponentPattern], 1e-9)
	assert.InDelta(t, 0.3, result.Weights[ComponentClassification], 1e-9)
	// Untouched weights keep their base values
	assert.InDelta(t, 0.1, result.Weights[ComponentLink], 1e-9)
	assert.InDelta(t, 0.1, result.Weights[ComponentSender], 1e-9)
}

func TestFuseHighRiskBonus(t *testing.T) {
	engine := NewFusionEngine(DefaultEmailFusionConfig(), testLogger())

	// Four indicators fire: classification (boosted past 0.7), pattern,
	// link and sender. Bonus is 1 + 0.15*(4-1).
	result := engine.Fuse(
		models.Classification{Label: "phishing", Confidence: 0.9, IsPositive: true},
		map[string]float64{
			ComponentPattern: 0.5,
			ComponentLink:    0.7,
			ComponentSender:  0.7,
		},
	)

	assert.Len(t, result.Indicators, 4)
	assert.InDelta(t, 1.45, result.BonusApplied, 1e-9)
}

func TestFuseBonusNeedsMinimumIndicators(t *testing.T) {
	engine := NewFusionEngine(DefaultEmailFusionConfig(), testLogger())

	// Only the pattern indicator fires; below the email minimum of two.
	result := engine.Fuse(
		models.Classification{Label: "unknown", Confidence: 0.0},
		map[string]float64{ComponentPattern: 0.5},
	)

	assert.Len(t, result.Indicators, 1)
	assert.Equal(t, 0.0, result.BonusApplied)
}

func TestFuseConfidenceBoost(t *testing.T) {
	engine := NewFusionEngine(DefaultEmailFusionConfig(), testLogger())

	result := engine.Fuse(
		models.Classification{Label: "phishing", Confidence: 0.9, IsPositive: true},
		map[string]float64{},
	)
	assert.InDelta(t, 0.99, result.ComponentScores[ComponentClassification], 1e-9)

	// No boost at or below 0.8 confidence
	result = engine.Fuse(
		models.Classification{Label: "phishing", Confidence: 0.8, IsPositive: true},
		map[string]float64{},
	)
	assert.InDelta(t, 0.8, result.ComponentScores[ComponentClassification], 1e-9)
}

func TestFuseFalsePositiveDampener(t *testing.T) {
	engine := NewFusionEngine(DefaultEmailFusionConfig(), testLogger())

	result := engine.Fuse(
		models.Classification{Label: "legitimate", Confidence: 0.9, IsPositive: false},
		map[string]float64{
			ComponentPattern:     0.1,
			ComponentLink:        0.1,
			ComponentStatistical: 0.4,
			ComponentSender:      0.2,
		},
	)
	assert.True(t, result.Dampened)

	// High pattern signal disables the dampener
	result = engine.Fuse(
		models.Classification{Label: "legitimate", Confidence: 0.9, IsPositive: false},
		map[string]float64{
			ComponentPattern: 0.5,
			ComponentLink:    0.1,
		},
	)
	assert.False(t, result.Dampened)
}

func TestFuseBenignVerdictContributesNothing(t *testing.T) {
	engine := NewFusionEngine(DefaultSMSFusionConfig(), testLogger())

	result := engine.Fuse(
		models.Classification{Label: "legitimate", Confidence: 0.95, IsPositive: false},
		map[string]float64{},
	)
	assert.Equal(t, 0.0, result.ComponentScores[ComponentClassification])
	assert.Equal(t, 0.0, result.Score)
}

func TestFuseMediumFlagSemanticsPerChannel(t *testing.T) {
	// SMS medium is informational only
	sms := NewFusionEngine(DefaultSMSFusionConfig(), testLogger())
	result := sms.Fuse(
		models.Classification{Label: "scam", Confidence: 1.0, IsPositive: true},
		map[string]float64{ComponentPattern: 0.5},
	)
	require.Equal(t, models.RiskMedium, result.Level)
	assert.False(t, result.Flagged)

	// Chat medium flags
	chat := NewFusionEngine(DefaultChatFusionConfig(), testLogger())
	result = chat.Fuse(
		models.Classification{Label: "scam", Confidence: 0.5, IsPositive: true},
		map[string]float64{},
	)
	require.Equal(t, models.RiskMedium, result.Level)
	assert.True(t, result.Flagged)
}

func TestFuseChatBonusFromSingleIndicator(t *testing.T) {
	engine := NewFusionEngine(DefaultChatFusionConfig(), testLogger())

	result := engine.Fuse(
		models.Classification{Label: "scam", Confidence: 0.7, IsPositive: true},
		map[string]float64{},
	)
	assert.Equal(t, []string{ComponentClassification}, result.Indicators)
	assert.InDelta(t, 1.3, result.BonusApplied, 1e-9)
}

func TestFuseIdenticalInputIsBitIdentical(t *testing.T) {
	engine := NewFusionEngine(DefaultEmailFusionConfig(), testLogger())

	class := models.Classification{Label: "phishing", Confidence: 0.73, IsPositive: true}
	components := map[string]float64{
		ComponentPattern:     0.31,
		ComponentStatistical: 0.29,
		ComponentSender:      0.17,
		ComponentLink:        0.53,
	}

	first := engine.Fuse(class, components)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first.Score, engine.Fuse(class, components).Score)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-0.5, 0, 1))
	assert.Equal(t, 1.0, clamp(1.5, 0, 1))
	assert.Equal(t, 0.42, clamp(0.42, 0, 1))
}
