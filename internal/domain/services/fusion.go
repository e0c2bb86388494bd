package services

import (
	"sort"

	"fraudlens/internal/domain/models"
	"fraudlens/pkg/logger"
)

// Component keys used in fusion weight tables and score maps
const (
	ComponentClassification = "classification"
	ComponentPattern        = "pattern"
	ComponentStatistical    = "statistical"
	ComponentSender         = "sender"
	ComponentLink           = "link"
	ComponentConversation   = "conversation"
	ComponentSentiment      = "sentiment"
)

// ReweightRule shifts weights when a component's score crosses a cutoff.
// Rules apply sequentially in declaration order; a later rule overwrites
// the overrides of an earlier one.
type ReweightRule struct {
	Component string
	Above     float64
	Overrides map[string]float64
}

// FusionConfig defines how component scores combine into a final risk score
type FusionConfig struct {
	Weights             map[string]float64
	Reweights           []ReweightRule
	IndicatorThresholds map[string]float64
	MinIndicators       int     // minimum indicators before the bonus kicks in
	BonusPerIndicator   float64 // 0 disables the bonus
	BonusOffset         int     // subtracted from the count inside the bonus
	ConfidenceBoost     bool    // amplify confident positive classifications
	Dampener            bool    // halve score for confident-legitimate, low-signal email
	HighThreshold       float64
	MediumThreshold     float64
	FlagMedium          bool
}

// DefaultSMSFusionConfig returns the SMS fusion parameters
func DefaultSMSFusionConfig() FusionConfig {
	return FusionConfig{
		Weights: map[string]float64{
			ComponentClassification: 0.4,
			ComponentPattern:        0.3,
			ComponentStatistical:    0.2,
			ComponentSender:         0.1,
		},
		HighThreshold:   0.8,
		MediumThreshold: 0.5,
		FlagMedium:      false,
	}
}

// DefaultEmailFusionConfig returns the email fusion parameters
func DefaultEmailFusionConfig() FusionConfig {
	return FusionConfig{
		Weights: map[string]float64{
			ComponentClassification: 0.35,
			ComponentPattern:        0.35,
			ComponentStatistical:    0.1,
			ComponentSender:         0.1,
			ComponentLink:           0.1,
		},
		Reweights: []ReweightRule{
			{Component: ComponentPattern, Above: 0.3, Overrides: map[string]float64{
				ComponentPattern:        0.45,
				ComponentClassification: 0.3,
			}},
			{Component: ComponentLink, Above: 0.5, Overrides: map[string]float64{
				ComponentLink:           0.2,
				ComponentClassification: 0.3,
			}},
			{Component: ComponentSender, Above: 0.5, Overrides: map[string]float64{
				ComponentSender:         0.2,
				ComponentClassification: 0.3,
			}},
		},
		IndicatorThresholds: map[string]float64{
			ComponentClassification: 0.7,
			ComponentPattern:        0.4,
			ComponentLink:           0.6,
			ComponentSender:         0.6,
		},
		MinIndicators:     2,
		BonusPerIndicator: 0.15,
		BonusOffset:       1,
		ConfidenceBoost:   true,
		Dampener:          true,
		HighThreshold:     0.25,
		MediumThreshold:   0.12,
		FlagMedium:        true,
	}
}

// DefaultChatFusionConfig returns the chat fusion parameters. The
// sentiment slot is reserved with weight zero until a sentiment scorer
// lands.
func DefaultChatFusionConfig() FusionConfig {
	return FusionConfig{
		Weights: map[string]float64{
			ComponentClassification: 0.3,
			ComponentPattern:        0.5,
			ComponentConversation:   0.15,
			ComponentSender:         0.05,
			ComponentSentiment:      0.0,
		},
		IndicatorThresholds: map[string]float64{
			ComponentClassification: 0.6,
			ComponentPattern:        0.3,
			ComponentConversation:   0.3,
			ComponentSender:         0.4,
		},
		MinIndicators:     1,
		BonusPerIndicator: 0.3,
		BonusOffset:       0,
		HighThreshold:     0.3,
		MediumThreshold:   0.15,
		FlagMedium:        true,
	}
}

// FusionEngine combines component scores into a single risk assessment
type FusionEngine struct {
	cfg FusionConfig
	log *logger.Logger
}

func NewFusionEngine(cfg FusionConfig, log *logger.Logger) *FusionEngine {
	return &FusionEngine{cfg: cfg, log: log.WithComponent("fusion")}
}

// dampenerLabels are classifier labels treated as benign for dampening
var dampenerLabels = map[string]bool{
	"legitimate": true,
	"business":   true,
}

// componentOrder fixes the summation order so identical input always
// fuses to the identical float
var componentOrder = []string{
	ComponentClassification,
	ComponentPattern,
	ComponentStatistical,
	ComponentSender,
	ComponentLink,
	ComponentConversation,
	ComponentSentiment,
}

// Fuse combines the classification and component scores into a final
// fused score, level and flag.
func (e *FusionEngine) Fuse(class models.Classification, components map[string]float64) models.FusionResult {
	scores := make(map[string]float64, len(components)+1)
	for k, v := range components {
		scores[k] = v
	}
	scores[ComponentClassification] = class.Confidence
	if !class.IsPositive {
		// A confident benign verdict contributes nothing upward
		scores[ComponentClassification] = 0
	}

	if e.cfg.ConfidenceBoost && class.IsPositive && class.Confidence > 0.8 {
		boosted := scores[ComponentClassification] * 1.1
		if boosted > 1.0 {
			boosted = 1.0
		}
		scores[ComponentClassification] = boosted
	}

	weights := make(map[string]float64, len(e.cfg.Weights))
	for k, v := range e.cfg.Weights {
		weights[k] = v
	}
	for _, rule := range e.cfg.Reweights {
		if scores[rule.Component] > rule.Above {
			for k, v := range rule.Overrides {
				weights[k] = v
			}
		}
	}

	total := 0.0
	for _, component := range componentOrder {
		if w, ok := weights[component]; ok {
			total += scores[component] * w
		}
	}

	var indicators []string
	for component, threshold := range e.cfg.IndicatorThresholds {
		if scores[component] > threshold {
			indicators = append(indicators, component)
		}
	}
	sort.Strings(indicators)

	bonus := 0.0
	if e.cfg.BonusPerIndicator > 0 && len(indicators) >= e.cfg.MinIndicators {
		bonus = 1.0 + e.cfg.BonusPerIndicator*float64(len(indicators)-e.cfg.BonusOffset)
		total *= bonus
	}

	dampened := false
	if e.cfg.Dampener &&
		dampenerLabels[class.Label] && class.Confidence > 0.6 &&
		scores[ComponentPattern] < 0.3 && scores[ComponentLink] < 0.3 {
		total *= 0.5
		dampened = true
	}

	total = clamp(total, 0.0, 1.0)

	level := models.LevelForScore(total, e.cfg.HighThreshold, e.cfg.MediumThreshold)
	flagged := level == models.RiskHigh || (level == models.RiskMedium && e.cfg.FlagMedium)

	e.log.Debug().
		Interface("component_scores", scores).
		Interface("weights", weights).
		Float64("fused_score", total).
		Str("level", string(level)).
		Bool("flagged", flagged).
		Msg("fused component scores")

	return models.FusionResult{
		Score:           total,
		Level:           level,
		Flagged:         flagged,
		ComponentScores: scores,
		Weights:         weights,
		Indicators:      indicators,
		BonusApplied:    bonus,
		Dampened:        dampened,
	}
}

// clamp restricts a value to the [min, max] range
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
