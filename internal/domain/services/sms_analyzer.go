package services

import (
	"context"
	"strings"
	"time"

	"fraudlens/internal/domain/models"
	"fraudlens/pkg/logger"
)

// SMSAnalyzer performs full multi-signal analysis of SMS messages
type SMSAnalyzer struct {
	classifier Classifier
	preprocess *Preprocessor
	patterns   *PatternMatcher
	stats      *StatisticalAnalyzer
	reputation *ReputationAnalyzer
	fusion     *FusionEngine
	composer   *ExplanationComposer
	explainer  Explainer
	log        *logger.Logger
}

func NewSMSAnalyzer(clf Classifier, explainer Explainer, fusionCfg FusionConfig, log *logger.Logger) *SMSAnalyzer {
	log = log.WithComponent("sms_analyzer").WithChannel(string(models.ChannelSMS))
	return &SMSAnalyzer{
		classifier: clf,
		preprocess: NewPreprocessor(),
		patterns:   NewSMSPatternMatcher(),
		stats:      NewStatisticalAnalyzer(),
		reputation: NewReputationAnalyzer(),
		fusion:     NewFusionEngine(fusionCfg, log),
		composer:   NewExplanationComposer(models.ChannelSMS),
		explainer:  explainer,
		log:        log,
	}
}

// Analyze runs the full SMS pipeline. Classifier unavailability degrades
// to a neutral verdict rather than failing the analysis.
func (a *SMSAnalyzer) Analyze(ctx context.Context, sender, message string) models.AnalysisResult {
	started := time.Now()
	result := newResult(models.ChannelSMS)

	if strings.TrimSpace(message) == "" {
		// Empty content is zero risk regardless of sender; the reputation
		// detail is kept for the envelope but not fused
		result.Classification = unknownClassification()
		result.Patterns = models.PatternResult{CategoryScores: map[string]float64{}}
		result.Reputation = a.reputation.Phone(sender)
		result.Explanation.Summary = "No significant scam indicators detected"
		finalize(&result, a.fusion.Fuse(result.Classification, map[string]float64{}), started)
		return result
	}

	normalized := a.preprocess.SMS(message)

	class, err := a.classifier.Classify(ctx, normalized)
	if err != nil {
		a.log.Warn().Err(err).Msg("classification unavailable, using neutral verdict")
		class = unknownClassification()
	}

	patterns := a.patterns.Match(normalized)
	stats := a.stats.SMS(message)
	reputation := a.reputation.Phone(sender)

	fused := a.fusion.Fuse(class, map[string]float64{
		ComponentPattern:     patterns.Score,
		ComponentStatistical: stats.Score,
		ComponentSender:      reputation.Score,
	})

	result.Classification = class
	result.Patterns = patterns
	result.Statistics = &stats
	result.Reputation = reputation
	result.Explanation.Summary = a.composer.Compose(class, patterns, &stats, nil, reputation, nil)
	finalize(&result, fused, started)

	if a.explainer != nil {
		a.explainer.Enrich(ctx, &result)
	}

	a.log.WithAnalysisID(result.AnalysisID).Info().
		Float64("risk_score", result.RiskScore).
		Str("risk_level", string(result.RiskLevel)).
		Bool("flagged", result.Flagged).
		Int64("processing_ms", result.ProcessingMS).
		Msg("sms analysis complete")

	return result
}
