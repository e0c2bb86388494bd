package services

import (
	"context"
	"strings"
	"time"

	"fraudlens/internal/domain/models"
	"fraudlens/internal/infrastructure/cache"
	"fraudlens/pkg/logger"
)

// EmailAnalyzer performs full multi-signal analysis of emails. Complete
// results are memoized by content hash; an optional Redis tier shares
// results across instances on a best-effort basis.
type EmailAnalyzer struct {
	classifier Classifier
	preprocess *Preprocessor
	patterns   *PatternMatcher
	stats      *StatisticalAnalyzer
	reputation *ReputationAnalyzer
	links      *LinkAnalyzer
	fusion     *FusionEngine
	composer   *ExplanationComposer
	explainer  Explainer
	results    *cache.ResultCache
	redis      *cache.RedisCache // optional
	cacheTTL   time.Duration
	log        *logger.Logger
}

func NewEmailAnalyzer(
	clf Classifier,
	explainer Explainer,
	fusionCfg FusionConfig,
	results *cache.ResultCache,
	redis *cache.RedisCache,
	cacheTTL time.Duration,
	log *logger.Logger,
) *EmailAnalyzer {
	log = log.WithComponent("email_analyzer").WithChannel(string(models.ChannelEmail))
	return &EmailAnalyzer{
		classifier: clf,
		preprocess: NewPreprocessor(),
		patterns:   NewEmailPatternMatcher(),
		stats:      NewStatisticalAnalyzer(),
		reputation: NewReputationAnalyzer(),
		links:      NewLinkAnalyzer(),
		fusion:     NewFusionEngine(fusionCfg, log),
		composer:   NewExplanationComposer(models.ChannelEmail),
		explainer:  explainer,
		results:    results,
		redis:      redis,
		cacheTTL:   cacheTTL,
		log:        log,
	}
}

// Analyze runs the full email pipeline
func (a *EmailAnalyzer) Analyze(ctx context.Context, sender, subject, body string) models.AnalysisResult {
	started := time.Now()

	key := cache.Key(subject, body, sender)
	if cached, ok := a.lookup(ctx, key); ok {
		// Cache hits are reissued under a fresh identity
		cached.AnalysisID = models.NewAnalysisID()
		cached.AnalyzedAt = time.Now().UTC()
		cached.CacheHit = true
		cached.ProcessingMS = time.Since(started).Milliseconds()
		a.log.WithAnalysisID(cached.AnalysisID).Debug().Msg("email result served from cache")
		return cached
	}

	result := newResult(models.ChannelEmail)
	raw := subject + "\n" + body

	if strings.TrimSpace(raw) == "" {
		// Empty content is zero risk regardless of sender; the reputation
		// detail is kept for the envelope but not fused
		result.Classification = unknownClassification()
		result.Patterns = models.PatternResult{CategoryScores: map[string]float64{}}
		result.Reputation = a.reputation.Email(sender)
		result.Explanation.Summary = "No significant phishing indicators detected"
		finalize(&result, a.fusion.Fuse(result.Classification, map[string]float64{}), started)
		return result
	}

	normalized := a.preprocess.Email(raw)

	class, err := a.classifier.Classify(ctx, normalized)
	if err != nil {
		a.log.Warn().Err(err).Msg("classification unavailable, using neutral verdict")
		class = unknownClassification()
	}

	patterns := a.patterns.Match(normalized)
	stats := a.stats.Email(raw)
	reputation := a.reputation.Email(sender)
	links := a.links.Analyze(raw)

	fused := a.fusion.Fuse(class, map[string]float64{
		ComponentPattern:     patterns.Score,
		ComponentStatistical: stats.Score,
		ComponentSender:      reputation.Score,
		ComponentLink:        links.Score,
	})

	result.Classification = class
	result.Patterns = patterns
	result.Statistics = &stats
	result.Reputation = reputation
	result.Links = &links
	result.Explanation.Summary = a.composer.Compose(class, patterns, &stats, nil, reputation, &links)
	finalize(&result, fused, started)

	if a.explainer != nil {
		a.explainer.Enrich(ctx, &result)
	}

	a.store(ctx, key, result)

	a.log.WithAnalysisID(result.AnalysisID).Info().
		Float64("risk_score", result.RiskScore).
		Str("risk_level", string(result.RiskLevel)).
		Bool("flagged", result.Flagged).
		Int("suspicious_links", len(links.SuspiciousLinks)).
		Int64("processing_ms", result.ProcessingMS).
		Msg("email analysis complete")

	return result
}

func (a *EmailAnalyzer) lookup(ctx context.Context, key string) (models.AnalysisResult, bool) {
	if cached, ok := a.results.Get(key); ok {
		return cached, true
	}
	if a.redis != nil {
		var cached models.AnalysisResult
		if err := a.redis.GetCachedResult(ctx, key, &cached); err == nil {
			a.results.Put(key, cached)
			return cached, true
		}
	}
	return models.AnalysisResult{}, false
}

func (a *EmailAnalyzer) store(ctx context.Context, key string, result models.AnalysisResult) {
	a.results.Put(key, result)
	if a.redis != nil {
		if err := a.redis.CacheResult(ctx, key, result, a.cacheTTL); err != nil {
			a.log.Debug().Err(err).Msg("redis result cache write failed")
		}
	}
}
