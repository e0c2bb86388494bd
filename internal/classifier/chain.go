package classifier

import (
	"context"
	"fmt"

	"fraudlens/internal/domain/models"
	"fraudlens/pkg/logger"
)

// FallbackChain tries classifiers in order until one succeeds. Chains are
// expected to end with Static so classification always yields a verdict.
type FallbackChain struct {
	strategies []Classifier
	log        *logger.Logger
}

func NewFallbackChain(log *logger.Logger, strategies ...Classifier) *FallbackChain {
	return &FallbackChain{
		strategies: strategies,
		log:        log.WithComponent("classifier_chain"),
	}
}

func (c *FallbackChain) Name() string { return "fallback_chain" }

func (c *FallbackChain) Classify(ctx context.Context, text string) (models.Classification, error) {
	var lastErr error
	for _, strategy := range c.strategies {
		result, err := strategy.Classify(ctx, text)
		if err == nil {
			return result, nil
		}
		lastErr = err
		c.log.Warn().
			Str("strategy", strategy.Name()).
			Err(err).
			Msg("classification strategy failed, trying next")
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no classification strategies configured")
	}
	return models.Classification{}, fmt.Errorf("all classification strategies failed: %w", lastErr)
}
