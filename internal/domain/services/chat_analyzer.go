package services

import (
	"context"
	"strings"
	"time"

	"fraudlens/internal/domain/models"
	"fraudlens/pkg/logger"
)

// ChatAnalyzer performs full multi-signal analysis of chat conversations.
// Pattern matching runs over the joined conversation text; conversation
// dynamics are scored over the raw message list.
type ChatAnalyzer struct {
	classifier   Classifier
	preprocess   *Preprocessor
	patterns     *PatternMatcher
	conversation *ConversationAnalyzer
	reputation   *ReputationAnalyzer
	fusion       *FusionEngine
	composer     *ExplanationComposer
	explainer    Explainer
	log          *logger.Logger
}

func NewChatAnalyzer(clf Classifier, explainer Explainer, fusionCfg FusionConfig, log *logger.Logger) *ChatAnalyzer {
	log = log.WithComponent("chat_analyzer").WithChannel(string(models.ChannelChat))
	return &ChatAnalyzer{
		classifier:   clf,
		preprocess:   NewPreprocessor(),
		patterns:     NewChatPatternMatcher(),
		conversation: NewConversationAnalyzer(),
		reputation:   NewReputationAnalyzer(),
		fusion:       NewFusionEngine(fusionCfg, log),
		composer:     NewExplanationComposer(models.ChannelChat),
		explainer:    explainer,
		log:          log,
	}
}

// Analyze runs the full chat pipeline over a conversation
func (a *ChatAnalyzer) Analyze(ctx context.Context, sender string, messages []string) models.AnalysisResult {
	started := time.Now()
	result := newResult(models.ChannelChat)

	nonEmpty := make([]string, 0, len(messages))
	for _, m := range messages {
		if strings.TrimSpace(m) != "" {
			nonEmpty = append(nonEmpty, m)
		}
	}

	if len(nonEmpty) == 0 {
		// Empty content is zero risk regardless of sender; the reputation
		// detail is kept for the envelope but not fused
		result.Classification = unknownClassification()
		result.Patterns = models.PatternResult{CategoryScores: map[string]float64{}}
		result.Reputation = a.reputation.Handle(sender)
		result.Explanation.Summary = "No significant scam indicators detected"
		finalize(&result, a.fusion.Fuse(result.Classification, map[string]float64{}), started)
		return result
	}

	normalized := make([]string, len(nonEmpty))
	for i, m := range nonEmpty {
		normalized[i] = a.preprocess.Chat(m)
	}
	joined := strings.Join(normalized, " ")

	class, err := a.classifier.Classify(ctx, joined)
	if err != nil {
		a.log.Warn().Err(err).Msg("classification unavailable, using neutral verdict")
		class = unknownClassification()
	}

	patterns := a.patterns.Match(joined)
	conversation := a.conversation.Analyze(nonEmpty)
	reputation := a.reputation.Handle(sender)

	fused := a.fusion.Fuse(class, map[string]float64{
		ComponentPattern:      patterns.Score,
		ComponentConversation: conversation.Score,
		ComponentSender:       reputation.Score,
	})

	result.Classification = class
	result.Patterns = patterns
	result.Conversation = &conversation
	result.Reputation = reputation
	result.Explanation.Summary = a.composer.Compose(class, patterns, nil, &conversation, reputation, nil)
	finalize(&result, fused, started)

	if a.explainer != nil {
		a.explainer.Enrich(ctx, &result)
	}

	a.log.WithAnalysisID(result.AnalysisID).Info().
		Float64("risk_score", result.RiskScore).
		Str("risk_level", string(result.RiskLevel)).
		Bool("flagged", result.Flagged).
		Int("messages", len(nonEmpty)).
		Int64("processing_ms", result.ProcessingMS).
		Msg("chat analysis complete")

	return result
}
