package services

import (
	"strings"

	"fraudlens/internal/domain/models"
)

// ConversationAnalyzer scores chat conversation dynamics. Scam chats tend
// toward bursts of short repeated messages, so the risk factors key off
// message length distribution, volume and repetition.
type ConversationAnalyzer struct{}

func NewConversationAnalyzer() *ConversationAnalyzer {
	return &ConversationAnalyzer{}
}

func (a *ConversationAnalyzer) Analyze(messages []string) models.ConversationResult {
	result := models.ConversationResult{
		TotalMessages: len(messages),
	}
	if len(messages) == 0 {
		return result
	}

	totalLen := 0
	unique := make(map[string]struct{}, len(messages))
	for _, msg := range messages {
		l := len(msg)
		totalLen += l
		if l < 20 {
			result.ShortMessages++
		}
		if l > 100 {
			result.LongMessages++
		}
		unique[strings.TrimSpace(strings.ToLower(msg))] = struct{}{}
	}

	result.AvgLength = float64(totalLen) / float64(len(messages))
	result.RapidMessaging = len(messages) > 10
	result.RepetitionRatio = 1.0 - float64(len(unique))/float64(len(messages))

	var factors []float64
	if float64(result.ShortMessages)/float64(len(messages)) > 0.8 {
		factors = append(factors, 0.4)
	}
	if result.RapidMessaging {
		factors = append(factors, 0.6)
	}
	if result.RepetitionRatio > 0.5 {
		factors = append(factors, 0.7)
	}
	if len(messages) > 20 {
		factors = append(factors, 0.3)
	}

	if len(factors) > 0 {
		sum := 0.0
		for _, f := range factors {
			sum += f
		}
		result.Score = sum / float64(len(factors))
	}
	return result
}
