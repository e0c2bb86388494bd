// Package classifier provides text classification for fraud analysis via
// hosted inference endpoints, with an ordered fallback chain ending in a
// static verdict so analysis never fails on classifier unavailability.
package classifier

import (
	"context"

	"fraudlens/internal/domain/models"
)

// Classifier produces a fraud/legitimate classification for text
type Classifier interface {
	Classify(ctx context.Context, text string) (models.Classification, error)
	Name() string
}

// LabelSet is a channel's candidate labels and which of them indicate fraud
type LabelSet struct {
	Labels   []string
	Positive map[string]bool
}

// IsPositive reports whether a label counts as a fraud signal
func (s LabelSet) IsPositive(label string) bool {
	return s.Positive[label]
}

// SMSLabels returns the SMS classification label set
func SMSLabels() LabelSet {
	return LabelSet{
		Labels:   []string{"spam", "scam", "fraud", "legitimate"},
		Positive: map[string]bool{"spam": true, "scam": true, "fraud": true},
	}
}

// EmailLabels returns the email classification label set
func EmailLabels() LabelSet {
	return LabelSet{
		Labels: []string{
			"phishing", "spam", "fraud", "suspicious",
			"lottery_scam", "phishing_email", "legitimate", "business",
		},
		Positive: map[string]bool{
			"phishing": true, "spam": true, "fraud": true,
			"suspicious": true, "lottery_scam": true, "phishing_email": true,
		},
	}
}

// ChatLabels returns the chat classification label set
func ChatLabels() LabelSet {
	return LabelSet{
		Labels:   []string{"scam", "fraud", "legitimate"},
		Positive: map[string]bool{"scam": true, "fraud": true},
	}
}

// Static is the terminal fallback: a fixed neutral verdict, never errors
type Static struct{}

func NewStatic() *Static {
	return &Static{}
}

func (s *Static) Name() string { return "static" }

func (s *Static) Classify(_ context.Context, _ string) (models.Classification, error) {
	return models.Classification{Label: "unknown", Confidence: 0.0, IsPositive: false}, nil
}
