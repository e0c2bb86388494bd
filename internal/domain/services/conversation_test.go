package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationEmpty(t *testing.T) {
	a := NewConversationAnalyzer()

	result := a.Analyze(nil)
	assert.Equal(t, 0, result.TotalMessages)
	assert.Equal(t, 0.0, result.Score)
}

func TestConversationBenign(t *testing.T) {
	a := NewConversationAnalyzer()

	result := a.Analyze([]string{
		"hey, how was the concert last night?",
		"it was great, the opening act surprised everyone",
		"nice, we should go together next time",
	})
	assert.Equal(t, 3, result.TotalMessages)
	assert.False(t, result.RapidMessaging)
	assert.Equal(t, 0.0, result.Score)
}

func TestConversationRapidRepeatedShortMessages(t *testing.T) {
	a := NewConversationAnalyzer()

	messages := make([]string, 12)
	for i := range messages {
		messages[i] = "send it now"
	}
	result := a.Analyze(messages)

	assert.True(t, result.RapidMessaging)
	assert.Equal(t, 12, result.ShortMessages)
	assert.InDelta(t, 1.0-1.0/12.0, result.RepetitionRatio, 1e-9)
	// Factors: short ratio 0.4, rapid 0.6, repetition 0.7
	assert.InDelta(t, (0.4+0.6+0.7)/3.0, result.Score, 1e-9)
}

func TestConversationVolumeFactor(t *testing.T) {
	a := NewConversationAnalyzer()

	messages := make([]string, 25)
	for i := range messages {
		messages[i] = "this is a reasonably long unique message number " + string(rune('a'+i))
	}
	result := a.Analyze(messages)

	assert.True(t, result.RapidMessaging)
	// Factors: rapid 0.6 and volume 0.3; no short/repetition signal
	assert.InDelta(t, (0.6+0.3)/2.0, result.Score, 1e-9)
}
