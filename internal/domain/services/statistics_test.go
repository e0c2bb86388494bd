package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatisticsEmptyInput(t *testing.T) {
	a := NewStatisticalAnalyzer()

	result := a.SMS("")
	assert.Equal(t, 0.0, result.Score)
	assert.Empty(t, result.AnomalyFlags)

	result = a.Email("   ")
	assert.Equal(t, 0.0, result.Score)
	assert.Empty(t, result.AnomalyFlags)
}

func TestStatisticsSMSFlags(t *testing.T) {
	a := NewStatisticalAnalyzer()

	result := a.SMS("HELLO!!!")
	assert.Contains(t, result.AnomalyFlags, FlagExcessiveCaps)
	assert.Contains(t, result.AnomalyFlags, FlagExcessiveSpecial)
	assert.Contains(t, result.AnomalyFlags, FlagShortMessage)
	assert.InDelta(t, 3.0/5.0, result.Score, 1e-9)
}

func TestStatisticsSMSLongMessage(t *testing.T) {
	a := NewStatisticalAnalyzer()

	result := a.SMS(strings.Repeat("hello there friend ", 20))
	assert.Contains(t, result.AnomalyFlags, FlagLongMessage)
	assert.NotContains(t, result.AnomalyFlags, FlagShortMessage)
}

func TestStatisticsEmailExclamationsAndLinks(t *testing.T) {
	a := NewStatisticalAnalyzer()

	text := "visit http://a.example http://b.example http://c.example now!!!! really!!!! " +
		strings.Repeat("plain filler words here ", 3)
	result := a.Email(text)
	assert.Contains(t, result.AnomalyFlags, FlagExcessiveLinks)
	assert.Contains(t, result.AnomalyFlags, FlagExcessiveExclaim)
	assert.Equal(t, 3.0, result.Features["link_count"])
	assert.Equal(t, 8.0, result.Features["exclamation_count"])
}

func TestStatisticsCleanTextNoFlags(t *testing.T) {
	a := NewStatisticalAnalyzer()

	result := a.SMS("Hey, are we still meeting for lunch tomorrow at noon?")
	assert.Empty(t, result.AnomalyFlags)
	assert.Equal(t, 0.0, result.Score)
}
