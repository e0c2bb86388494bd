package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkAnalyzerNoURLs(t *testing.T) {
	a := NewLinkAnalyzer()

	result := a.Analyze("no links in this message at all")
	assert.Equal(t, 0, result.URLCount)
	assert.Equal(t, 0.0, result.Score)
	assert.Empty(t, result.SuspiciousLinks)
}

func TestLinkAnalyzerAggregateIsMeanNotSum(t *testing.T) {
	a := NewLinkAnalyzer()

	// One risky shortener plus one clean link: the aggregate averages
	// over the URL count instead of summing.
	result := a.Analyze("see http://bit.ly/win and https://example.org/newsletter")
	require.Equal(t, 2, result.URLCount)
	assert.InDelta(t, 0.2, result.Score, 1e-9)
	require.Len(t, result.SuspiciousLinks, 1)
	assert.Contains(t, result.SuspiciousLinks[0].Reasons, "URL shortener")
}

func TestLinkAnalyzerStackedSignals(t *testing.T) {
	a := NewLinkAnalyzer()

	result := a.Analyze("go to http://secure-login.example.tk/verify")
	require.Len(t, result.SuspiciousLinks, 1)
	link := result.SuspiciousLinks[0]
	assert.Contains(t, link.Reasons, "Suspicious domain fragment")
	assert.Contains(t, link.Reasons, "Phishing keyword in URL")
	assert.InDelta(t, 0.8, link.Score, 1e-9)
}

func TestLinkAnalyzerScoreCapped(t *testing.T) {
	a := NewLinkAnalyzer()

	result := a.Analyze("http://bit.ly/verify.tk http://tinyurl.com/login.ml")
	assert.LessOrEqual(t, result.Score, 1.0)
}
