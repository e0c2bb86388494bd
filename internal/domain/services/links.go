package services

import (
	"strings"

	"fraudlens/internal/domain/models"
)

var urlShorteners = []string{"bit.ly", "tinyurl", "goo.gl", "t.co", "short.link", "is.gd"}

var suspiciousURLFragments = []string{".tk", ".ml", ".ga", ".cf", ".cc", ".info"}

var phishingURLKeywords = []string{"click", "verify", "confirm", "update", "secure", "login"}

// LinkAnalyzer extracts URLs from email content and scores each one
// against shortener, TLD and keyword heuristics. The aggregate is the
// mean per-URL score so a single clean link doesn't dilute to zero.
type LinkAnalyzer struct{}

func NewLinkAnalyzer() *LinkAnalyzer {
	return &LinkAnalyzer{}
}

func (a *LinkAnalyzer) Analyze(text string) models.LinkResult {
	urls := urlRe.FindAllString(text, -1)
	result := models.LinkResult{URLCount: len(urls)}
	if len(urls) == 0 {
		return result
	}

	total := 0.0
	for _, raw := range urls {
		url := strings.ToLower(raw)
		score := 0.0
		var reasons []string

		for _, s := range urlShorteners {
			if strings.Contains(url, s) {
				score += 0.4
				reasons = append(reasons, "URL shortener")
				break
			}
		}
		for _, frag := range suspiciousURLFragments {
			if strings.Contains(url, frag) {
				score += 0.5
				reasons = append(reasons, "Suspicious domain fragment")
				break
			}
		}
		for _, kw := range phishingURLKeywords {
			if strings.Contains(url, kw) {
				score += 0.3
				reasons = append(reasons, "Phishing keyword in URL")
				break
			}
		}

		total += score
		if score > 0.2 {
			result.SuspiciousLinks = append(result.SuspiciousLinks, models.SuspiciousLink{
				URL:     raw,
				Score:   score,
				Reasons: reasons,
			})
		}
	}

	agg := total / float64(len(urls))
	if agg > 1.0 {
		agg = 1.0
	}
	result.Score = agg
	return result
}
