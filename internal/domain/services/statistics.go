package services

import (
	"strings"
	"unicode"

	"fraudlens/internal/domain/models"
)

// Anomaly flag identifiers shared with the explanation composer
const (
	FlagExcessiveCaps    = "excessive_caps"
	FlagExcessiveDigits  = "excessive_digits"
	FlagExcessiveSpecial = "excessive_special"
	FlagExcessiveExclaim = "excessive_exclamations"
	FlagExcessiveLinks   = "excessive_links"
	FlagShortMessage     = "short_message"
	FlagLongMessage      = "long_message"
)

// statThresholds are the per-channel anomaly cutoffs
type statThresholds struct {
	caps     float64
	digits   float64
	special  float64
	short    int
	long     int
	exclaim  int // 0 disables
	links    int // 0 disables
	flagsMax int
}

var smsThresholds = statThresholds{
	caps: 0.3, digits: 0.2, special: 0.1, short: 20, long: 200, flagsMax: 5,
}

var emailThresholds = statThresholds{
	caps: 0.2, digits: 0.15, special: 0.08, short: 50, long: 2000,
	exclaim: 3, links: 2, flagsMax: 7,
}

// StatisticalAnalyzer extracts content statistics and flags anomalies.
// The score is the fraction of the channel's anomaly checks that fired.
type StatisticalAnalyzer struct{}

func NewStatisticalAnalyzer() *StatisticalAnalyzer {
	return &StatisticalAnalyzer{}
}

// SMS analyzes raw SMS content statistics
func (a *StatisticalAnalyzer) SMS(text string) models.StatisticalResult {
	return a.analyze(text, smsThresholds)
}

// Email analyzes raw email content statistics
func (a *StatisticalAnalyzer) Email(text string) models.StatisticalResult {
	return a.analyze(text, emailThresholds)
}

func (a *StatisticalAnalyzer) analyze(text string, t statThresholds) models.StatisticalResult {
	result := models.StatisticalResult{
		Features: make(map[string]float64),
	}
	if text == "" {
		return result
	}

	total := 0
	caps := 0
	digits := 0
	special := 0
	exclaim := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		switch {
		case unicode.IsUpper(r):
			caps++
		case unicode.IsDigit(r):
			digits++
		case !unicode.IsLetter(r):
			special++
		}
		if r == '!' {
			exclaim++
		}
	}
	if total == 0 {
		return result
	}

	length := len(text)
	capsRatio := float64(caps) / float64(total)
	digitRatio := float64(digits) / float64(total)
	specialRatio := float64(special) / float64(total)
	links := countLinks(text)

	result.Features["length"] = float64(length)
	result.Features["caps_ratio"] = capsRatio
	result.Features["digit_ratio"] = digitRatio
	result.Features["special_ratio"] = specialRatio
	result.Features["exclamation_count"] = float64(exclaim)
	result.Features["link_count"] = float64(links)

	if capsRatio > t.caps {
		result.AnomalyFlags = append(result.AnomalyFlags, FlagExcessiveCaps)
	}
	if digitRatio > t.digits {
		result.AnomalyFlags = append(result.AnomalyFlags, FlagExcessiveDigits)
	}
	if specialRatio > t.special {
		result.AnomalyFlags = append(result.AnomalyFlags, FlagExcessiveSpecial)
	}
	if t.exclaim > 0 && exclaim > t.exclaim {
		result.AnomalyFlags = append(result.AnomalyFlags, FlagExcessiveExclaim)
	}
	if t.links > 0 && links > t.links {
		result.AnomalyFlags = append(result.AnomalyFlags, FlagExcessiveLinks)
	}
	if length < t.short {
		result.AnomalyFlags = append(result.AnomalyFlags, FlagShortMessage)
	}
	if length > t.long {
		result.AnomalyFlags = append(result.AnomalyFlags, FlagLongMessage)
	}

	result.Score = float64(len(result.AnomalyFlags)) / float64(t.flagsMax)
	return result
}

func countLinks(text string) int {
	lower := strings.ToLower(text)
	return strings.Count(lower, "http://") +
		strings.Count(lower, "https://") +
		strings.Count(lower, "www.")
}
