package services

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"fraudlens/internal/domain/models"
)

// Reputation labels
const (
	SenderSuspicious = "suspicious"
	SenderLegitimate = "legitimate"
	SenderNeutral    = "neutral"
	SenderUnknown    = "unknown"
)

var (
	repeatedDigitsRe   = regexp.MustCompile(`(0{4,}|1{4,}|2{4,}|3{4,}|4{4,}|5{4,}|6{4,}|7{4,}|8{4,}|9{4,})`)
	sequentialDigitsRe = regexp.MustCompile(`1234|2345|3456|4567|5678|6789`)
	nonDigitRe         = regexp.MustCompile(`\D`)
	longDigitRunRe     = regexp.MustCompile(`[0-9]{10,}`)
	oddEmailCharRe     = regexp.MustCompile(`[^a-zA-Z0-9@.]`)
	handleDigitRunRe   = regexp.MustCompile(`[0-9]{5,}`)
	oddHandleCharRe    = regexp.MustCompile(`[^a-zA-Z0-9_]`)
)

var suspiciousTLDs = []string{".tk", ".ml", ".ga", ".cf", ".cc", ".info", ".gq", ".top"}

var freeProviders = []string{
	"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "aol.com",
}

var knownLegitimateDomains = []string{
	"microsoft.com", "apple.com", "google.com", "amazon.com",
	"paypal.com", "ebay.com", "facebook.com", "irs.gov",
}

var officialSoundingWords = []string{"admin", "support", "official", "security", "help"}

// ReputationAnalyzer assesses sender identifiers: phone numbers for SMS,
// addresses for email, handles for chat. Heuristic only; no external lookups.
type ReputationAnalyzer struct {
	defaultRegion string
}

func NewReputationAnalyzer() *ReputationAnalyzer {
	return &ReputationAnalyzer{defaultRegion: "US"}
}

// Phone scores an SMS sender. The number is parsed and validated first;
// unparseable input falls back to raw digit heuristics.
func (r *ReputationAnalyzer) Phone(sender string) models.ReputationResult {
	sender = strings.TrimSpace(sender)
	if sender == "" {
		return models.ReputationResult{Label: SenderUnknown}
	}

	digits := nonDigitRe.ReplaceAllString(sender, "")
	var reasons []string
	score := 0.0

	if num, err := phonenumbers.Parse(sender, r.defaultRegion); err == nil {
		if !phonenumbers.IsValidNumber(num) {
			score += 0.2
			reasons = append(reasons, "Number fails validation")
		}
		digits = nonDigitRe.ReplaceAllString(phonenumbers.Format(num, phonenumbers.NATIONAL), "")
	}

	switch {
	case len(digits) == 10:
		score += 0.1
		reasons = append(reasons, "Standard 10-digit number")
	case len(digits) == 11:
		score += 0.2
		reasons = append(reasons, "11-digit number")
	case len(digits) >= 5 && len(digits) <= 9:
		score += 0.3
		reasons = append(reasons, "Unusual number length")
	}

	if repeatedDigitsRe.MatchString(digits) {
		score += 0.4
		reasons = append(reasons, "Repeated digits pattern")
	}
	if sequentialDigitsRe.MatchString(digits) {
		score += 0.3
		reasons = append(reasons, "Sequential digit pattern")
	}

	if score > 1.0 {
		score = 1.0
	}
	return models.ReputationResult{
		Score:   score,
		Label:   labelFor(score, 0.3, 0.1),
		Reasons: reasons,
	}
}

// Email scores an email sender address
func (r *ReputationAnalyzer) Email(sender string) models.ReputationResult {
	sender = strings.ToLower(strings.TrimSpace(sender))
	if sender == "" {
		return models.ReputationResult{Label: SenderUnknown}
	}

	var reasons []string
	score := 0.0

	domain := ""
	if at := strings.LastIndex(sender, "@"); at >= 0 {
		domain = sender[at+1:]
	}

	for _, tld := range suspiciousTLDs {
		if strings.HasSuffix(domain, tld) {
			score += 0.4
			reasons = append(reasons, "Suspicious top-level domain")
			break
		}
	}
	for _, provider := range freeProviders {
		if domain == provider {
			score += 0.1
			reasons = append(reasons, "Free email provider")
			break
		}
	}
	for _, legit := range knownLegitimateDomains {
		if domain == legit {
			score -= 0.2
			reasons = append(reasons, "Known legitimate domain")
			break
		}
	}
	if longDigitRunRe.MatchString(sender) {
		score += 0.3
		reasons = append(reasons, "Long digit sequence in address")
	}
	if oddEmailCharRe.MatchString(sender) {
		score += 0.2
		reasons = append(reasons, "Unusual characters in address")
	}

	if score > 1.0 {
		score = 1.0
	}
	return models.ReputationResult{
		Score:   score,
		Label:   labelFor(score, 0.3, -0.1),
		Reasons: reasons,
	}
}

// Handle scores a chat username
func (r *ReputationAnalyzer) Handle(sender string) models.ReputationResult {
	sender = strings.TrimSpace(sender)
	if sender == "" {
		return models.ReputationResult{Label: SenderUnknown}
	}

	var reasons []string
	score := 0.0

	if handleDigitRunRe.MatchString(sender) {
		score += 0.3
		reasons = append(reasons, "Long digit sequence in username")
	}
	if oddHandleCharRe.MatchString(sender) {
		score += 0.2
		reasons = append(reasons, "Unusual characters in username")
	}
	if len(sender) < 3 {
		score += 0.4
		reasons = append(reasons, "Very short username")
	}
	if len(sender) > 20 {
		score += 0.2
		reasons = append(reasons, "Very long username")
	}
	lower := strings.ToLower(sender)
	for _, word := range officialSoundingWords {
		if strings.Contains(lower, word) {
			score += 0.3
			reasons = append(reasons, "Official-sounding username")
			break
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	label := SenderNeutral
	if score > 0.3 {
		label = SenderSuspicious
	}
	return models.ReputationResult{Score: score, Label: label, Reasons: reasons}
}

func labelFor(score, suspiciousAbove, legitimateBelow float64) string {
	switch {
	case score > suspiciousAbove:
		return SenderSuspicious
	case score < legitimateBelow:
		return SenderLegitimate
	default:
		return SenderNeutral
	}
}
