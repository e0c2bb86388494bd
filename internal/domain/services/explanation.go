package services

import (
	"fmt"
	"strings"

	"fraudlens/internal/domain/models"
)

var flagSentences = map[string]string{
	FlagExcessiveCaps:    "Excessive use of capital letters",
	FlagExcessiveDigits:  "Excessive use of numbers",
	FlagExcessiveSpecial: "Excessive use of special characters",
	FlagExcessiveExclaim: "Excessive use of exclamation marks",
	FlagExcessiveLinks:   "Excessive number of links",
	FlagShortMessage:     "Unusually short message",
	FlagLongMessage:      "Unusually long message",
}

// ExplanationComposer assembles the human-readable summary from the
// per-component findings. Clauses appear in signal order and join with
// ". "; no findings yields a channel-appropriate all-clear sentence.
type ExplanationComposer struct {
	channel models.Channel
}

func NewExplanationComposer(channel models.Channel) *ExplanationComposer {
	return &ExplanationComposer{channel: channel}
}

func (c *ExplanationComposer) Compose(
	class models.Classification,
	patterns models.PatternResult,
	stats *models.StatisticalResult,
	conversation *models.ConversationResult,
	reputation models.ReputationResult,
	links *models.LinkResult,
) string {
	var clauses []string

	if class.IsPositive && class.Confidence > 0.7 {
		clauses = append(clauses, fmt.Sprintf("AI detected %s with %.0f%% confidence",
			class.Label, class.Confidence*100))
	}

	if len(patterns.HighRisk) > 0 {
		clauses = append(clauses, "High-risk patterns detected: "+
			strings.Join(patterns.HighRisk, ", "))
	}

	if stats != nil {
		for _, flag := range stats.AnomalyFlags {
			if s, ok := flagSentences[flag]; ok {
				clauses = append(clauses, s)
			}
		}
	}

	if conversation != nil && conversation.Score > 0 {
		var issues []string
		if conversation.RapidMessaging {
			issues = append(issues, "rapid messaging")
		}
		if conversation.RepetitionRatio > 0.5 {
			issues = append(issues, "repetitive content")
		}
		if len(issues) > 0 {
			clauses = append(clauses, "Conversation concerns: "+strings.Join(issues, "; "))
		}
	}

	if reputation.Label == SenderSuspicious && len(reputation.Reasons) > 0 {
		clauses = append(clauses, "Sender issues: "+strings.Join(reputation.Reasons, "; "))
	}

	if links != nil && len(links.SuspiciousLinks) > 0 {
		clauses = append(clauses, fmt.Sprintf("Suspicious links detected: %d",
			len(links.SuspiciousLinks)))
	}

	if len(clauses) == 0 {
		if c.channel == models.ChannelEmail {
			return "No significant phishing indicators detected"
		}
		return "No significant scam indicators detected"
	}
	return strings.Join(clauses, ". ")
}
