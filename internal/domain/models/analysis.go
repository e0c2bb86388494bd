package models

import (
	"time"

	"github.com/google/uuid"
)

// Channel identifies the communication channel being analyzed
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
	ChannelChat  Channel = "chat"
)

// RiskLevel is the graduated risk classification of a message
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Classification is the output of an external text classifier
type Classification struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	IsPositive bool    `json:"is_positive"`
}

// PatternMatch records a matched phrase within a category
type PatternMatch struct {
	Category string `json:"category"`
	Phrase   string `json:"phrase"`
	Matches  int    `json:"matches"`
}

// PatternResult holds the outcome of pattern catalog matching
type PatternResult struct {
	Score          float64            `json:"score"`
	CategoryScores map[string]float64 `json:"category_scores"`
	HighRisk       []string           `json:"high_risk_categories"`
	Triggered      []PatternMatch     `json:"triggered_patterns,omitempty"`
}

// StatisticalResult holds content-statistics features and anomaly flags
type StatisticalResult struct {
	Score        float64            `json:"score"`
	Features     map[string]float64 `json:"features"`
	AnomalyFlags []string           `json:"anomaly_flags,omitempty"`
}

// ReputationResult holds the sender reputation assessment
type ReputationResult struct {
	Score   float64  `json:"score"`
	Label   string   `json:"label"` // suspicious / legitimate / neutral / unknown
	Reasons []string `json:"reasons,omitempty"`
}

// SuspiciousLink is a single URL judged risky
type SuspiciousLink struct {
	URL     string   `json:"url"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons,omitempty"`
}

// LinkResult holds the aggregate link risk for a message
type LinkResult struct {
	Score           float64          `json:"score"`
	URLCount        int              `json:"url_count"`
	SuspiciousLinks []SuspiciousLink `json:"suspicious_links,omitempty"`
}

// ConversationResult holds chat conversation dynamics metrics
type ConversationResult struct {
	Score           float64 `json:"score"`
	TotalMessages   int     `json:"total_messages"`
	AvgLength       float64 `json:"avg_message_length"`
	ShortMessages   int     `json:"short_messages"`
	LongMessages    int     `json:"long_messages"`
	RapidMessaging  bool    `json:"rapid_messaging"`
	RepetitionRatio float64 `json:"repetition_ratio"`
}

// FusionResult is the fused risk assessment produced by the fusion engine
type FusionResult struct {
	Score           float64            `json:"score"`
	Level           RiskLevel          `json:"level"`
	Flagged         bool               `json:"flagged"`
	ComponentScores map[string]float64 `json:"component_scores"`
	Weights         map[string]float64 `json:"weights"`
	Indicators      []string           `json:"indicators,omitempty"`
	BonusApplied    float64            `json:"bonus_applied,omitempty"`
	Dampened        bool               `json:"dampened,omitempty"`
}

// Explanation is the human-readable account of a risk assessment.
// The enriched fields are only populated when AI expansion succeeds.
type Explanation struct {
	Summary              string         `json:"summary"`
	ExecutiveSummary     string         `json:"executive_summary,omitempty"`
	DetailedExplanation  string         `json:"detailed_explanation,omitempty"`
	TechnicalInsights    string         `json:"technical_insights,omitempty"`
	ImmediateActions     []string       `json:"immediate_actions,omitempty"`
	PreventionTips       []string       `json:"prevention_tips,omitempty"`
	ConfidenceAssessment string         `json:"confidence_assessment,omitempty"`
	RiskBreakdown        *RiskBreakdown `json:"risk_breakdown,omitempty"`
	NextSteps            *NextSteps     `json:"next_steps,omitempty"`
	AIGenerated          bool           `json:"ai_generated"`
}

// RiskBreakdown groups concerns by severity in an enriched explanation
type RiskBreakdown struct {
	PrimaryConcerns   []string `json:"primary_concerns,omitempty"`
	SecondaryConcerns []string `json:"secondary_concerns,omitempty"`
	MitigatingFactors []string `json:"mitigating_factors,omitempty"`
}

// NextSteps groups recommended actions by horizon in an enriched explanation
type NextSteps struct {
	Immediate []string `json:"immediate,omitempty"`
	ShortTerm []string `json:"short_term,omitempty"`
	LongTerm  []string `json:"long_term,omitempty"`
}

// AnalysisResult is the complete outcome of analyzing one message
type AnalysisResult struct {
	AnalysisID     string              `json:"analysis_id"`
	Channel        Channel             `json:"channel"`
	RiskScore      float64             `json:"risk_score"`
	RiskLevel      RiskLevel           `json:"risk_level"`
	Flagged        bool                `json:"flagged"`
	Classification Classification      `json:"classification"`
	Patterns       PatternResult       `json:"patterns"`
	Statistics     *StatisticalResult  `json:"statistics,omitempty"`
	Conversation   *ConversationResult `json:"conversation,omitempty"`
	Reputation     ReputationResult    `json:"sender_reputation"`
	Links          *LinkResult         `json:"links,omitempty"`
	Fusion         FusionResult        `json:"fusion"`
	Explanation    Explanation         `json:"explanation"`
	CacheHit       bool                `json:"cache_hit,omitempty"`
	ProcessingMS   int64               `json:"processing_ms"`
	AnalyzedAt     time.Time           `json:"analyzed_at"`
}

// NewAnalysisID generates a fresh analysis identifier
func NewAnalysisID() string {
	return uuid.New().String()
}

// LevelForScore maps a fused score to a risk level using the given thresholds
func LevelForScore(score, high, medium float64) RiskLevel {
	switch {
	case score >= high:
		return RiskHigh
	case score >= medium:
		return RiskMedium
	default:
		return RiskLow
	}
}
