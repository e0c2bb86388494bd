// Package explain enriches mechanical risk explanations with AI-generated
// guidance. Enrichment is strictly best-effort: any failure leaves the
// mechanical explanation untouched.
package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"fraudlens/internal/config"
	"fraudlens/internal/domain/models"
	"fraudlens/pkg/logger"
)

const systemPrompt = `You are a fraud analysis assistant. Given a technical risk
breakdown of a suspicious message, produce user-facing guidance. Respond with a
single JSON object and nothing else, using exactly these keys:
executive_summary (string), detailed_explanation (string), technical_insights
(string), immediate_actions (array of strings), prevention_tips (array of
strings), confidence_assessment (string), risk_breakdown (object with
primary_concerns, secondary_concerns, mitigating_factors as arrays of strings),
next_steps (object with immediate, short_term, long_term as arrays of strings).`

// Generator produces enriched explanations via the Gemini API
type Generator struct {
	client *genai.Client
	model  string
	log    *logger.Logger
}

// New creates a Generator. A disabled config or missing API key yields a
// generator that leaves explanations mechanical.
func New(ctx context.Context, cfg config.GeminiConfig, log *logger.Logger) (*Generator, error) {
	g := &Generator{model: cfg.Model, log: log.WithComponent("explain")}
	if !cfg.Enabled || cfg.APIKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	g.client = client
	return g, nil
}

// Enabled reports whether AI enrichment is active
func (g *Generator) Enabled() bool {
	return g.client != nil
}

type enrichedExplanation struct {
	ExecutiveSummary     string   `json:"executive_summary"`
	DetailedExplanation  string   `json:"detailed_explanation"`
	TechnicalInsights    string   `json:"technical_insights"`
	ImmediateActions     []string `json:"immediate_actions"`
	PreventionTips       []string `json:"prevention_tips"`
	ConfidenceAssessment string   `json:"confidence_assessment"`
	RiskBreakdown        struct {
		PrimaryConcerns   []string `json:"primary_concerns"`
		SecondaryConcerns []string `json:"secondary_concerns"`
		MitigatingFactors []string `json:"mitigating_factors"`
	} `json:"risk_breakdown"`
	NextSteps struct {
		Immediate []string `json:"immediate"`
		ShortTerm []string `json:"short_term"`
		LongTerm  []string `json:"long_term"`
	} `json:"next_steps"`
}

// Enrich expands the mechanical explanation on a result in place. On any
// failure the result is returned unchanged.
func (g *Generator) Enrich(ctx context.Context, result *models.AnalysisResult) {
	if g.client == nil {
		return
	}

	prompt := g.buildPrompt(result)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		})
	if err != nil {
		g.log.Warn().Err(err).Msg("explanation enrichment failed, keeping mechanical explanation")
		return
	}

	text := stripCodeFence(resp.Text())
	var enriched enrichedExplanation
	if err := json.Unmarshal([]byte(text), &enriched); err != nil {
		g.log.Warn().Err(err).Msg("unparseable enrichment response, keeping mechanical explanation")
		return
	}

	result.Explanation.ExecutiveSummary = enriched.ExecutiveSummary
	result.Explanation.DetailedExplanation = enriched.DetailedExplanation
	result.Explanation.TechnicalInsights = enriched.TechnicalInsights
	result.Explanation.ImmediateActions = enriched.ImmediateActions
	result.Explanation.PreventionTips = enriched.PreventionTips
	result.Explanation.ConfidenceAssessment = enriched.ConfidenceAssessment
	result.Explanation.RiskBreakdown = &models.RiskBreakdown{
		PrimaryConcerns:   enriched.RiskBreakdown.PrimaryConcerns,
		SecondaryConcerns: enriched.RiskBreakdown.SecondaryConcerns,
		MitigatingFactors: enriched.RiskBreakdown.MitigatingFactors,
	}
	result.Explanation.NextSteps = &models.NextSteps{
		Immediate: enriched.NextSteps.Immediate,
		ShortTerm: enriched.NextSteps.ShortTerm,
		LongTerm:  enriched.NextSteps.LongTerm,
	}
	result.Explanation.AIGenerated = true
}

func (g *Generator) buildPrompt(result *models.AnalysisResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Channel: %s\n", result.Channel)
	fmt.Fprintf(&b, "Risk score: %.2f (%s, flagged=%t)\n",
		result.RiskScore, result.RiskLevel, result.Flagged)
	fmt.Fprintf(&b, "Classification: %s (confidence %.2f)\n",
		result.Classification.Label, result.Classification.Confidence)
	if len(result.Patterns.HighRisk) > 0 {
		fmt.Fprintf(&b, "High-risk pattern categories: %s\n",
			strings.Join(result.Patterns.HighRisk, ", "))
	}
	if result.Statistics != nil && len(result.Statistics.AnomalyFlags) > 0 {
		fmt.Fprintf(&b, "Content anomalies: %s\n",
			strings.Join(result.Statistics.AnomalyFlags, ", "))
	}
	if result.Reputation.Label != "" {
		fmt.Fprintf(&b, "Sender reputation: %s (score %.2f)\n",
			result.Reputation.Label, result.Reputation.Score)
	}
	if result.Links != nil && len(result.Links.SuspiciousLinks) > 0 {
		fmt.Fprintf(&b, "Suspicious links: %d of %d\n",
			len(result.Links.SuspiciousLinks), result.Links.URLCount)
	}
	fmt.Fprintf(&b, "Mechanical summary: %s\n", result.Explanation.Summary)
	return b.String()
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}
	return strings.TrimSpace(text)
}
