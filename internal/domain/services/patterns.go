package services

import (
	"regexp"
	"sort"

	"fraudlens/internal/domain/models"
)

// PatternCategory is a named group of compiled regexes with a channel
// specific weight. Negative weights act as counter-signals: matches
// reduce the aggregate instead of raising it.
type PatternCategory struct {
	Name     string
	Weight   float64
	Boost    float64 // multiplier applied to the category score, 0 means none
	Patterns []*regexp.Regexp
}

// PatternMatcher scores text against a channel's pattern catalog
type PatternMatcher struct {
	channel          models.Channel
	categories       []PatternCategory
	perMatch         float64
	highRiskCutoff   float64
	triggerThreshold float64
}

func compileAll(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

// NewSMSPatternMatcher builds the SMS scam pattern catalog
func NewSMSPatternMatcher() *PatternMatcher {
	return &PatternMatcher{
		channel:          models.ChannelSMS,
		perMatch:         0.2,
		highRiskCutoff:   0.5,
		triggerThreshold: 0.5,
		categories: []PatternCategory{
			{Name: "urgency", Weight: 1.0, Patterns: compileAll([]string{
				`urgent(ly)?`,
				`act now`,
				`immediate(ly)?`,
				`expires? (today|soon|in \d+)`,
				`last chance`,
				`limited time`,
				`within \d+ (hours?|minutes?)`,
			})},
			{Name: "authority", Weight: 1.0, Patterns: compileAll([]string{
				`(irs|hmrc|tax (office|authority))`,
				`(police|court|legal action|lawsuit)`,
				`your bank`,
				`government`,
				`official notice`,
				`federal`,
			})},
			{Name: "payment", Weight: 1.0, Patterns: compileAll([]string{
				`(send|transfer|wire) (money|funds|cash)`,
				`gift ?cards?`,
				`bitcoin|crypto(currency)?`,
				`payment (due|overdue|required|failed)`,
				`outstanding (balance|fee|payment)`,
				`refund`,
			})},
			{Name: "otp_verification", Weight: 1.0, Patterns: compileAll([]string{
				`(verification|security|otp) code`,
				`one[- ]time pass(word|code)`,
				`verify your (account|identity|number)`,
				`confirm your (account|identity)`,
				`enter (the|your) code`,
			})},
			{Name: "threats", Weight: 1.0, Patterns: compileAll([]string{
				`account.{0,20}(suspended|locked|blocked|closed)`,
				`(arrest|jail|prison|prosecution)`,
				`will be (terminated|deactivated|deleted)`,
				`legal consequences`,
				`final (warning|notice)`,
			})},
			{Name: "personal_info", Weight: 1.0, Patterns: compileAll([]string{
				`(social security|ssn|national insurance)`,
				`(password|pin)( number)?`,
				`(credit|debit) card`,
				`bank (account|details)`,
				`date of birth`,
				`mother'?s maiden name`,
			})},
		},
	}
}

// NewEmailPatternMatcher builds the email phishing pattern catalog.
// Category weights reflect phishing signal strength; fake_legitimacy
// carries a negative weight since legitimacy markers argue against fraud.
func NewEmailPatternMatcher() *PatternMatcher {
	return &PatternMatcher{
		channel:          models.ChannelEmail,
		perMatch:         0.3,
		highRiskCutoff:   0.2,
		triggerThreshold: 0.2,
		categories: []PatternCategory{
			{Name: "urgency", Weight: 0.4, Patterns: compileAll([]string{
				`urgent(ly)?`,
				`immediate action (is )?required`,
				`act (now|immediately|today)`,
				`expires? (today|soon|within)`,
				`time[- ]sensitive`,
				`don'?t delay`,
			})},
			{Name: "authority", Weight: 0.3, Patterns: compileAll([]string{
				`(security|fraud|billing) (team|department)`,
				`account (services|administrator)`,
				`customer (support|service) team`,
				`(irs|tax) (notice|department)`,
				`compliance (team|department)`,
			})},
			{Name: "payment", Weight: 0.4, Patterns: compileAll([]string{
				`payment (failed|declined|pending|overdue)`,
				`(update|confirm) (your )?(payment|billing) (method|information|details)`,
				`invoice (attached|enclosed|#?\d+)`,
				`wire transfer`,
				`outstanding (balance|invoice)`,
				`refund (pending|available|waiting)`,
			})},
			{Name: "phishing_links", Weight: 0.6, Patterns: compileAll([]string{
				`click (here|below|the link)`,
				`(follow|use) th(is|e) link`,
				`log ?in (here|now|to your account)`,
				`sign in to (verify|confirm|restore)`,
				`(verify|restore|unlock) (your )?account (here|now)?`,
			})},
			{Name: "suspicious_domains", Weight: 0.7, Patterns: compileAll([]string{
				`https?://[^\s]*\.(tk|ml|ga|cf|gq)\b`,
				`https?://\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`,
				`(bit\.ly|tinyurl|goo\.gl|t\.co|is\.gd)/`,
				`https?://[^\s]*(secure|verify|login|update)[^\s]*\.(info|top|cc)\b`,
			})},
			{Name: "threats", Weight: 0.5, Patterns: compileAll([]string{
				`account.{0,30}(suspended|locked|limited|restricted|closed)`,
				`unauthorized (access|activity|transaction)`,
				`(will be|has been) (terminated|deactivated|disabled)`,
				`legal action`,
				`permanent(ly)? (suspend|clos|disabl)`,
				`failure to (comply|respond|verify)`,
			})},
			{Name: "personal_info", Weight: 0.4, Patterns: compileAll([]string{
				`(confirm|verify|update) your (identity|personal (information|details))`,
				`(social security|ssn)`,
				`(credit|debit) card (number|details|information)`,
				`(password|security question|pin)`,
				`(date of birth|mother'?s maiden name)`,
			})},
			{Name: "spoofing", Weight: 0.5, Patterns: compileAll([]string{
				`(paypa1|amaz0n|micros0ft|g00gle|app1e)`,
				`(paypal|amazon|microsoft|google|apple|netflix)[- ](support|security|team|billing)`,
				`no[- ]?reply@`,
				`on behalf of (paypal|amazon|microsoft|apple|your bank)`,
			})},
			{Name: "lottery_scams", Weight: 0.5, Patterns: compileAll([]string{
				`(you('ve| have)? )?(won|winner)`,
				`(lottery|sweepstakes|prize|jackpot)`,
				`claim your (prize|reward|winnings)`,
				`(million|billion) (dollars|usd|euros|pounds)`,
				`lucky (winner|draw)`,
				`congratulations`,
			})},
			{Name: "fake_legitimacy", Weight: -0.2, Patterns: compileAll([]string{
				`unsubscribe`,
				`privacy policy`,
				`terms (of service|and conditions)`,
				`this email was sent to`,
				`view (this email )?in (your )?browser`,
				`all rights reserved`,
			})},
		},
	}
}

// chatBoosted lists chat categories whose score is doubled; these map to
// scams with severe financial or personal harm.
var chatBoosted = map[string]bool{
	"investment_scam": true,
	"romance_scam":    true,
	"crypto_scam":     true,
	"fake_job_scam":   true,
}

// NewChatPatternMatcher builds the chat scam pattern catalog
func NewChatPatternMatcher() *PatternMatcher {
	boost := func(name string) float64 {
		if chatBoosted[name] {
			return 2.0
		}
		return 0
	}
	weight := func(name string) float64 {
		switch name {
		case "investment_scam", "romance_scam", "crypto_scam",
			"fake_job_scam", "tech_support_scam", "gift_card_scam":
			return 2.0
		default:
			return 1.0
		}
	}
	mk := func(name string, patterns []string) PatternCategory {
		return PatternCategory{
			Name:     name,
			Weight:   weight(name),
			Boost:    boost(name),
			Patterns: compileAll(patterns),
		}
	}
	return &PatternMatcher{
		channel:          models.ChannelChat,
		highRiskCutoff:   0.5,
		triggerThreshold: 0.3,
		categories: []PatternCategory{
			mk("romance_scam", []string{
				`(love|miss) you.{0,30}(never met|so soon)`,
				`my (darling|dear|love|sweetheart)`,
				`(lonely|widowed|deployed overseas)`,
				`(soulmate|destiny|meant to be)`,
				`need money (for|to) (visa|ticket|flight|hospital)`,
			}),
			mk("investment_scam", []string{
				`guaranteed (returns?|profits?|income)`,
				`double your (money|investment)`,
				`(passive income|financial freedom)`,
				`insider (tip|information|trading)`,
				`risk[- ]free investment`,
				`\d+% (returns?|profit|daily|weekly)`,
			}),
			mk("tech_support_scam", []string{
				`(your )?(computer|device|account) (is|has been) (infected|compromised|hacked)`,
				`(microsoft|apple|google) (support|technician)`,
				`remote (access|desktop|support)`,
				`install (teamviewer|anydesk)`,
				`virus (detected|found|alert)`,
			}),
			mk("gift_card_scam", []string{
				`(itunes|google play|amazon|steam) (gift )?cards?`,
				`buy (a |some )?gift ?cards?`,
				`(scratch|send) (the|me the) (code|pin|numbers)`,
				`pay (with|using|in) gift ?cards?`,
			}),
			mk("fake_job_scam", []string{
				`work from home`,
				`earn \$?\d+.{0,20}(per|a) (day|week|hour)`,
				`no experience (needed|required|necessary)`,
				`(easy|quick) money`,
				`processing fee|training fee|registration fee`,
				`hiring immediately`,
			}),
			mk("crypto_scam", []string{
				`(bitcoin|btc|ethereum|eth|crypto) (investment|trading|mining)`,
				`send .{0,20}(bitcoin|btc|eth|crypto)`,
				`wallet (address|seed|key)`,
				`(pump|moon|to the moon|100x)`,
				`airdrop`,
			}),
			mk("urgency_pressure", []string{
				`(right now|immediately|hurry)`,
				`before it'?s too late`,
				`(only|last) \d+ (spots?|left|remaining)`,
				`don'?t (tell|talk to) anyone`,
				`this offer (ends|expires)`,
			}),
			mk("personal_info_request", []string{
				`(send|share) (me )?(your|a) (photo|picture|id|passport)`,
				`(what'?s|send) your (address|location|phone number)`,
				`(bank|account) (details|number|information)`,
				`(password|verification code|otp)`,
				`(social security|ssn)`,
			}),
		},
	}
}

// Match runs the full catalog against normalized text and aggregates
// category scores per the channel's scoring rules.
func (m *PatternMatcher) Match(text string) models.PatternResult {
	result := models.PatternResult{
		CategoryScores: make(map[string]float64, len(m.categories)),
	}
	if text == "" {
		return result
	}

	seen := make(map[string]bool)
	for _, cat := range m.categories {
		score := 0.0
		phraseCounts := make(map[string]int)
		for _, re := range cat.Patterns {
			found := re.FindAllString(text, -1)
			n := len(found)
			if n == 0 {
				continue
			}
			switch m.channel {
			case models.ChannelChat:
				if n > 1 {
					score += float64(n) * 0.5
				} else {
					score += float64(n) * 0.4
				}
			case models.ChannelEmail:
				score += float64(n) * m.perMatch * cat.Weight
			default:
				score += float64(n) * m.perMatch
			}
			for _, phrase := range found {
				phraseCounts[phrase]++
			}
		}

		if cat.Boost > 0 && score > 0 {
			score *= cat.Boost
		}
		if score > 1.0 {
			score = 1.0
		}
		result.CategoryScores[cat.Name] = score

		if score > m.highRiskCutoff {
			result.HighRisk = append(result.HighRisk, cat.Name)
		}
		if score > m.triggerThreshold {
			// Up to the top three matched phrases per category, dedup
			// across categories
			phrases := make([]models.PatternMatch, 0, len(phraseCounts))
			for phrase, n := range phraseCounts {
				phrases = append(phrases, models.PatternMatch{
					Category: cat.Name,
					Phrase:   phrase,
					Matches:  n,
				})
			}
			sort.Slice(phrases, func(i, j int) bool {
				if phrases[i].Matches != phrases[j].Matches {
					return phrases[i].Matches > phrases[j].Matches
				}
				return phrases[i].Phrase < phrases[j].Phrase
			})
			if len(phrases) > 3 {
				phrases = phrases[:3]
			}
			for _, pm := range phrases {
				if !seen[pm.Phrase] {
					seen[pm.Phrase] = true
					result.Triggered = append(result.Triggered, pm)
				}
			}
		}
	}

	result.Score = m.aggregate(result.CategoryScores)
	return result
}

func (m *PatternMatcher) aggregate(scores map[string]float64) float64 {
	switch m.channel {
	case models.ChannelSMS:
		if len(m.categories) == 0 {
			return 0
		}
		sum := 0.0
		for _, cat := range m.categories {
			sum += scores[cat.Name]
		}
		return sum / float64(len(m.categories))
	default:
		// Weighted mean over |weight|. Email category scores already carry
		// their weight's sign, so negative categories pull the numerator
		// down while their magnitude still widens the denominator.
		var num, denom float64
		for _, cat := range m.categories {
			num += scores[cat.Name] * abs(cat.Weight)
			denom += abs(cat.Weight)
		}
		if denom == 0 {
			return 0
		}
		agg := num / denom
		if agg < 0 {
			agg = 0
		}
		if agg > 1 {
			agg = 1
		}
		return agg
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
