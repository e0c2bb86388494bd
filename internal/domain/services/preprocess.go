package services

import (
	"regexp"
	"strings"
)

// Preprocessor normalizes raw message content before scoring. Each channel
// has its own normalization rules since the noise differs (SMS shorthand,
// email HTML, chat platform artifacts).
type Preprocessor struct{}

func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	phoneRe       = regexp.MustCompile(`\+?\d[\d\s\-().]{7,}\d`)
	emailAddrRe   = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	urlRe         = regexp.MustCompile(`https?://[^\s]+|www\.[^\s]+`)
	htmlTagRe     = regexp.MustCompile(`<[^>]+>`)
	htmlEntityRe  = regexp.MustCompile(`&[a-zA-Z#0-9]+;`)
	headerLineRe  = regexp.MustCompile(`(?mi)^(received|return-path|message-id|mime-version|content-type|x-[a-z\-]+):.*$`)
	exclaimRunRe  = regexp.MustCompile(`!{2,}`)
	questionRunRe = regexp.MustCompile(`\?{2,}`)
	bracketTagRe  = regexp.MustCompile(`\[[^\]]*\]|<[^>]*>`)
)

var contractions = map[string]string{
	"won't":  "will not",
	"can't":  "cannot",
	"n't":    " not",
	"'re":    " are",
	"'ve":    " have",
	"'ll":    " will",
	"'d":     " would",
	"'m":     " am",
	"it's":   "it is",
	"let's":  "let us",
}

// contractionOrder keeps replacement deterministic; longer keys first so
// "won't" is not mangled by the generic "n't" rule.
var contractionOrder = []string{"won't", "can't", "it's", "let's", "n't", "'re", "'ve", "'ll", "'d", "'m"}

func expandContractions(text string) string {
	for _, k := range contractionOrder {
		text = strings.ReplaceAll(text, k, contractions[k])
	}
	return text
}

func substitutePlaceholders(text string) string {
	text = urlRe.ReplaceAllString(text, " URL ")
	text = emailAddrRe.ReplaceAllString(text, " EMAIL ")
	text = phoneRe.ReplaceAllString(text, " PHONE ")
	return text
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// SMS normalizes an SMS message body
func (p *Preprocessor) SMS(text string) string {
	text = strings.ToLower(text)
	text = expandContractions(text)
	text = substitutePlaceholders(text)
	return collapseWhitespace(text)
}

// Email normalizes email content (subject plus body). HTML markup and
// transport headers are stripped, oversized bodies are truncated to a
// head and tail window so pattern matching stays bounded.
func (p *Preprocessor) Email(text string) string {
	text = strings.ToLower(text)
	text = headerLineRe.ReplaceAllString(text, " ")
	text = htmlTagRe.ReplaceAllString(text, " ")
	text = htmlEntityRe.ReplaceAllString(text, " ")
	text = expandContractions(text)
	text = substitutePlaceholders(text)
	text = exclaimRunRe.ReplaceAllString(text, "!")
	text = questionRunRe.ReplaceAllString(text, "?")
	text = collapseWhitespace(text)

	if len(text) > 5000 {
		text = text[:2000] + " ... " + text[len(text)-1000:]
	}
	if len(text) < 10 {
		return "short content"
	}
	return text
}

// Chat normalizes a single chat message, stripping platform artifacts
// like [attachment] markers and <mention> tags.
func (p *Preprocessor) Chat(text string) string {
	text = strings.ToLower(text)
	text = bracketTagRe.ReplaceAllString(text, " ")
	text = expandContractions(text)
	text = substitutePlaceholders(text)
	return collapseWhitespace(text)
}
