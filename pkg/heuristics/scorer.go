// Package heuristics estimates how much a line of input reads like natural
// language rather than a shell invocation. The score is a weighted sum of
// independent lexical signals; it carries no state between calls and never
// touches the environment, so identical input and configuration always
// produce the identical score.
package heuristics

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// interrogatives are words that open a question when they lead the input.
var interrogatives = map[string]struct{}{
	"what": {}, "how": {}, "why": {}, "when": {}, "where": {}, "who": {},
	"can": {}, "could": {}, "should": {}, "would": {},
	"is": {}, "are": {}, "do": {}, "does": {},
}

// functionWords are articles, prepositions, pronouns, and conjunctions.
// Prose is dense with them; command lines are not.
var functionWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {},
	"is": {}, "are": {},
	"and": {}, "or": {}, "but": {},
	"for": {}, "to": {}, "of": {}, "in": {}, "on": {}, "at": {}, "by": {}, "with": {},
	"all": {}, "my": {}, "your": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"i": {}, "you": {}, "me": {}, "it": {}, "we": {}, "us": {},
}

// politenessPatterns match conversational and polite phrasing.
var politenessPatterns = []string{
	`\bplease\b`,
	`\bcan\s+you\b`,
	`\bcould\s+you\b`,
	`\bwould\s+you\b`,
	`\bhelp\s+me\b`,
	`\bi\s+want\b`,
	`\bi\s+need\b`,
	`\btell\s+me\b`,
	`\bshow\s+me\b`,
}

// comparativePatterns match comparative and descriptive adjective forms.
var comparativePatterns = []string{
	`\b(?:better|worse|best|worst|easier|harder|faster|slower)\s+(?:than|of)\b`,
	`\bcompared?\s+to\b`,
	`\bvs\.?\s|\bversus\b`,
	`\bmy\s+(?:favorite|preferred|personal)\b`,
}

// prosePunctuation are characters a single bare command token would not
// contain but a one-word utterance might.
const prosePunctuation = " .,;!?"

// Scorer computes natural-language-likelihood scores. All patterns are
// compiled once at construction so Score itself stays allocation-light.
type Scorer struct {
	cfg         Config
	politeness  []*regexp.Regexp
	comparative []*regexp.Regexp
}

// NewScorer compiles the signal patterns for the given configuration.
func NewScorer(cfg Config) *Scorer {
	compile := func(patterns []string) []*regexp.Regexp {
		res := make([]*regexp.Regexp, len(patterns))
		for i, p := range patterns {
			res[i] = regexp.MustCompile(p)
		}
		return res
	}

	return &Scorer{
		cfg:         cfg,
		politeness:  compile(politenessPatterns),
		comparative: compile(comparativePatterns),
	}
}

// Config returns the configuration the scorer was built with.
func (s *Scorer) Config() Config {
	return s.cfg
}

// Score evaluates raw input and its token sequence. Higher values mean more
// language-like; the command-direction single-token signal subtracts.
func (s *Scorer) Score(raw string, tokens []string) float64 {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return 0
	}

	var score float64

	if strings.HasSuffix(lowered, "?") {
		score += s.cfg.QuestionMarkWeight
	}

	if len(tokens) > 0 {
		if _, ok := interrogatives[strings.ToLower(tokens[0])]; ok {
			score += s.cfg.InterrogativeWeight
		}
	}

	if matchesAny(s.politeness, lowered) {
		score += s.cfg.PolitenessWeight
	}

	if len(tokens) > 0 {
		count := lo.CountBy(tokens, func(tok string) bool {
			_, ok := functionWords[strings.ToLower(tok)]
			return ok
		})
		if ratio := float64(count) / float64(len(tokens)); ratio > s.cfg.ArticleRatioThreshold {
			score += s.cfg.ArticleRatioWeight
		}
	}

	if matchesAny(s.comparative, lowered) {
		score += s.cfg.ComparativeWeight
	}

	if len(tokens) == 1 && !strings.ContainsAny(tokens[0], prosePunctuation) {
		score -= s.cfg.SingleTokenWeight
	}

	return score
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
