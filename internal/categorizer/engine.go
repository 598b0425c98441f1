// Package categorizer turns a patient's survey answers, free-text comment and
// comment category into a single positive/neutral/negative verdict with a
// confidence and a human-readable reasoning trail.
//
// It is a deterministic keyword and table heuristic. An Engine holds only
// read-only tables, so one value can be shared by any number of goroutines.
package categorizer

import (
	"sort"
	"strings"
)

// Engine scores submissions against one Policy
type Engine struct {
	positive   []string
	negative   []string
	choices    map[string]float64
	categories map[string]float64
}

var defaultEngine = New(nil)

// Default returns the engine built from DefaultPolicy
func Default() *Engine {
	return defaultEngine
}

// New builds an engine from p. A nil policy means DefaultPolicy.
// Keywords and table keys are lower-cased and de-duplicated.
func New(p *Policy) *Engine {
	if p == nil {
		p = DefaultPolicy()
	}
	return &Engine{
		positive:   normalizeKeywords(p.PositiveKeywords),
		negative:   normalizeKeywords(p.NegativeKeywords),
		choices:    normalizeTable(p.ChoiceSentiment),
		categories: normalizeTable(p.CategorySentiment),
	}
}

// Policy returns a copy of the tables the engine scores with
func (e *Engine) Policy() *Policy {
	return &Policy{
		PositiveKeywords:  append([]string(nil), e.positive...),
		NegativeKeywords:  append([]string(nil), e.negative...),
		ChoiceSentiment:   copyTable(e.choices),
		CategorySentiment: copyTable(e.categories),
	}
}

// ScoreText returns the share of matched keywords that are positive, or 0.5
// when no keyword matches. Matching is substring based, so "unhelpful" also
// counts as "helpful".
func (e *Engine) ScoreText(text string) float64 {
	lower := strings.ToLower(text)
	p := countMatches(lower, e.positive)
	n := countMatches(lower, e.negative)
	if p == 0 && n == 0 {
		return neutralSentiment
	}
	return float64(p) / float64(p+n)
}

// ScoreText scores text with the default engine
func ScoreText(text string) float64 {
	return defaultEngine.ScoreText(text)
}

func countMatches(lower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}

func normalizeKeywords(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, kw := range in {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}

func normalizeTable(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	// Sorted so that keys colliding after lower-casing resolve the same way every run.
	sort.Strings(keys)
	for _, k := range keys {
		out[strings.ToLower(strings.TrimSpace(k))] = clamp01(in[k])
	}
	return out
}
