package categorizer

import (
	"math"
	"strings"

	"medfeedback/internal/model"
)

// Score is one signal's sentiment and the weight it carries
type Score struct {
	Sentiment  float64 `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

const (
	neutralSentiment = 0.5

	unansweredConfidence    = 0.1
	ratingConfidence        = 0.9
	ratingMidConfidence     = 0.8
	choiceConfidence        = 0.8
	unknownChoiceConfidence = 0.3
	textConfidence          = 0.6

	ratingLowSentiment  = 0.2
	ratingHighSentiment = 0.8
)

// Unanswered is the low-confidence neutral score given to missing or malformed answers
var Unanswered = Score{Sentiment: neutralSentiment, Confidence: unansweredConfidence}

// ScoreAnswer maps one answer to a Score according to the question's kind.
// Malformed or mismatched answers score as Unanswered.
func (e *Engine) ScoreAnswer(q *model.Question, a model.Answer) Score {
	if a.IsEmpty() {
		return Unanswered
	}
	switch q.Kind {
	case model.KindRating:
		return scoreRating(q, a)
	case model.KindSingleChoice:
		return e.scoreChoice(q, a)
	case model.KindFreeText:
		return e.scoreFreeText(a)
	}
	return Unanswered
}

// ScoreAnswer scores with the default engine
func ScoreAnswer(q *model.Question, a model.Answer) Score {
	return defaultEngine.ScoreAnswer(q, a)
}

// scoreRating splits the scale in thirds. The middle third, which always
// holds the midpoint, is neutral.
func scoreRating(q *model.Question, a model.Answer) Score {
	v, ok := a.Float()
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return Unanswered
	}
	lo, hi := q.Scale()
	if hi <= lo || v < lo || v > hi {
		return Unanswered
	}
	third := (hi - lo) / 3
	switch {
	case v <= lo+third:
		return Score{Sentiment: ratingLowSentiment, Confidence: ratingConfidence}
	case v >= hi-third:
		return Score{Sentiment: ratingHighSentiment, Confidence: ratingConfidence}
	}
	return Score{Sentiment: neutralSentiment, Confidence: ratingMidConfidence}
}

func (e *Engine) scoreChoice(q *model.Question, a model.Answer) Score {
	if a.Text == nil {
		return Unanswered
	}
	label := strings.TrimSpace(*a.Text)
	if label == "" {
		return Unanswered
	}
	if len(q.Options) > 0 && !containsFold(q.Options, label) {
		return Unanswered
	}
	if v, ok := e.choices[strings.ToLower(label)]; ok {
		return Score{Sentiment: v, Confidence: choiceConfidence}
	}
	return Score{Sentiment: neutralSentiment, Confidence: unknownChoiceConfidence}
}

func (e *Engine) scoreFreeText(a model.Answer) Score {
	if a.Text == nil {
		return Unanswered
	}
	return Score{Sentiment: e.ScoreText(a.String()), Confidence: textConfidence}
}

func containsFold(options []string, label string) bool {
	for _, o := range options {
		if strings.EqualFold(strings.TrimSpace(o), label) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return neutralSentiment
	}
	return math.Max(0, math.Min(1, v))
}
