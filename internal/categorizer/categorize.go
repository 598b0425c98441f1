package categorizer

import (
	"math"
	"strings"

	"medfeedback/internal/model"
)

// Blend weights and thresholds
const (
	minCountedConfidence = 0.1 // answers at or below this only inform the trail
	minConfidenceSum     = 0.1

	commentWeight          = 0.3
	commentConfidenceBoost = 0.2
	categoryWeight         = 0.2

	positiveThreshold = 0.6
	negativeThreshold = 0.4

	strongPositive = 0.7
	strongNegative = 0.3
)

// FallbackReason is the single reasoning entry when no signal stood out
const FallbackReason = "insufficient data for detailed analysis"

// Categorize classifies a submission. comment and category are optional;
// an empty or blank string means absent. Answers missing from the map count
// as unanswered.
//
// Structured answers are combined first as a confidence-weighted mean, then
// the comment is blended in at 30%, then the category at 20%.
func (e *Engine) Categorize(questions []model.Question, answers model.Answers, comment, category string) model.FeedbackCategory {
	sentiment, confidence, reasoning := e.aggregate(questions, answers, comment, category)
	if len(reasoning) == 0 {
		reasoning = []string{FallbackReason}
	}
	return model.FeedbackCategory{
		Overall:    Classify(sentiment),
		Confidence: clamp01(confidence),
		Reasoning:  reasoning,
	}
}

// aggregate returns the blended sentiment, the overall confidence and the
// reasoning entries in signal order.
func (e *Engine) aggregate(questions []model.Question, answers model.Answers, comment, category string) (float64, float64, []string) {
	var (
		reasoning     []string
		weightedSum   float64
		confidenceSum float64
		counted       int
	)

	for i := range questions {
		q := &questions[i]
		s := e.ScoreAnswer(q, answers[q.ID])
		if s.Confidence <= minCountedConfidence {
			continue
		}
		weightedSum += s.Sentiment * s.Confidence
		confidenceSum += s.Confidence
		counted++

		switch {
		case s.Sentiment > strongPositive:
			reasoning = append(reasoning, "positive response to: "+q.Prompt)
		case s.Sentiment < strongNegative:
			reasoning = append(reasoning, "negative response to: "+q.Prompt)
		}
	}

	sentiment := neutralSentiment
	if counted > 0 {
		sentiment = weightedSum / math.Max(confidenceSum, minConfidenceSum)
	}
	confidence := math.Min(confidenceSum/float64(max(counted, 1)), 1)

	if comment = strings.TrimSpace(comment); comment != "" {
		cs := e.ScoreText(comment)
		sentiment = sentiment*(1-commentWeight) + cs*commentWeight
		confidence = math.Min(confidence+commentConfidenceBoost, 1)

		switch {
		case cs > strongPositive:
			reasoning = append(reasoning, "positive comment provided")
		case cs < strongNegative:
			reasoning = append(reasoning, "negative comment provided")
		}
	}

	if category = strings.ToLower(strings.TrimSpace(category)); category != "" {
		sentiment = sentiment*(1-categoryWeight) + e.CategorySentiment(category)*categoryWeight
		reasoning = append(reasoning, "user selected "+category+" as comment type")
	}

	return clamp01(sentiment), confidence, reasoning
}

// Categorize classifies with the default engine
func Categorize(questions []model.Question, answers model.Answers, comment, category string) model.FeedbackCategory {
	return defaultEngine.Categorize(questions, answers, comment, category)
}

// CategorySentiment maps a comment category to its fixed sentiment; unknown
// categories are neutral.
func (e *Engine) CategorySentiment(category string) float64 {
	if v, ok := e.categories[strings.ToLower(strings.TrimSpace(category))]; ok {
		return v
	}
	return neutralSentiment
}

// Classify thresholds an aggregate sentiment, clamped to [0,1] first
func Classify(sentiment float64) model.Overall {
	sentiment = clamp01(sentiment)
	switch {
	case sentiment >= positiveThreshold:
		return model.OverallPositive
	case sentiment <= negativeThreshold:
		return model.OverallNegative
	}
	return model.OverallNeutral
}

// CategorizeByUnit runs the engine separately over each department's
// questions, without comment signals.
func (e *Engine) CategorizeByUnit(questions []model.Question, answers model.Answers) map[string]model.FeedbackCategory {
	groups := make(map[string][]model.Question)
	for _, q := range questions {
		groups[q.DepartmentID] = append(groups[q.DepartmentID], q)
	}
	out := make(map[string]model.FeedbackCategory, len(groups))
	for unit, qs := range groups {
		out[unit] = e.Categorize(qs, answers, "", "")
	}
	return out
}
