package categorizer

import (
	"fmt"
	"math"

	"medfeedback/internal/model"
)

// Summarize renders a verdict for display, e.g. "Positive feedback (90% confidence)"
func Summarize(c model.FeedbackCategory) string {
	pct := int(math.Round(c.Confidence * 100))
	switch c.Overall {
	case model.OverallPositive:
		return fmt.Sprintf("Positive feedback (%d%% confidence)", pct)
	case model.OverallNegative:
		return fmt.Sprintf("Negative feedback (%d%% confidence)", pct)
	case model.OverallNeutral:
		return fmt.Sprintf("Neutral feedback (%d%% confidence)", pct)
	}
	return "Unable to categorize feedback"
}
