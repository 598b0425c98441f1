package categorizer

// Policy holds the fixed scoring tables used by an Engine. Keys and keywords
// are matched case-insensitively.
type Policy struct {
	PositiveKeywords  []string           `json:"positiveKeywords" yaml:"positiveKeywords"`
	NegativeKeywords  []string           `json:"negativeKeywords" yaml:"negativeKeywords"`
	ChoiceSentiment   map[string]float64 `json:"choiceSentiment" yaml:"choiceSentiment"`
	CategorySentiment map[string]float64 `json:"categorySentiment" yaml:"categorySentiment"`
}

// Choice label tiers
const (
	TierStrongPositive = 1.0
	TierMildPositive   = 0.6
	TierNeutral        = 0.5
	TierMildNegative   = 0.4
	TierStrongNegative = 0.0
)

var positiveKeywords = []string{
	"good", "great", "excellent", "amazing", "wonderful", "fantastic", "perfect", "satisfied",
	"happy", "pleased", "impressed", "helpful", "caring", "professional", "clean", "efficient",
	"quick", "fast", "timely", "polite", "friendly", "kind", "attentive", "thorough",
}

var negativeKeywords = []string{
	"bad", "terrible", "awful", "horrible", "disappointed", "unsatisfied", "unhappy", "angry",
	"frustrated", "upset", "poor", "slow", "dirty", "unclean", "rude", "unprofessional",
	"unhelpful", "uncaring", "neglected", "ignored", "long wait", "delayed", "late",
}

var choiceSentiment = map[string]float64{
	"yes":                   TierStrongPositive,
	"yes, perfectly":        TierStrongPositive,
	"yes, completely":       TierStrongPositive,
	"yes, very":             TierStrongPositive,
	"yes, very efficiently": TierStrongPositive,
	"excellent":             TierStrongPositive,
	"very good":             TierStrongPositive,
	"very satisfied":        TierStrongPositive,
	"very helpful":          TierStrongPositive,
	"very professional":     TierStrongPositive,
	"very clean":            TierStrongPositive,

	"yes, somewhat":        TierMildPositive,
	"somewhat efficiently": TierMildPositive,
	"good":                 TierMildPositive,
	"satisfied":            TierMildPositive,
	"helpful":              TierMildPositive,
	"professional":         TierMildPositive,
	"clean":                TierMildPositive,
	"somewhat":             TierMildPositive,

	"neutral":  TierNeutral,
	"okay":     TierNeutral,
	"average":  TierNeutral,
	"moderate": TierNeutral,
	"n/a":      TierNeutral,

	"no, not at all":       TierMildNegative,
	"not very efficiently": TierMildNegative,
	"poor":                 TierMildNegative,
	"unsatisfied":          TierMildNegative,
	"dissatisfied":         TierMildNegative,
	"unhelpful":            TierMildNegative,
	"unprofessional":       TierMildNegative,
	"dirty":                TierMildNegative,
	"not very":             TierMildNegative,

	"no":                     TierStrongNegative,
	"not at all efficiently": TierStrongNegative,
	"terrible":               TierStrongNegative,
	"very poor":              TierStrongNegative,
	"very unsatisfied":       TierStrongNegative,
	"very dissatisfied":      TierStrongNegative,
	"very unhelpful":         TierStrongNegative,
	"very unprofessional":    TierStrongNegative,
	"very dirty":             TierStrongNegative,
}

// "negative" is what the comment screen sends for a complaint.
var categorySentiment = map[string]float64{
	"compliment": 0.9,
	"complaint":  0.1,
	"negative":   0.1,
	"suggestion": 0.6,
}

// DefaultPolicy returns a copy of the built-in tables
func DefaultPolicy() *Policy {
	return &Policy{
		PositiveKeywords:  append([]string(nil), positiveKeywords...),
		NegativeKeywords:  append([]string(nil), negativeKeywords...),
		ChoiceSentiment:   copyTable(choiceSentiment),
		CategorySentiment: copyTable(categorySentiment),
	}
}

func copyTable(src map[string]float64) map[string]float64 {
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
