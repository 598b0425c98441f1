package model

// AnswerKind defines how a question is answered
type AnswerKind string

const (
	KindRating       AnswerKind = "RATING"        // Bounded numeric scale (slider)
	KindSingleChoice AnswerKind = "SINGLE_CHOICE" // One label from Options
	KindFreeText     AnswerKind = "FREE_TEXT"     // Arbitrary text
)

// Valid reports whether k is one of the known answer kinds
func (k AnswerKind) Valid() bool {
	switch k {
	case KindRating, KindSingleChoice, KindFreeText:
		return true
	}
	return false
}

// Default rating scale used when a question does not declare one.
const (
	DefaultScaleMin = 1
	DefaultScaleMax = 5
)

// Question is an immutable survey question owned by one department
type Question struct {
	ID           string     `json:"id" bson:"_id"`                        // e.g., "emergency_q1"
	Prompt       string     `json:"prompt" bson:"prompt"`                 // Text shown to the patient
	Kind         AnswerKind `json:"kind" bson:"kind"`                     // RATING, SINGLE_CHOICE, FREE_TEXT
	Options      []string   `json:"options,omitempty" bson:"options"`     // SINGLE_CHOICE only
	Required     bool       `json:"required" bson:"required"`             // Answer is mandatory
	DepartmentID string     `json:"departmentId" bson:"departmentId"`     // Owning unit
	ScaleMin     int        `json:"scaleMin,omitempty" bson:"scaleMin"`   // RATING only
	ScaleMax     int        `json:"scaleMax,omitempty" bson:"scaleMax"`   // RATING only
	Order        int        `json:"order,omitempty" bson:"order"`         // Position within the department
}

// Scale returns the rating bounds, falling back to the default 1-5 scale
func (q *Question) Scale() (min, max float64) {
	if q.ScaleMin == 0 && q.ScaleMax == 0 {
		return DefaultScaleMin, DefaultScaleMax
	}
	return float64(q.ScaleMin), float64(q.ScaleMax)
}

// Department is an organizational unit a patient can give feedback on
type Department struct {
	ID    string `json:"id" bson:"_id"`     // e.g., "emergency"
	Name  string `json:"name" bson:"name"`  // e.g., "Emergency"
	Order int    `json:"order" bson:"order"`
}
