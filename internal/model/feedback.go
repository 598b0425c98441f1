package model

import "time"

// Overall is the final sentiment verdict of a submission
type Overall string

const (
	OverallPositive Overall = "positive"
	OverallNeutral  Overall = "neutral"
	OverallNegative Overall = "negative"
)

// Comment categories offered by the comment screen
const (
	CommentSuggestion = "suggestion"
	CommentCompliment = "compliment"
	CommentComplaint  = "complaint"
)

// FeedbackCategory is the explainable verdict produced by the categorizer
type FeedbackCategory struct {
	Overall    Overall  `json:"overall" bson:"overall"`
	Confidence float64  `json:"confidence" bson:"confidence"` // 0-1
	Reasoning  []string `json:"reasoning" bson:"reasoning"`   // Never empty
}

// SubmissionStatus mirrors the history tabs of the mobile app
type SubmissionStatus string

const (
	StatusSubmitted SubmissionStatus = "submitted"
	StatusDraft     SubmissionStatus = "draft"
)

// Submission is one patient encounter's feedback across several departments
type Submission struct {
	ID           string                      `json:"id" bson:"_id,omitempty"`
	PatientID    string                      `json:"patientId" bson:"patientId"`
	Departments  []string                    `json:"departments" bson:"departments"`
	Answers      Answers                     `json:"answers" bson:"answers"`
	Comment      string                      `json:"comment,omitempty" bson:"comment,omitempty"`
	CommentType  string                      `json:"commentType,omitempty" bson:"commentType,omitempty"`
	Gender       string                      `json:"gender,omitempty" bson:"gender,omitempty"`
	Priorities   []string                    `json:"priorities,omitempty" bson:"priorities,omitempty"`
	Status       SubmissionStatus            `json:"status" bson:"status"`
	Category     FeedbackCategory            `json:"category" bson:"category"`
	ByDepartment map[string]FeedbackCategory `json:"byDepartment,omitempty" bson:"byDepartment,omitempty"`
	Summary      string                      `json:"summary" bson:"summary"`
	SubmittedAt  time.Time                   `json:"submittedAt" bson:"submittedAt"`
}

// SubmissionFilter narrows staff review listings
type SubmissionFilter struct {
	PatientID    string
	Overall      Overall
	DepartmentID string
	Limit        int
}

// DepartmentStats counts verdicts per department
type DepartmentStats struct {
	DepartmentID string `json:"departmentId"`
	Positive     int64  `json:"positive"`
	Neutral      int64  `json:"neutral"`
	Negative     int64  `json:"negative"`
}

// Total returns the number of verdicts counted
func (s DepartmentStats) Total() int64 {
	return s.Positive + s.Neutral + s.Negative
}
