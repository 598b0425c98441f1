package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Answer is a single submitted value: either a number or a string.
// The zero value is an absent answer.
type Answer struct {
	Number *float64 `json:"-" bson:"number,omitempty"`
	Text   *string  `json:"-" bson:"text,omitempty"`
}

// Answers maps question IDs to submitted values
type Answers map[string]Answer

// NumberAnswer builds a numeric answer
func NumberAnswer(v float64) Answer {
	return Answer{Number: &v}
}

// TextAnswer builds a string answer
func TextAnswer(s string) Answer {
	return Answer{Text: &s}
}

// IsEmpty reports whether the answer counts as unanswered: absent, null or empty string
func (a Answer) IsEmpty() bool {
	if a.Number != nil {
		return false
	}
	return a.Text == nil || *a.Text == ""
}

// Float returns the answer as a number. Numeric strings are parsed.
func (a Answer) Float() (float64, bool) {
	if a.Number != nil {
		return *a.Number, true
	}
	if a.Text == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*a.Text), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// String returns the answer as text. Numbers are formatted without trailing zeros.
func (a Answer) String() string {
	if a.Text != nil {
		return *a.Text
	}
	if a.Number != nil {
		return strconv.FormatFloat(*a.Number, 'f', -1, 64)
	}
	return ""
}

// MarshalJSON encodes the answer as a bare JSON scalar
func (a Answer) MarshalJSON() ([]byte, error) {
	switch {
	case a.Number != nil:
		return json.Marshal(*a.Number)
	case a.Text != nil:
		return json.Marshal(*a.Text)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts a number, string, boolean or null
func (a *Answer) UnmarshalJSON(data []byte) error {
	*a = Answer{}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
	case float64:
		a.Number = &t
	case string:
		a.Text = &t
	case bool:
		s := strconv.FormatBool(t)
		a.Text = &s
	default:
		return fmt.Errorf("answer must be a scalar, got %T", v)
	}
	return nil
}
