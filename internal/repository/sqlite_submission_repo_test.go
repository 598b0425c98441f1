package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medfeedback/internal/model"
)

func newTestRepo(t *testing.T) *SQLiteSubmissionRepo {
	t.Helper()
	repo, err := NewSQLiteSubmissionRepo(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func submission(patient string, overall model.Overall, at time.Time, depts ...string) *model.Submission {
	return &model.Submission{
		PatientID:   patient,
		Departments: depts,
		Answers:     model.Answers{"q1": model.NumberAnswer(4), "q2": model.TextAnswer("Yes")},
		Comment:     "friendly staff",
		CommentType: model.CommentCompliment,
		Status:      model.StatusSubmitted,
		Category: model.FeedbackCategory{
			Overall:    overall,
			Confidence: 0.85,
			Reasoning:  []string{"positive comment provided"},
		},
		SubmittedAt: at,
	}
}

func TestSQLiteCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	sub := submission("p1", model.OverallPositive, time.Now(), "emergency")
	id, err := repo.Create(ctx, sub)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "p1", got.PatientID)
	assert.Equal(t, model.OverallPositive, got.Category.Overall)
	v, ok := got.Answers["q1"].Float()
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)
	assert.Equal(t, "Yes", got.Answers["q2"].String())

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSQLiteListFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	for _, s := range []*model.Submission{
		submission("p1", model.OverallPositive, base, "emergency", "pharmacy"),
		submission("p1", model.OverallNegative, base.Add(time.Hour), "pharmacy"),
		submission("p2", model.OverallNegative, base.Add(2*time.Hour), "radiology"),
	} {
		_, err := repo.Create(ctx, s)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter model.SubmissionFilter
		want   int
	}{
		{"all", model.SubmissionFilter{}, 3},
		{"by patient", model.SubmissionFilter{PatientID: "p1"}, 2},
		{"by overall", model.SubmissionFilter{Overall: model.OverallNegative}, 2},
		{"by department", model.SubmissionFilter{DepartmentID: "pharmacy"}, 2},
		{"department must match whole id", model.SubmissionFilter{DepartmentID: "pharm"}, 0},
		{"combined", model.SubmissionFilter{PatientID: "p1", Overall: model.OverallNegative}, 1},
		{"limit", model.SubmissionFilter{Limit: 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}

	newest, err := repo.List(ctx, model.SubmissionFilter{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, "p2", newest[0].PatientID)
}

func TestSQLiteDeleteScopedToPatient(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, submission("p1", model.OverallNeutral, time.Now(), "billing"))
	require.NoError(t, err)

	ok, err := repo.Delete(ctx, id, "someone-else")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Delete(ctx, id, "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}
