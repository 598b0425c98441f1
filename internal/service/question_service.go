package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"medfeedback/internal/model"
	"medfeedback/internal/repository"
)

var (
	ErrNoDepartments     = errors.New("at least one department is required")
	ErrUnknownDepartment = errors.New("unknown department")
)

// QuestionService serves the department and question catalog
type QuestionService struct {
	departments repository.DepartmentRepo
	questions   repository.QuestionRepo
}

// NewQuestionService creates a new question service
func NewQuestionService(departments repository.DepartmentRepo, questions repository.QuestionRepo) *QuestionService {
	return &QuestionService{
		departments: departments,
		questions:   questions,
	}
}

// ListDepartments returns all departments in display order
func (s *QuestionService) ListDepartments(ctx context.Context) ([]model.Department, error) {
	return s.departments.List(ctx)
}

// QuestionsFor returns the questions of the selected departments, grouped in
// selection order and by position within each department. Duplicate IDs are
// ignored.
func (s *QuestionService) QuestionsFor(ctx context.Context, departmentIDs []string) ([]string, []model.Question, error) {
	ids := dedupe(departmentIDs)
	if len(ids) == 0 {
		return nil, nil, ErrNoDepartments
	}

	for _, id := range ids {
		dept, err := s.departments.GetByID(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		if dept == nil {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownDepartment, id)
		}
	}

	questions, err := s.questions.ListByDepartments(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	rank := make(map[string]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}
	sort.SliceStable(questions, func(i, j int) bool {
		ri, rj := rank[questions[i].DepartmentID], rank[questions[j].DepartmentID]
		if ri != rj {
			return ri < rj
		}
		return questions[i].Order < questions[j].Order
	})
	return ids, questions, nil
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
