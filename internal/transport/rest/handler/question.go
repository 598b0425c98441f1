package handler

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"medfeedback/internal/service"
)

// QuestionHandler serves the department and question catalog
type QuestionHandler struct {
	questionSvc *service.QuestionService
	logger      *zap.Logger
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionSvc *service.QuestionService, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc, logger: logger}
}

// Departments handles GET /v1/departments
func (h *QuestionHandler) Departments(w http.ResponseWriter, r *http.Request) {
	depts, err := h.questionSvc.ListDepartments(r.Context())
	if err != nil {
		h.logger.Error("list departments failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"departments": depts})
}

// Questions handles GET /v1/questions?departments=a,b
func (h *QuestionHandler) Questions(w http.ResponseWriter, r *http.Request) {
	ids := splitList(r.URL.Query().Get("departments"))

	departments, questions, err := h.questionSvc.QuestionsFor(r.Context(), ids)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoDepartments), errors.Is(err, service.ErrUnknownDepartment):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("list questions failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"departments": departments,
		"questions":   questions,
	})
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
