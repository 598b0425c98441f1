package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"medfeedback/internal/service"
	"medfeedback/internal/transport/rest/middleware"
)

// FeedbackHandler handles patient submissions and categorization previews
type FeedbackHandler struct {
	feedbackSvc *service.FeedbackService
	logger      *zap.Logger
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackSvc *service.FeedbackService, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedbackSvc: feedbackSvc, logger: logger}
}

// Submit handles POST /v1/feedback
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	patientID := middleware.GetPatientID(r.Context())

	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.feedbackSvc.Submit(r.Context(), patientID, &req)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, res)
}

// History handles GET /v1/feedback
func (h *FeedbackHandler) History(w http.ResponseWriter, r *http.Request) {
	patientID := middleware.GetPatientID(r.Context())

	subs, err := h.feedbackSvc.History(r.Context(), patientID, queryLimit(r))
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": subs})
}

// Get handles GET /v1/feedback/{id}
func (h *FeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	patientID := middleware.GetPatientID(r.Context())

	sub, err := h.feedbackSvc.Get(r.Context(), mux.Vars(r)["id"], patientID)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

// Delete handles DELETE /v1/feedback/{id}
func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	patientID := middleware.GetPatientID(r.Context())

	if err := h.feedbackSvc.Delete(r.Context(), mux.Vars(r)["id"], patientID); err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// SaveDraft handles PUT /v1/feedback/draft
func (h *FeedbackHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	patientID := middleware.GetPatientID(r.Context())

	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.feedbackSvc.SaveDraft(r.Context(), patientID, &req)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Draft handles GET /v1/feedback/draft
func (h *FeedbackHandler) Draft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.feedbackSvc.Draft(r.Context(), middleware.GetPatientID(r.Context()))
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// DiscardDraft handles DELETE /v1/feedback/draft
func (h *FeedbackHandler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.feedbackSvc.DiscardDraft(r.Context(), middleware.GetPatientID(r.Context())); err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "discarded"})
}

// Preview handles POST /v1/categorize
func (h *FeedbackHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req service.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, q := range req.Questions {
		if !q.Kind.Valid() {
			writeError(w, http.StatusBadRequest, "unknown question kind: "+string(q.Kind))
			return
		}
	}

	writeJSON(w, http.StatusOK, h.feedbackSvc.Preview(&req))
}

func (h *FeedbackHandler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoDepartments), errors.Is(err, service.ErrUnknownDepartment):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSubmissionNotFound), errors.Is(err, service.ErrDraftNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("feedback request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func queryLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
