package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"medfeedback/internal/cache"
	"medfeedback/internal/model"
	"medfeedback/internal/service"
)

// AdminHandler serves the staff review dashboard
type AdminHandler struct {
	feedback *FeedbackHandler
}

// NewAdminHandler creates a new admin handler sharing the feedback handler's error mapping
func NewAdminHandler(feedback *FeedbackHandler) *AdminHandler {
	return &AdminHandler{feedback: feedback}
}

func (h *AdminHandler) svc() *service.FeedbackService {
	return h.feedback.feedbackSvc
}

// List handles GET /v1/admin/feedback?overall=&department=&limit=
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.SubmissionFilter{
		Overall:      model.Overall(strings.ToLower(q.Get("overall"))),
		DepartmentID: q.Get("department"),
		Limit:        queryLimit(r),
	}
	switch filter.Overall {
	case "", model.OverallPositive, model.OverallNeutral, model.OverallNegative:
	default:
		writeError(w, http.StatusBadRequest, "overall must be positive, neutral or negative")
		return
	}

	subs, err := h.svc().Review(r.Context(), filter)
	if err != nil {
		h.feedback.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": subs})
}

// Get handles GET /v1/admin/feedback/{id}
func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	sub, err := h.svc().Get(r.Context(), mux.Vars(r)["id"], "")
	if err != nil {
		h.feedback.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

// Attention handles GET /v1/admin/attention?limit=
func (h *AdminHandler) Attention(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.svc().Attention(r.Context(), queryLimit(r))
	if err != nil {
		h.feedback.fail(w, err)
		return
	}
	if ranked == nil {
		ranked = []cache.AttentionEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"departments": ranked})
}

// Stats handles GET /v1/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc().Stats(r.Context())
	if err != nil {
		h.feedback.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"departments": stats})
}
