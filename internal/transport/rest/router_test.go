package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	_ "medfeedback/docs"
	"medfeedback/internal/cache"
	"medfeedback/internal/config"
	"medfeedback/internal/model"
	"medfeedback/internal/repository"
	"medfeedback/internal/service"
	"medfeedback/internal/transport/ws"
)

type memDepartments struct{ depts []model.Department }

func (m *memDepartments) Upsert(context.Context, *model.Department) error { return nil }

func (m *memDepartments) GetByID(_ context.Context, id string) (*model.Department, error) {
	for _, d := range m.depts {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, nil
}

func (m *memDepartments) List(context.Context) ([]model.Department, error) {
	return m.depts, nil
}

type memQuestions struct{ questions []model.Question }

func (m *memQuestions) Upsert(context.Context, *model.Question) error { return nil }

func (m *memQuestions) GetByID(context.Context, string) (*model.Question, error) { return nil, nil }

func (m *memQuestions) ListByDepartments(_ context.Context, ids []string) ([]model.Question, error) {
	var out []model.Question
	for _, q := range m.questions {
		for _, id := range ids {
			if q.DepartmentID == id {
				out = append(out, q)
			}
		}
	}
	return out, nil
}

func (m *memQuestions) Delete(context.Context, string) error { return nil }

type memStats struct {
	mu     sync.Mutex
	counts map[string]*model.DepartmentStats
}

func (m *memStats) Record(_ context.Context, _ model.Overall, byDept map[string]model.FeedbackCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range byDept {
		s := m.counts[id]
		if s == nil {
			s = &model.DepartmentStats{DepartmentID: id}
			m.counts[id] = s
		}
		switch c.Overall {
		case model.OverallPositive:
			s.Positive++
		case model.OverallNegative:
			s.Negative++
		default:
			s.Neutral++
		}
	}
	return nil
}

func (m *memStats) Get(_ context.Context, id string) (*model.DepartmentStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.counts[id]; ok {
		cp := *s
		return &cp, nil
	}
	return &model.DepartmentStats{DepartmentID: id}, nil
}

func (m *memStats) All(context.Context) ([]model.DepartmentStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.DepartmentStats, 0, len(m.counts))
	for _, s := range m.counts {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartmentID < out[j].DepartmentID })
	return out, nil
}

func (m *memStats) Attention(_ context.Context, limit int) ([]cache.AttentionEntry, error) {
	all, _ := m.All(context.Background())
	sort.SliceStable(all, func(i, j int) bool { return all[i].Negative > all[j].Negative })
	var out []cache.AttentionEntry
	for _, s := range all {
		if s.Negative > 0 && (limit <= 0 || len(out) < limit) {
			out = append(out, cache.AttentionEntry{DepartmentID: s.DepartmentID, Negative: s.Negative, Rank: len(out) + 1})
		}
	}
	return out, nil
}

type memDrafts struct {
	mu     sync.Mutex
	drafts map[string]*model.Submission
}

func (m *memDrafts) Set(_ context.Context, d *model.Submission, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[d.PatientID] = d
	return nil
}

func (m *memDrafts) Get(_ context.Context, patientID string) (*model.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drafts[patientID], nil
}

func (m *memDrafts) Delete(_ context.Context, patientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, patientID)
	return nil
}

type memOTP struct {
	mu    sync.Mutex
	codes map[string]string
}

func (m *memOTP) Set(_ context.Context, phone, code string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[phone] = code
	return nil
}

func (m *memOTP) Consume(_ context.Context, phone, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.codes[phone] != code {
		return false, nil
	}
	delete(m.codes, phone)
	return true, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		StaffUsername: "admin",
		StaffPassword: "pw",
		PatientTTL:    time.Hour,
		OTPTTL:        time.Minute,
		OTPEcho:       true,
	}
	logger := zap.NewNop()

	subs, err := repository.NewSQLiteSubmissionRepo(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { subs.Close() })

	questions := service.NewQuestionService(
		&memDepartments{depts: []model.Department{{ID: "emergency", Name: "Emergency", Order: 1}}},
		&memQuestions{questions: []model.Question{
			{ID: "emergency_q1", DepartmentID: "emergency", Order: 1, Kind: model.KindRating, Prompt: "How quickly were you attended to?", Required: true},
		}},
	)
	feedback := service.NewFeedbackService(questions, subs, &memStats{counts: map[string]*model.DepartmentStats{}}, &memDrafts{drafts: map[string]*model.Submission{}}, nil, logger)

	hub := ws.NewHub(logger)
	t.Cleanup(hub.Close)
	feedback.SetBroadcaster(hub)

	return NewRouter(&Container{
		AuthService:     service.NewAuthService(cfg, &memOTP{codes: map[string]string{}}, logger),
		QuestionService: questions,
		FeedbackService: feedback,
		WSHub:           hub,
		Logger:          logger,
	})
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func patientToken(t *testing.T, h http.Handler, phone string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/v1/auth/otp/request", "", model.OTPRequest{PhoneNumber: phone})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var otp model.OTPResponse
	decode(t, rec, &otp)
	require.NotEmpty(t, otp.Code)

	rec = do(t, h, http.MethodPost, "/v1/auth/otp/verify", "", model.OTPVerifyRequest{PhoneNumber: phone, Code: otp.Code})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login model.LoginResponse
	decode(t, rec, &login)
	return login.Token
}

func staffToken(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/v1/auth/login", "", model.LoginRequest{Username: "admin", Password: "pw"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login model.LoginResponse
	decode(t, rec, &login)
	return login.Token
}

func TestHealthAndSwagger(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Patient Feedback API")
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodOptions, "/v1/auth/login", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuthErrors(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/v1/auth/login", "", model.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/auth/otp/request", "", model.OTPRequest{PhoneNumber: "12"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/auth/otp/verify", "", model.OTPVerifyRequest{PhoneNumber: "+2348012345678", Code: "0000"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCatalog(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/v1/departments", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"emergency"`)

	rec = do(t, h, http.MethodGet, "/v1/questions?departments=emergency", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "emergency_q1")

	rec = do(t, h, http.MethodGet, "/v1/questions", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/questions?departments=mortuary", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreview(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/v1/categorize", "", map[string]interface{}{
		"questions": []map[string]interface{}{{"id": "q1", "prompt": "Rate us", "kind": "RATING"}},
		"answers":   map[string]interface{}{"q1": 1},
		"comment":   "rude and dirty",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res service.PreviewResult
	decode(t, rec, &res)
	assert.Equal(t, model.OverallNegative, res.Category.Overall)
	assert.Contains(t, res.Category.Reasoning, "negative comment provided")

	rec = do(t, h, http.MethodPost, "/v1/categorize", "", map[string]interface{}{
		"questions": []map[string]interface{}{{"id": "q1", "kind": "MATRIX"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedbackLifecycle(t *testing.T) {
	h := newTestRouter(t)
	alice := patientToken(t, h, "+234 801 234 5678")
	bob := patientToken(t, h, "+2348099999999")

	rec := do(t, h, http.MethodPost, "/v1/feedback", "", map[string]interface{}{"departments": []string{"emergency"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/feedback", alice, map[string]interface{}{
		"departments": []string{"emergency"},
		"answers":     map[string]interface{}{"emergency_q1": 5},
		"comment":     "Very friendly and quick",
		"commentType": "compliment",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created service.SubmitResult
	decode(t, rec, &created)
	id := created.Submission.ID
	assert.Equal(t, model.OverallPositive, created.Submission.Category.Overall)

	rec = do(t, h, http.MethodPost, "/v1/feedback", alice, map[string]interface{}{"departments": []string{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/feedback", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		Submissions []model.Submission `json:"submissions"`
	}
	decode(t, rec, &history)
	require.Len(t, history.Submissions, 1)
	assert.Equal(t, id, history.Submissions[0].ID)

	rec = do(t, h, http.MethodGet, "/v1/feedback/"+id, bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodDelete, "/v1/feedback/"+id, bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Staff endpoints reject patient tokens.
	rec = do(t, h, http.MethodGet, "/v1/admin/feedback", alice, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	staff := staffToken(t, h)
	rec = do(t, h, http.MethodGet, "/v1/admin/feedback?overall=positive&department=emergency", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var review struct {
		Submissions []model.Submission `json:"submissions"`
	}
	decode(t, rec, &review)
	assert.Len(t, review.Submissions, 1)

	rec = do(t, h, http.MethodGet, "/v1/admin/feedback?overall=great", staff, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/admin/feedback/"+id, staff, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/admin/stats", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		Departments []model.DepartmentStats `json:"departments"`
	}
	decode(t, rec, &stats)
	require.Len(t, stats.Departments, 1)
	assert.Equal(t, int64(1), stats.Departments[0].Positive)

	rec = do(t, h, http.MethodGet, "/v1/admin/attention?limit=3", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"departments":[]}`, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/v1/feedback/"+id, alice, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodGet, "/v1/feedback/"+id, alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDraftEndpoints(t *testing.T) {
	h := newTestRouter(t)
	token := patientToken(t, h, "+2348012345678")

	rec := do(t, h, http.MethodGet, "/v1/feedback/draft", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPut, "/v1/feedback/draft", token, map[string]interface{}{
		"departments": []string{"emergency"},
		"answers":     map[string]interface{}{"emergency_q1": 2},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/v1/feedback/draft", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var draft model.Submission
	decode(t, rec, &draft)
	assert.Equal(t, model.StatusDraft, draft.Status)

	rec = do(t, h, http.MethodDelete, "/v1/feedback/draft", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodGet, "/v1/feedback/draft", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
