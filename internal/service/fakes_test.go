package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"medfeedback/internal/cache"
	"medfeedback/internal/model"
)

type fakeDepartmentRepo struct {
	depts map[string]model.Department
}

func newFakeDepartmentRepo(depts ...model.Department) *fakeDepartmentRepo {
	r := &fakeDepartmentRepo{depts: make(map[string]model.Department)}
	for _, d := range depts {
		r.depts[d.ID] = d
	}
	return r
}

func (r *fakeDepartmentRepo) Upsert(_ context.Context, d *model.Department) error {
	r.depts[d.ID] = *d
	return nil
}

func (r *fakeDepartmentRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	d, ok := r.depts[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *fakeDepartmentRepo) List(_ context.Context) ([]model.Department, error) {
	out := make([]model.Department, 0, len(r.depts))
	for _, d := range r.depts {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

type fakeQuestionRepo struct {
	questions []model.Question
}

func (r *fakeQuestionRepo) Upsert(_ context.Context, q *model.Question) error {
	r.questions = append(r.questions, *q)
	return nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id string) (*model.Question, error) {
	for _, q := range r.questions {
		if q.ID == id {
			return &q, nil
		}
	}
	return nil, nil
}

func (r *fakeQuestionRepo) ListByDepartments(_ context.Context, ids []string) ([]model.Question, error) {
	want := make(map[string]bool)
	for _, id := range ids {
		want[id] = true
	}
	var out []model.Question
	for _, q := range r.questions {
		if want[q.DepartmentID] {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id string) error {
	return nil
}

type fakeSubmissionRepo struct {
	mu        sync.Mutex
	subs      map[string]*model.Submission
	createErr error
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{subs: make(map[string]*model.Submission)}
}

func (r *fakeSubmissionRepo) Create(_ context.Context, sub *model.Submission) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return "", r.createErr
	}
	sub.ID = uuid.NewString()
	r.subs[sub.ID] = sub
	return sub.ID, nil
}

func (r *fakeSubmissionRepo) GetByID(_ context.Context, id string) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subs[id], nil
}

func (r *fakeSubmissionRepo) List(_ context.Context, f model.SubmissionFilter) ([]*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Submission{}
	for _, s := range r.subs {
		if f.PatientID != "" && s.PatientID != f.PatientID {
			continue
		}
		if f.Overall != "" && s.Category.Overall != f.Overall {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (r *fakeSubmissionRepo) Delete(_ context.Context, id, patientID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[id]
	if !ok || s.PatientID != patientID {
		return false, nil
	}
	delete(r.subs, id)
	return true, nil
}

type fakeStats struct {
	mu       sync.Mutex
	overall  map[model.Overall]int
	byDept   map[string]map[model.Overall]int
	recordFn func() error
}

func newFakeStats() *fakeStats {
	return &fakeStats{
		overall: make(map[model.Overall]int),
		byDept:  make(map[string]map[model.Overall]int),
	}
}

func (f *fakeStats) Record(_ context.Context, overall model.Overall, byDept map[string]model.FeedbackCategory) error {
	if f.recordFn != nil {
		if err := f.recordFn(); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overall[overall]++
	for d, c := range byDept {
		if f.byDept[d] == nil {
			f.byDept[d] = make(map[model.Overall]int)
		}
		f.byDept[d][c.Overall]++
	}
	return nil
}

func (f *fakeStats) Get(_ context.Context, dept string) (*model.DepartmentStats, error) {
	return &model.DepartmentStats{DepartmentID: dept}, nil
}

func (f *fakeStats) All(_ context.Context) ([]model.DepartmentStats, error) {
	return nil, nil
}

func (f *fakeStats) Attention(_ context.Context, limit int) ([]cache.AttentionEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []cache.AttentionEntry
	for d, counts := range f.byDept {
		if n := counts[model.OverallNegative]; n > 0 {
			out = append(out, cache.AttentionEntry{DepartmentID: d, Negative: int64(n)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Negative > out[j].Negative })
	for i := range out {
		out[i].Rank = i + 1
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeOTP struct {
	codes map[string]string
	err   error
}

func newFakeOTP() *fakeOTP {
	return &fakeOTP{codes: make(map[string]string)}
}

func (f *fakeOTP) Set(_ context.Context, phone, code string, _ time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.codes[phone] = code
	return nil
}

func (f *fakeOTP) Consume(_ context.Context, phone, code string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	stored, ok := f.codes[phone]
	if !ok || stored != code {
		return false, nil
	}
	delete(f.codes, phone)
	return true, nil
}

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []string
}

func (b *recordingBroadcaster) BroadcastToStaff(msgType string, _ interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, msgType)
}

var errBoom = errors.New("boom")

type fakeDrafts struct {
	mu     sync.Mutex
	drafts map[string]*model.Submission
	err    error
}

func newFakeDrafts() *fakeDrafts {
	return &fakeDrafts{drafts: make(map[string]*model.Submission)}
}

func (f *fakeDrafts) Set(_ context.Context, d *model.Submission, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.drafts[d.PatientID] = d
	return nil
}

func (f *fakeDrafts) Get(_ context.Context, patientID string) (*model.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.drafts[patientID], f.err
}

func (f *fakeDrafts) Delete(_ context.Context, patientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.drafts, patientID)
	return f.err
}
