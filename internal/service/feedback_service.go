package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"medfeedback/internal/cache"
	"medfeedback/internal/categorizer"
	"medfeedback/internal/model"
	"medfeedback/internal/repository"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrDraftNotFound      = errors.New("draft not found")
)

const defaultDraftTTL = 7 * 24 * time.Hour

// SubmitRequest is a patient's completed questionnaire
type SubmitRequest struct {
	Departments []string      `json:"departments"`
	Answers     model.Answers `json:"answers"`
	Comment     string        `json:"comment,omitempty"`
	CommentType string        `json:"commentType,omitempty"`
	Gender      string        `json:"gender,omitempty"`
	Priorities  []string      `json:"priorities,omitempty"`
}

// SubmitResult is returned after a submission is stored
type SubmitResult struct {
	Submission      *model.Submission `json:"submission"`
	MissingRequired []string          `json:"missingRequired,omitempty"`
}

// PreviewRequest runs the categorizer over caller-supplied questions
type PreviewRequest struct {
	Questions   []model.Question `json:"questions"`
	Answers     model.Answers    `json:"answers"`
	Comment     string           `json:"comment,omitempty"`
	CommentType string           `json:"commentType,omitempty"`
}

// PreviewResult is a verdict without persistence
type PreviewResult struct {
	Category     model.FeedbackCategory            `json:"category"`
	ByDepartment map[string]model.FeedbackCategory `json:"byDepartment,omitempty"`
	Summary      string                            `json:"summary"`
}

// FeedbackService categorizes, stores and reviews submissions
type FeedbackService struct {
	questions   *QuestionService
	submissions repository.SubmissionRepo
	stats       cache.StatsCache
	drafts      cache.DraftCache
	draftTTL    time.Duration
	engine      *categorizer.Engine
	logger      *zap.Logger
	broadcaster Broadcaster
	now         func() time.Time
}

// NewFeedbackService creates a new feedback service. A nil engine uses the default policy.
func NewFeedbackService(
	questions *QuestionService,
	submissions repository.SubmissionRepo,
	stats cache.StatsCache,
	drafts cache.DraftCache,
	engine *categorizer.Engine,
	logger *zap.Logger,
) *FeedbackService {
	if engine == nil {
		engine = categorizer.Default()
	}
	return &FeedbackService{
		questions:   questions,
		submissions: submissions,
		stats:       stats,
		drafts:      drafts,
		draftTTL:    defaultDraftTTL,
		engine:      engine,
		logger:      logger,
		now:         time.Now,
	}
}

// SetBroadcaster sets the broadcaster for staff notifications
func (s *FeedbackService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetDraftTTL sets how long unfinished questionnaires are kept
func (s *FeedbackService) SetDraftTTL(ttl time.Duration) {
	if ttl > 0 {
		s.draftTTL = ttl
	}
}

// Preview categorizes without touching storage
func (s *FeedbackService) Preview(req *PreviewRequest) *PreviewResult {
	cat := s.engine.Categorize(req.Questions, req.Answers, req.Comment, req.CommentType)
	return &PreviewResult{
		Category:     cat,
		ByDepartment: s.engine.CategorizeByUnit(req.Questions, req.Answers),
		Summary:      categorizer.Summarize(cat),
	}
}

// Submit categorizes and stores a patient's submission. Counters and the
// staff broadcast are best effort and never fail the submission.
func (s *FeedbackService) Submit(ctx context.Context, patientID string, req *SubmitRequest) (*SubmitResult, error) {
	sub, missing, err := s.build(ctx, patientID, req, model.StatusSubmitted)
	if err != nil {
		return nil, err
	}

	if _, err := s.submissions.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("store submission: %w", err)
	}

	s.logger.Info("feedback categorized",
		zap.String("submissionId", sub.ID),
		zap.Strings("departments", sub.Departments),
		zap.String("overall", string(sub.Category.Overall)),
		zap.Float64("confidence", sub.Category.Confidence),
		zap.Int("missingRequired", len(missing)),
	)

	if err := s.drafts.Delete(ctx, patientID); err != nil {
		s.logger.Warn("discard draft failed", zap.Error(err))
	}
	s.publish(ctx, sub)

	return &SubmitResult{Submission: sub, MissingRequired: missing}, nil
}

// SaveDraft keeps an unfinished questionnaire, replacing any earlier draft.
// The draft carries a provisional verdict.
func (s *FeedbackService) SaveDraft(ctx context.Context, patientID string, req *SubmitRequest) (*SubmitResult, error) {
	draft, missing, err := s.build(ctx, patientID, req, model.StatusDraft)
	if err != nil {
		return nil, err
	}
	if err := s.drafts.Set(ctx, draft, s.draftTTL); err != nil {
		return nil, fmt.Errorf("store draft: %w", err)
	}
	return &SubmitResult{Submission: draft, MissingRequired: missing}, nil
}

// Draft returns the patient's unfinished questionnaire
func (s *FeedbackService) Draft(ctx context.Context, patientID string) (*model.Submission, error) {
	draft, err := s.drafts.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

// DiscardDraft drops the patient's unfinished questionnaire
func (s *FeedbackService) DiscardDraft(ctx context.Context, patientID string) error {
	return s.drafts.Delete(ctx, patientID)
}

// build keeps the answers that belong to the selected departments'
// questions and categorizes them.
func (s *FeedbackService) build(ctx context.Context, patientID string, req *SubmitRequest, status model.SubmissionStatus) (*model.Submission, []string, error) {
	departments, questions, err := s.questions.QuestionsFor(ctx, req.Departments)
	if err != nil {
		return nil, nil, err
	}

	answers := make(model.Answers, len(questions))
	var missing []string
	for _, q := range questions {
		a, ok := req.Answers[q.ID]
		if ok && !a.IsEmpty() {
			answers[q.ID] = a
		} else if q.Required {
			missing = append(missing, q.ID)
		}
	}

	comment := strings.TrimSpace(req.Comment)
	commentType := strings.ToLower(strings.TrimSpace(req.CommentType))
	cat := s.engine.Categorize(questions, answers, comment, commentType)

	return &model.Submission{
		PatientID:    patientID,
		Departments:  departments,
		Answers:      answers,
		Comment:      comment,
		CommentType:  commentType,
		Gender:       req.Gender,
		Priorities:   req.Priorities,
		Status:       status,
		Category:     cat,
		ByDepartment: s.engine.CategorizeByUnit(questions, answers),
		Summary:      categorizer.Summarize(cat),
		SubmittedAt:  s.now(),
	}, missing, nil
}

func (s *FeedbackService) publish(ctx context.Context, sub *model.Submission) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.stats.Record(gctx, sub.Category.Overall, sub.ByDepartment); err != nil {
			return fmt.Errorf("record stats: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if s.broadcaster != nil {
			s.broadcaster.BroadcastToStaff(MsgFeedbackCategorized, sub)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("post-submit fan-out failed", zap.String("submissionId", sub.ID), zap.Error(err))
	}
}

// History lists a patient's own submissions, newest first
func (s *FeedbackService) History(ctx context.Context, patientID string, limit int) ([]*model.Submission, error) {
	return s.submissions.List(ctx, model.SubmissionFilter{PatientID: patientID, Limit: limit})
}

// Get returns one submission. A non-empty patientID restricts access to
// that patient's own submissions.
func (s *FeedbackService) Get(ctx context.Context, id, patientID string) (*model.Submission, error) {
	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil || (patientID != "" && sub.PatientID != patientID) {
		return nil, ErrSubmissionNotFound
	}
	return sub, nil
}

// Delete removes one of the patient's own submissions
func (s *FeedbackService) Delete(ctx context.Context, id, patientID string) error {
	ok, err := s.submissions.Delete(ctx, id, patientID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSubmissionNotFound
	}
	s.logger.Info("feedback deleted", zap.String("submissionId", id))
	return nil
}

// Review lists submissions for staff
func (s *FeedbackService) Review(ctx context.Context, filter model.SubmissionFilter) ([]*model.Submission, error) {
	return s.submissions.List(ctx, filter)
}

// Attention ranks departments by negative verdicts
func (s *FeedbackService) Attention(ctx context.Context, limit int) ([]cache.AttentionEntry, error) {
	return s.stats.Attention(ctx, limit)
}

// Stats returns verdict counts per department
func (s *FeedbackService) Stats(ctx context.Context) ([]model.DepartmentStats, error) {
	return s.stats.All(ctx)
}
