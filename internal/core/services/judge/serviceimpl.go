package judge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/core/services/execution"
	"gitlab.com/codejudge.net/internal/core/services/language"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

var _ IJudgeService = (*JudgeService)(nil)

// JudgeService implements IJudgeService. cache and repo are optional.
type JudgeService struct {
	engine      execution.IEngine
	registry    language.IRegistry
	cache       secondary.ResultCache
	repo        secondary.ResultRepository
	concurrency int
	logger      primary.Logger
	now         func() time.Time
}

// NewJudgeService creates a new judge service
func NewJudgeService(
	engine execution.IEngine,
	registry language.IRegistry,
	cache secondary.ResultCache,
	repo secondary.ResultRepository,
	concurrency int,
	logger primary.Logger,
) *JudgeService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &JudgeService{
		engine:      engine,
		registry:    registry,
		cache:       cache,
		repo:        repo,
		concurrency: concurrency,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *JudgeService) Submit(ctx context.Context, submission *domain.Submission) (*domain.SubmissionResult, error) {
	if err := validate(submission); err != nil {
		return nil, err
	}
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}

	s.logger.Info("Judging submission",
		"submissionId", submission.ID,
		"problemId", submission.ProblemID,
		"language", submission.Language,
		"tests", len(submission.TestCases),
	)

	runtime, err := s.registry.Lookup(submission.Language)
	if err != nil {
		return nil, err
	}
	fingerprint, err := Fingerprint(runtime, submission)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint submission: %w", err)
	}

	result, cached := s.lookupCache(ctx, fingerprint)
	if result == nil {
		result, err = s.engine.ExecuteWithPolicy(ctx,
			submission.Language, submission.Code, submission.Signature, submission.TestCases, submission.Policy)
		if err != nil {
			s.logger.Error("Failed to judge submission", "submissionId", submission.ID, "error", err)
			return nil, fmt.Errorf("failed to judge submission: %w", err)
		}
		s.storeCache(ctx, fingerprint, result)
	}

	out := &domain.SubmissionResult{
		SubmissionID: submission.ID,
		ProblemID:    submission.ProblemID,
		Language:     submission.Language,
		Result:       *result,
		Cached:       cached,
		JudgedAt:     s.now().UTC(),
	}

	if s.repo != nil {
		if err := s.repo.SaveResult(ctx, out); err != nil {
			s.logger.Warn("Failed to persist result", "submissionId", submission.ID, "error", err)
		}
	}

	s.logger.Info("Submission judged",
		"submissionId", submission.ID,
		"status", result.Status,
		"passed", result.PassedCount,
		"total", result.TotalCount,
		"cached", cached,
	)
	return out, nil
}

func (s *JudgeService) SubmitBatch(ctx context.Context, submissions []*domain.Submission) ([]*domain.SubmissionResult, error) {
	results := make([]*domain.SubmissionResult, len(submissions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, submission := range submissions {
		i, submission := i, submission
		g.Go(func() error {
			result, err := s.Submit(gctx, submission)
			if err != nil {
				return fmt.Errorf("submission %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *JudgeService) GetResult(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionResult, error) {
	if s.repo == nil {
		return nil, errs.ErrResultNotFound
	}
	result, err := s.repo.GetResult(ctx, submissionID)
	if err != nil {
		if !errors.Is(err, errs.ErrResultNotFound) {
			s.logger.Error("Failed to get result", "submissionId", submissionID, "error", err)
		}
		return nil, err
	}
	return result, nil
}

func (s *JudgeService) Run(ctx context.Context, submission *domain.Submission) (*domain.ExecutionResult, error) {
	if err := validate(submission); err != nil {
		return nil, err
	}
	return s.engine.ExecuteWithPolicy(ctx,
		submission.Language, submission.Code, submission.Signature, submission.TestCases, submission.Policy)
}

func (s *JudgeService) lookupCache(ctx context.Context, fingerprint string) (*domain.ExecutionResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	result, ok, err := s.cache.Get(ctx, fingerprint)
	if err != nil {
		s.logger.Warn("Result cache unavailable", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	s.logger.Debug("Result cache hit", "fingerprint", fingerprint)
	return result, true
}

// storeCache skips time limit verdicts since they depend on sandbox load
func (s *JudgeService) storeCache(ctx context.Context, fingerprint string, result *domain.ExecutionResult) {
	if s.cache == nil || result.Status == domain.StatusTimeLimitExceeded {
		return
	}
	if err := s.cache.Set(ctx, fingerprint, result); err != nil {
		s.logger.Warn("Failed to cache result", "error", err)
	}
}

func validate(submission *domain.Submission) error {
	if submission == nil {
		return fmt.Errorf("%w: submission is missing", errs.ErrInvalidSignature)
	}
	if len(submission.TestCases) == 0 {
		return errs.ErrNoTestCases
	}
	return submission.Signature.Validate()
}
