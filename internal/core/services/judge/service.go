package judge

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codejudge.net/internal/domain"
)

// IJudgeService manages the submission lifecycle around the execution engine
type IJudgeService interface {
	// Submit judges a submission, reusing cached verdicts of identical executions
	Submit(ctx context.Context, submission *domain.Submission) (*domain.SubmissionResult, error)

	// SubmitBatch judges submissions concurrently; results keep input order
	SubmitBatch(ctx context.Context, submissions []*domain.Submission) ([]*domain.SubmissionResult, error)

	// GetResult retrieves a stored verdict
	GetResult(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionResult, error)

	// Run executes code without caching or persistence
	Run(ctx context.Context, submission *domain.Submission) (*domain.ExecutionResult, error)
}
