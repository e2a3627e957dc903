package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codejudge.net/internal/domain"
)

// ResultRepository defines the interface for storing and retrieving submission verdicts
type ResultRepository interface {
	// SaveResult saves a submission verdict
	SaveResult(ctx context.Context, result *domain.SubmissionResult) error

	// GetResult retrieves a verdict by submission ID
	GetResult(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionResult, error)
}

// ResultCache keeps verdicts of identical executions keyed by fingerprint
type ResultCache interface {
	Get(ctx context.Context, fingerprint string) (*domain.ExecutionResult, bool, error)
	Set(ctx context.Context, fingerprint string, result *domain.ExecutionResult) error
}
