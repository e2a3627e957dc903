package execution

import (
	"context"

	"gitlab.com/codejudge.net/internal/domain"
)

// IEngine judges user code against test cases on the remote sandbox
type IEngine interface {
	// Execute judges with the configured failure policy
	Execute(ctx context.Context, lang, userCode string, signature *domain.FunctionSignature, testCases []domain.TestCase) (*domain.ExecutionResult, error)

	// ExecuteWithPolicy judges with an explicit failure policy
	ExecuteWithPolicy(ctx context.Context, lang, userCode string, signature *domain.FunctionSignature, testCases []domain.TestCase, policy domain.FailurePolicy) (*domain.ExecutionResult, error)
}
