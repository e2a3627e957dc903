package verdict

import "gitlab.com/codejudge.net/internal/domain"

// IClassifier reduces a raw sandbox response to a verdict
type IClassifier interface {
	// Classify builds the result for a run over total test cases
	Classify(runtime domain.Runtime, resp *domain.SandboxResponse, total int) *domain.ExecutionResult
}
