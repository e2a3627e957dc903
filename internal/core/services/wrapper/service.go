package wrapper

import "gitlab.com/codejudge.net/internal/domain"

// IGenerator synthesizes a runnable program embedding the test driver
type IGenerator interface {
	// Generate builds the full source for the runtime's language
	Generate(runtime domain.Runtime, userCode string, signature *domain.FunctionSignature, tests []domain.TestCase, policy domain.FailurePolicy) (string, error)
}
