package submissions

import (
	"fmt"

	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

// SubmitRequest represents a request to judge code against test cases
type SubmitRequest struct {
	ProblemID string                    `json:"problemId"`
	Language  string                    `json:"language"`
	Code      string                    `json:"code"`
	Signature *domain.FunctionSignature `json:"signature"`
	TestCases []domain.TestCase         `json:"testCases"`
	Policy    string                    `json:"policy,omitempty"`
}

// BatchRequest represents a request to judge several submissions at once
type BatchRequest struct {
	Submissions []SubmitRequest `json:"submissions"`
}

func (r SubmitRequest) toSubmission() (*domain.Submission, error) {
	if r.Signature == nil {
		return nil, fmt.Errorf("%w: signature is required", errs.ErrInvalidSignature)
	}
	policy, err := domain.ParseFailurePolicy(r.Policy)
	if err != nil {
		return nil, err
	}
	submission := domain.NewSubmission(r.ProblemID, r.Language, r.Code, r.Signature, r.TestCases)
	// an empty policy lets the engine apply its configured default
	submission.Policy = ""
	if r.Policy != "" {
		submission.Policy = policy
	}
	return submission, nil
}
