package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FailurePolicy selects whether the driver stops at the first mismatch
type FailurePolicy string

const (
	StopAtFirstFailure FailurePolicy = "stop-at-first-failure"
	RunAll             FailurePolicy = "run-all"
)

// ParseFailurePolicy maps a configuration string to a policy; empty means the default
func ParseFailurePolicy(raw string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(StopAtFirstFailure), "stop", "fail-fast":
		return StopAtFirstFailure, nil
	case string(RunAll), "all":
		return RunAll, nil
	default:
		return "", fmt.Errorf("unknown failure policy %q", raw)
	}
}

// Submission represents a code submission to be executed
type Submission struct {
	ID          uuid.UUID
	ProblemID   string
	Language    string
	Code        string
	Signature   *FunctionSignature
	TestCases   []TestCase
	Policy      FailurePolicy
	SubmittedAt time.Time
}

// NewSubmission creates a new submission
func NewSubmission(problemID, language, code string, signature *FunctionSignature, testCases []TestCase) *Submission {
	return &Submission{
		ID:          uuid.New(),
		ProblemID:   problemID,
		Language:    language,
		Code:        code,
		Signature:   signature,
		TestCases:   testCases,
		Policy:      StopAtFirstFailure,
		SubmittedAt: time.Now(),
	}
}

// SubmissionResult is the persisted verdict of a submission
type SubmissionResult struct {
	SubmissionID uuid.UUID       `json:"submissionId" db:"submission_id"`
	ProblemID    string          `json:"problemId" db:"problem_id"`
	Language     string          `json:"language" db:"language"`
	Result       ExecutionResult `json:"result"`
	Cached       bool            `json:"cached"`
	JudgedAt     time.Time       `json:"judgedAt" db:"judged_at"`
}

// ResultTable names the columns of the persisted verdict table
type ResultTable struct {
	SubmissionID string
	ProblemID    string
	Language     string
	Status       string
	PassedCount  string
	TotalCount   string
	Result       string
	JudgedAt     string
}

func GetResultTable() ResultTable {
	return ResultTable{
		SubmissionID: "submission_id",
		ProblemID:    "problem_id",
		Language:     "language",
		Status:       "status",
		PassedCount:  "passed_count",
		TotalCount:   "total_count",
		Result:       "result",
		JudgedAt:     "judged_at",
	}
}

func (ResultTable) TableName() string {
	return "submission_results"
}

// Columns lists every column in insert order
func (t ResultTable) Columns() []string {
	return []string{
		t.SubmissionID,
		t.ProblemID,
		t.Language,
		t.Status,
		t.PassedCount,
		t.TotalCount,
		t.Result,
		t.JudgedAt,
	}
}
