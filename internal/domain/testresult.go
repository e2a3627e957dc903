package domain

// Status represents the verdict of an execution
type Status string

const (
	StatusAccepted          Status = "ACCEPTED"
	StatusWrongAnswer       Status = "WRONG_ANSWER"
	StatusCompilationError  Status = "COMPILATION_ERROR"
	StatusRuntimeError      Status = "RUNTIME_ERROR"
	StatusTimeLimitExceeded Status = "TIME_LIMIT_EXCEEDED"
)

// TestCaseResult represents one driver record for a single test case
type TestCaseResult struct {
	Index    int    `json:"index"`
	Passed   bool   `json:"passed"`
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// ExecutionResult represents the verdict of code execution against test cases.
// Empty ExpectedOutput, ActualOutput and ErrorMessage mean "not applicable".
type ExecutionResult struct {
	Status          Status           `json:"status"`
	PassedCount     int              `json:"passedCount"`
	TotalCount      int              `json:"totalCount"`
	FailedTestIndex *int             `json:"failedTestIndex"`
	ExpectedOutput  string           `json:"expectedOutput,omitempty"`
	ActualOutput    string           `json:"actualOutput,omitempty"`
	ErrorMessage    string           `json:"errorMessage,omitempty"`
	TestResults     []TestCaseResult `json:"testResults,omitempty"`
}

// NewErrorResult builds a result for verdicts that carry no test records
func NewErrorResult(status Status, total int, message string) *ExecutionResult {
	return &ExecutionResult{
		Status:       status,
		PassedCount:  0,
		TotalCount:   total,
		ErrorMessage: message,
	}
}

// IsAccepted reports whether every test passed
func (r *ExecutionResult) IsAccepted() bool {
	return r != nil && r.Status == StatusAccepted
}
