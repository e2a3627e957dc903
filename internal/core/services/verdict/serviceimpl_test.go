package verdict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/domain"
)

var (
	pythonRuntime = domain.Runtime{Key: "python", Interpreted: true, SyntaxErrorMarkers: []string{"SyntaxError", "IndentationError"}}
	cppRuntime    = domain.Runtime{Key: "cpp"}
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func ok(stdout string) *domain.StageResult {
	return &domain.StageResult{Stdout: stdout, Code: intPtr(0)}
}

func classify(runtime domain.Runtime, resp *domain.SandboxResponse, total int) *domain.ExecutionResult {
	return NewClassifier(logging.NewNopLogger()).Classify(runtime, resp, total)
}

func TestClassify_Accepted(t *testing.T) {
	res := classify(pythonRuntime, &domain.SandboxResponse{
		Run: ok("TEST|0|PASS|1|1|1\nTEST|1|PASS|2|2|2\n"),
	}, 2)

	assert.Equal(t, domain.StatusAccepted, res.Status)
	assert.Equal(t, 2, res.PassedCount)
	assert.Equal(t, 2, res.TotalCount)
	assert.Nil(t, res.FailedTestIndex)
	assert.Len(t, res.TestResults, 2)
	assert.True(t, res.IsAccepted())
}

func TestClassify_WrongAnswer(t *testing.T) {
	res := classify(pythonRuntime, &domain.SandboxResponse{
		Run: ok("TEST|0|PASS|\"aba\"|true|true\nTEST|1|FAIL|\"ab\"|false|true\nFAIL|1|false|true\n"),
	}, 3)

	assert.Equal(t, domain.StatusWrongAnswer, res.Status)
	assert.Equal(t, 1, res.PassedCount)
	assert.Equal(t, 3, res.TotalCount)
	require.NotNil(t, res.FailedTestIndex)
	assert.Equal(t, 1, *res.FailedTestIndex)
	assert.Equal(t, "false", res.ExpectedOutput)
	assert.Equal(t, "true", res.ActualOutput)
	for _, tr := range res.TestResults {
		assert.LessOrEqual(t, tr.Index, 1)
	}
}

func TestClassify_RunAllReportsFirstFailure(t *testing.T) {
	res := classify(pythonRuntime, &domain.SandboxResponse{
		Run: ok("TEST|0|FAIL|1|1|2\nTEST|1|PASS|2|2|2\nTEST|2|FAIL|3|3|4\nFAIL|0|1|2\n"),
	}, 3)

	assert.Equal(t, domain.StatusWrongAnswer, res.Status)
	assert.Equal(t, 1, res.PassedCount)
	assert.Equal(t, 0, *res.FailedTestIndex)
	assert.Len(t, res.TestResults, 3)
}

func TestClassify_CompilationError(t *testing.T) {
	res := classify(cppRuntime, &domain.SandboxResponse{
		Compile: &domain.StageResult{Stderr: "solution.cpp:3: error: expected ';'\n", Code: intPtr(1)},
		Run:     ok(""),
	}, 2)

	assert.Equal(t, domain.StatusCompilationError, res.Status)
	assert.Equal(t, 0, res.PassedCount)
	assert.Equal(t, 2, res.TotalCount)
	assert.Equal(t, "solution.cpp:3: error: expected ';'", res.ErrorMessage)
}

func TestClassify_CompilationKilled(t *testing.T) {
	res := classify(cppRuntime, &domain.SandboxResponse{
		Compile: &domain.StageResult{Signal: strPtr("SIGKILL")},
	}, 1)

	assert.Equal(t, domain.StatusCompilationError, res.Status)
	assert.Contains(t, res.ErrorMessage, "SIGKILL")
}

func TestClassify_InterpretedSyntaxError(t *testing.T) {
	res := classify(pythonRuntime, &domain.SandboxResponse{
		Run: &domain.StageResult{
			Stderr: "  File \"solution.py\", line 2\n    return [\n           ^\nSyntaxError: '[' was never closed",
			Code:   intPtr(1),
		},
	}, 2)

	assert.Equal(t, domain.StatusCompilationError, res.Status)
	assert.Contains(t, res.ErrorMessage, "SyntaxError")
}

func TestClassify_RuntimeError(t *testing.T) {
	res := classify(pythonRuntime, &domain.SandboxResponse{
		Run: &domain.StageResult{
			Stdout: "TEST|0|PASS|1|1|1\n",
			Stderr: "Traceback (most recent call last):\nZeroDivisionError: division by zero",
			Code:   intPtr(1),
		},
	}, 2)

	assert.Equal(t, domain.StatusRuntimeError, res.Status)
	assert.Equal(t, 0, res.PassedCount)
	assert.Contains(t, res.ErrorMessage, "ZeroDivisionError")
}

func TestClassify_SyntaxMarkerAfterRecordsIsRuntimeError(t *testing.T) {
	res := classify(pythonRuntime, &domain.SandboxResponse{
		Run: &domain.StageResult{
			Stdout: "TEST|0|PASS|1|1|1\n",
			Stderr: "SyntaxError: raised by eval",
			Code:   intPtr(1),
		},
	}, 2)

	assert.Equal(t, domain.StatusRuntimeError, res.Status)
}

func TestClassify_StderrOnCleanExitIsRuntimeError(t *testing.T) {
	res := classify(cppRuntime, &domain.SandboxResponse{
		Compile: ok(""),
		Run: &domain.StageResult{
			Stdout: "TEST|0|PASS|1|1|1\n",
			Stderr: "debug output",
			Code:   intPtr(0),
		},
	}, 1)

	assert.Equal(t, domain.StatusRuntimeError, res.Status)
	assert.Equal(t, 0, res.PassedCount)
	assert.Equal(t, "debug output", res.ErrorMessage)
}

func TestClassify_TimeLimit(t *testing.T) {
	res := classify(pythonRuntime, &domain.SandboxResponse{
		Run: &domain.StageResult{Stdout: "TEST|0|PASS|1|1|1\n", Status: StatusTimeout, Signal: strPtr("SIGKILL")},
	}, 2)
	assert.Equal(t, domain.StatusTimeLimitExceeded, res.Status)
	assert.Equal(t, 0, res.PassedCount)

	res = classify(cppRuntime, &domain.SandboxResponse{
		Run: &domain.StageResult{Signal: strPtr("SIGKILL")},
	}, 2)
	assert.Equal(t, domain.StatusTimeLimitExceeded, res.Status)
}

func TestClassify_IncompleteOutput(t *testing.T) {
	res := classify(cppRuntime, &domain.SandboxResponse{
		Run: &domain.StageResult{Stdout: "TEST|0|PASS|1|1|1\n", Signal: strPtr("SIGSEGV")},
	}, 3)
	assert.Equal(t, domain.StatusRuntimeError, res.Status)
	assert.Equal(t, 1, res.PassedCount)
	assert.Contains(t, res.ErrorMessage, "SIGSEGV")

	res = classify(cppRuntime, &domain.SandboxResponse{Run: ok("")}, 2)
	assert.Equal(t, domain.StatusRuntimeError, res.Status)
	assert.Equal(t, "program exited with code 0 before reporting all tests", res.ErrorMessage)
}

func TestClassify_NilResponse(t *testing.T) {
	res := classify(cppRuntime, nil, 1)
	assert.Equal(t, domain.StatusRuntimeError, res.Status)
}

func TestClassify_TotalFallsBackToRecords(t *testing.T) {
	res := classify(cppRuntime, &domain.SandboxResponse{Run: ok("TEST|0|PASS|1|1|1\n")}, 0)
	assert.Equal(t, domain.StatusAccepted, res.Status)
	assert.Equal(t, 1, res.TotalCount)
}

func TestClassify_DuplicateRecordsNeverExceedTotal(t *testing.T) {
	res := classify(pythonRuntime, &domain.SandboxResponse{
		Run: ok("TEST|0|PASS|a|b|b\nTEST|0|PASS|a|b|b\nTEST|1|PASS|a|b|b\nTEST|7|PASS|a|b|b\n"),
	}, 2)

	assert.Equal(t, domain.StatusAccepted, res.Status)
	assert.Equal(t, 2, res.PassedCount)
	assert.Equal(t, 2, res.TotalCount)
}

func TestClassify_DebugRecordLineDoesNotInflateCount(t *testing.T) {
	res := classify(pythonRuntime, &domain.SandboxResponse{
		Run: ok("TEST|5|PASS|debug|x|x\nTEST|0|PASS|a|b|b\nTEST|1|FAIL|a|b|c\nFAIL|1|b|c\n"),
	}, 3)

	assert.Equal(t, domain.StatusWrongAnswer, res.Status)
	assert.Equal(t, 1, res.PassedCount)
	assert.LessOrEqual(t, res.PassedCount, res.TotalCount)
}
