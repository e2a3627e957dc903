package verdict

import (
	"fmt"
	"strings"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/domain"
)

// StatusTimeout is the run status the execution service reports when a
// stage hits its time limit
const StatusTimeout = "TO"

const signalKill = "SIGKILL"

var _ IClassifier = (*Classifier)(nil)

type Classifier struct {
	logger primary.Logger
}

func NewClassifier(logger primary.Logger) *Classifier {
	return &Classifier{logger: logger}
}

func (c *Classifier) Classify(runtime domain.Runtime, resp *domain.SandboxResponse, total int) *domain.ExecutionResult {
	if resp == nil {
		resp = &domain.SandboxResponse{}
	}

	if compile := resp.Compile; compile != nil && (compile.ExitCode() != 0 || compile.SignalName() != "") {
		c.logger.Debug("Compilation failed", "language", runtime.Key, "code", compile.ExitCode())
		return domain.NewErrorResult(domain.StatusCompilationError, total, compileMessage(compile))
	}

	run := resp.Run
	if run == nil {
		run = &domain.StageResult{}
	}
	report := ParseOutput(run.Stdout, total)

	if run.Status == StatusTimeout || (run.SignalName() == signalKill && len(report.Tests) == 0) {
		return domain.NewErrorResult(domain.StatusTimeLimitExceeded, total, "time limit exceeded")
	}

	// any stderr discards the partial report
	if stderr := strings.TrimSpace(run.Stderr); stderr != "" {
		if runtime.Interpreted && len(report.Tests) == 0 && hasMarker(stderr, runtime.SyntaxErrorMarkers) {
			return domain.NewErrorResult(domain.StatusCompilationError, total, stderr)
		}
		return domain.NewErrorResult(domain.StatusRuntimeError, total, stderr)
	}

	return c.fromReport(report, run, total)
}

func (c *Classifier) fromReport(report *Report, run *domain.StageResult, total int) *domain.ExecutionResult {
	if total == 0 {
		total = len(report.Tests)
	}

	result := &domain.ExecutionResult{
		PassedCount: report.Passed(),
		TotalCount:  total,
		TestResults: report.Tests,
	}

	switch {
	case report.Failure != nil:
		index := report.Failure.Index
		result.Status = domain.StatusWrongAnswer
		result.FailedTestIndex = &index
		result.ExpectedOutput = report.Failure.Expected
		result.ActualOutput = report.Failure.Actual
	case total > 0 && result.PassedCount == total:
		result.Status = domain.StatusAccepted
	default:
		result.Status = domain.StatusRuntimeError
		result.ErrorMessage = incompleteMessage(run)
	}

	return result
}

func hasMarker(stderr string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(stderr, m) {
			return true
		}
	}
	return false
}

func compileMessage(stage *domain.StageResult) string {
	if s := strings.TrimSpace(stage.Stderr); s != "" {
		return s
	}
	if s := strings.TrimSpace(stage.Output); s != "" {
		return s
	}
	if sig := stage.SignalName(); sig != "" {
		return fmt.Sprintf("compilation was terminated by signal %s", sig)
	}
	return fmt.Sprintf("compilation failed with exit code %d", stage.ExitCode())
}

func incompleteMessage(run *domain.StageResult) string {
	if sig := run.SignalName(); sig != "" {
		return fmt.Sprintf("program was terminated by signal %s before reporting all tests", sig)
	}
	return fmt.Sprintf("program exited with code %d before reporting all tests", run.ExitCode())
}
