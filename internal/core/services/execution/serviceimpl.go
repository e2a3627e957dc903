package execution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/core/services/language"
	"gitlab.com/codejudge.net/internal/core/services/verdict"
	"gitlab.com/codejudge.net/internal/core/services/wrapper"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

var _ IEngine = (*Engine)(nil)

// Engine runs the generate, execute and classify pipeline. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	registry   language.IRegistry
	generator  wrapper.IGenerator
	executor   secondary.CodeExecutor
	classifier verdict.IClassifier
	cfg        config.ExecutorConfig
	logger     primary.Logger
}

func NewEngine(
	registry language.IRegistry,
	generator wrapper.IGenerator,
	executor secondary.CodeExecutor,
	classifier verdict.IClassifier,
	cfg *config.ExecutorConfig,
	logger primary.Logger,
) *Engine {
	c := *cfg
	c.ClientTimeout = c.EffectiveClientTimeout()
	return &Engine{
		registry:   registry,
		generator:  generator,
		executor:   executor,
		classifier: classifier,
		cfg:        c,
		logger:     logger,
	}
}

func (e *Engine) Execute(
	ctx context.Context,
	lang, userCode string,
	signature *domain.FunctionSignature,
	testCases []domain.TestCase,
) (*domain.ExecutionResult, error) {
	return e.ExecuteWithPolicy(ctx, lang, userCode, signature, testCases, e.cfg.FailurePolicy)
}

func (e *Engine) ExecuteWithPolicy(
	ctx context.Context,
	lang, userCode string,
	signature *domain.FunctionSignature,
	testCases []domain.TestCase,
	policy domain.FailurePolicy,
) (*domain.ExecutionResult, error) {
	runtime, err := e.registry.Lookup(lang)
	if err != nil {
		return nil, err
	}
	if len(testCases) == 0 {
		return nil, errs.ErrNoTestCases
	}
	if policy == "" {
		policy = e.cfg.FailurePolicy
	}

	source, err := e.generator.Generate(runtime, userCode, signature, testCases, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to generate driver: %w", err)
	}

	req := &domain.SandboxRequest{
		Language:           runtime.RuntimeID,
		Version:            runtime.Version,
		Files:              []domain.SandboxFile{{Name: runtime.SourceFile, Content: source}},
		CompileTimeout:     int(e.cfg.CompileTimeout / time.Millisecond),
		RunTimeout:         int(e.cfg.RunTimeout / time.Millisecond),
		CompileMemoryLimit: e.cfg.CompileMemoryLimit,
		RunMemoryLimit:     e.cfg.RunMemoryLimit,
	}

	e.logger.Debug("Executing submission", "language", runtime.Key, "version", runtime.Version, "tests", len(testCases))

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.ClientTimeout)
	defer cancel()

	started := time.Now()
	resp, err := e.executor.Execute(callCtx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("execution cancelled: %w", ctxErr)
		}
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			e.logger.Warn("Execution deadline exceeded", "language", runtime.Key, "deadline", e.cfg.ClientTimeout)
			return domain.NewErrorResult(domain.StatusTimeLimitExceeded, len(testCases), "time limit exceeded"), nil
		}
		e.logger.Error("Failed to execute code", "language", runtime.Key, "error", err)
		return nil, fmt.Errorf("%w: %w", errs.ErrSandboxUnavailable, err)
	}

	result := e.classifier.Classify(runtime, resp, len(testCases))
	e.logger.Info("Execution finished",
		"language", runtime.Key,
		"status", result.Status,
		"passed", result.PassedCount,
		"total", result.TotalCount,
		"elapsed", time.Since(started),
	)
	return result, nil
}
