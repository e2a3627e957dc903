// Package piston talks to a Piston-compatible remote execution API
package piston

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
)

const (
	executePath  = "/api/v2/execute"
	runtimesPath = "/api/v2/runtimes"
	// error bodies are only read for their message
	maxErrorBody = 64 << 10
)

var (
	_ secondary.CodeExecutor  = (*Executor)(nil)
	_ secondary.RuntimeLister = (*Executor)(nil)
)

// Executor implements CodeExecutor over HTTP. Each call is a single attempt;
// deadlines come from the caller's context.
type Executor struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  primary.Logger
}

// NewExecutor creates a client for the configured service
func NewExecutor(cfg *config.ExecutorConfig, logger primary.Logger) *Executor {
	return NewExecutorWithClient(cfg.PistonURL, cfg.APIKey, &http.Client{}, logger)
}

// NewExecutorWithClient creates a client with a custom HTTP client
func NewExecutorWithClient(baseURL, apiKey string, client *http.Client, logger primary.Logger) *Executor {
	return &Executor{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		logger:  logger,
	}
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("execution service returned status %d: %s", e.StatusCode, e.Message)
}

// Execute posts one program to the execute endpoint
func (e *Executor) Execute(ctx context.Context, req *domain.SandboxRequest) (*domain.SandboxResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal execute request: %w", err)
	}

	var resp domain.SandboxResponse
	if err := e.do(ctx, http.MethodPost, executePath, body, &resp); err != nil {
		return nil, err
	}

	e.logger.Debug("Execution service responded",
		"language", resp.Language,
		"version", resp.Version,
		"compiled", resp.Compile != nil,
	)
	return &resp, nil
}

// Runtimes lists installed runtimes
func (e *Executor) Runtimes(ctx context.Context) ([]domain.RuntimeInfo, error) {
	var runtimes []domain.RuntimeInfo
	if err := e.do(ctx, http.MethodGet, runtimesPath, nil, &runtimes); err != nil {
		return nil, err
	}
	return runtimes, nil
}

func (e *Executor) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, e.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if e.apiKey != "" {
		httpReq.Header.Set("Authorization", e.apiKey)
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("execution service request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode execution service response: %w", err)
	}
	return nil
}

func readMessage(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(bytes.TrimSpace(data))
}
