package domain

// SandboxFile is one source file sent to the execution service
type SandboxFile struct {
	Name    string `json:"name,omitempty"`
	Content string `json:"content"`
}

// SandboxRequest is the execute payload of the remote execution service
type SandboxRequest struct {
	Language           string        `json:"language"`
	Version            string        `json:"version"`
	Files              []SandboxFile `json:"files"`
	Stdin              string        `json:"stdin"`
	CompileTimeout     int           `json:"compile_timeout"`
	RunTimeout         int           `json:"run_timeout"`
	CompileMemoryLimit int64         `json:"compile_memory_limit"`
	RunMemoryLimit     int64         `json:"run_memory_limit"`
}

// StageResult is the outcome of the compile or run stage
type StageResult struct {
	Stdout string  `json:"stdout"`
	Stderr string  `json:"stderr"`
	Output string  `json:"output"`
	Code   *int    `json:"code"`
	Signal *string `json:"signal"`
	Status string  `json:"status,omitempty"`
}

// ExitCode returns the stage exit code, zero when the service omitted it
func (s *StageResult) ExitCode() int {
	if s == nil || s.Code == nil {
		return 0
	}
	return *s.Code
}

// SignalName returns the terminating signal, empty when none
func (s *StageResult) SignalName() string {
	if s == nil || s.Signal == nil {
		return ""
	}
	return *s.Signal
}

// SandboxResponse is the raw response of the remote execution service.
// Compile is nil for interpreted languages.
type SandboxResponse struct {
	Language string       `json:"language"`
	Version  string       `json:"version"`
	Compile  *StageResult `json:"compile,omitempty"`
	Run      *StageResult `json:"run,omitempty"`
	Message  string       `json:"message,omitempty"`
}
