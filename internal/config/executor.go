package config

import (
	"os"
	"strings"
	"time"

	"gitlab.com/codejudge.net/internal/domain"
)

const (
	DefaultPistonURL      = "http://localhost:2000"
	DefaultCompileTimeout = 10 * time.Second
	DefaultRunTimeout     = 3 * time.Second
	// -1 leaves the limit to the execution service
	DefaultMemoryLimit int64 = -1
)

var versionedLanguages = []string{"python", "javascript", "java", "cpp", "go"}

type ExecutorConfig struct {
	PistonURL          string
	APIKey             string
	CompileTimeout     time.Duration
	RunTimeout         time.Duration
	CompileMemoryLimit int64
	RunMemoryLimit     int64
	ClientTimeout      time.Duration
	FailurePolicy      domain.FailurePolicy
	LanguageVersions   map[string]string
}

func NewExecutorConfig() *ExecutorConfig {
	policy, err := domain.ParseFailurePolicy(os.Getenv("FAILURE_POLICY"))
	if err != nil {
		policy = domain.StopAtFirstFailure
	}

	versions := make(map[string]string)
	for _, lang := range versionedLanguages {
		if v := os.Getenv(strings.ToUpper(lang) + "_VERSION"); v != "" {
			versions[lang] = v
		}
	}

	cfg := &ExecutorConfig{
		PistonURL:          strings.TrimRight(getEnv("PISTON_URL", DefaultPistonURL), "/"),
		APIKey:             os.Getenv("PISTON_API_KEY"),
		CompileTimeout:     getMillisEnv("COMPILE_TIMEOUT_MS", DefaultCompileTimeout),
		RunTimeout:         getMillisEnv("RUN_TIMEOUT_MS", DefaultRunTimeout),
		CompileMemoryLimit: getInt64Env("COMPILE_MEMORY_LIMIT", DefaultMemoryLimit),
		RunMemoryLimit:     getInt64Env("RUN_MEMORY_LIMIT", DefaultMemoryLimit),
		ClientTimeout:      getMillisEnv("CLIENT_TIMEOUT_MS", 0),
		FailurePolicy:      policy,
		LanguageVersions:   versions,
	}
	cfg.ClientTimeout = cfg.EffectiveClientTimeout()
	return cfg
}

// EffectiveClientTimeout returns the HTTP deadline for one execution. It is
// always longer than both sandbox stages combined.
func (c *ExecutorConfig) EffectiveClientTimeout() time.Duration {
	floor := c.CompileTimeout + c.RunTimeout
	if c.ClientTimeout > floor {
		return c.ClientTimeout
	}
	return floor + time.Second
}
