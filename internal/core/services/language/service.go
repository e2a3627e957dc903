package language

import (
	"context"

	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
)

// IRegistry resolves language keys to remote runtimes
type IRegistry interface {
	// Lookup resolves a case-insensitive key or alias
	Lookup(key string) (domain.Runtime, error)

	// Languages lists canonical keys in sorted order
	Languages() []string

	// Runtimes lists every registered runtime in key order
	Runtimes() []domain.Runtime

	// Verify reports registered runtimes the execution service does not advertise
	Verify(ctx context.Context, lister secondary.RuntimeLister) ([]string, error)
}
