package secondary

import (
	"context"

	"gitlab.com/codejudge.net/internal/domain"
)

type CodeExecutor interface {
	// Execute runs one program on the remote execution service
	Execute(ctx context.Context, req *domain.SandboxRequest) (*domain.SandboxResponse, error)
}

// RuntimeLister reports the runtimes installed on the execution service
type RuntimeLister interface {
	Runtimes(ctx context.Context) ([]domain.RuntimeInfo, error)
}
