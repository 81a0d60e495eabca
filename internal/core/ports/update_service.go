package ports

import (
	"context"
	"time"

	"github.com/grandvia/hotel-system/internal/core/domain"
)

// UpdateService triggers and inspects the managed website checkout.
type UpdateService interface {
	// TriggerUpdate runs a fast-forward pull in the approved directory.
	// Single-flight: a concurrent call fails with ErrUpdateInProgress
	// instead of queueing.
	TriggerUpdate(ctx context.Context, performedBy string, client domain.ClientContext) (*domain.UpdateRun, error)

	// Status reports branch, commit, last sync time and working-tree
	// cleanliness without mutating anything.
	Status(ctx context.Context) (*domain.RepoStatus, error)
}

// RepoCommander abstracts the git subprocess. Implementations run exactly one
// fixed command per method, scoped to dir, with no caller-supplied arguments.
type RepoCommander interface {
	RevParse(ctx context.Context, dir, ref string) (string, error)
	CurrentBranch(ctx context.Context, dir string) (string, error)
	PullFastForward(ctx context.Context, dir string) (string, error)
	IsClean(ctx context.Context, dir string) (bool, error)
	LastSync(dir string) (time.Time, error)
}
