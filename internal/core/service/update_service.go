package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/grandvia/hotel-system/internal/api/metrics"
	"github.com/grandvia/hotel-system/internal/core/domain"
	"github.com/grandvia/hotel-system/internal/core/ports"
)

const defaultUpdateTimeout = 60 * time.Second

// UpdateService runs the website-update pull: single-flight, scoped to one
// pre-approved checkout directory, with before/after revision capture.
//
// Security contract: exactly one external command kind (fast-forward pull),
// only inside the approved directory, never with caller-supplied arguments.
type UpdateService struct {
	approvedPath string
	timeout      time.Duration
	git          ports.RepoCommander
	audit        ports.AuditSink
	log          zerolog.Logger

	// busy is the one piece of cross-request shared mutable state in the
	// core. CompareAndSwap acts as a single-slot mutex: excess callers
	// fail fast instead of queueing.
	busy atomic.Bool
}

// NewUpdateService returns an UpdateService bound to the single approved
// checkout path. A non-positive timeout falls back to 60 seconds.
func NewUpdateService(approvedPath string, timeout time.Duration, git ports.RepoCommander, audit ports.AuditSink, log zerolog.Logger) *UpdateService {
	if timeout <= 0 {
		timeout = defaultUpdateTimeout
	}
	return &UpdateService{
		approvedPath: approvedPath,
		timeout:      timeout,
		git:          git,
		audit:        audit,
		log:          log,
	}
}

// TriggerUpdate runs a fast-forward pull in the approved directory. At most
// one update is in flight system-wide; concurrent callers get
// ErrUpdateInProgress immediately.
func (s *UpdateService) TriggerUpdate(ctx context.Context, performedBy string, client domain.ClientContext) (*domain.UpdateRun, error) {
	if !s.busy.CompareAndSwap(false, true) {
		metrics.UpdateRunsTotal.WithLabelValues("busy").Inc()
		return nil, domain.ErrUpdateInProgress
	}
	defer s.busy.Store(false)

	dir, err := s.validateTarget()
	if err != nil {
		metrics.UpdateRunsTotal.WithLabelValues("invalid_target").Inc()
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	run, err := s.pull(runCtx, dir)
	if err != nil {
		s.auditRun(domain.AuditWebsiteUpdateErr, performedBy, client, map[string]string{"error": err.Error()})
		metrics.UpdateRunsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrUpdateFailed, err)
	}

	s.auditRun(domain.AuditWebsiteUpdate, performedBy, client, map[string]string{
		"branch":        run.Branch,
		"commit_before": run.CommitBefore,
		"commit_after":  run.CommitAfter,
		"output":        run.Output,
	})
	metrics.UpdateRunsTotal.WithLabelValues("success").Inc()

	s.log.Info().
		Str("branch", run.Branch).
		Str("commit_before", run.CommitBefore).
		Str("commit_after", run.CommitAfter).
		Msg("website update completed")
	return run, nil
}

func (s *UpdateService) pull(ctx context.Context, dir string) (*domain.UpdateRun, error) {
	before, err := s.git.RevParse(ctx, dir, "HEAD")
	if err != nil {
		return nil, fmt.Errorf("capture revision before pull: %w", err)
	}

	out, err := s.git.PullFastForward(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("fast-forward pull: %w", err)
	}

	after, err := s.git.RevParse(ctx, dir, "HEAD")
	if err != nil {
		return nil, fmt.Errorf("capture revision after pull: %w", err)
	}
	branch, err := s.git.CurrentBranch(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("resolve branch: %w", err)
	}

	return &domain.UpdateRun{
		Success:      true,
		Output:       out,
		Branch:       branch,
		CommitBefore: before,
		CommitAfter:  after,
		FinishedAt:   time.Now().UTC(),
	}, nil
}

// Status reports the checkout's branch, commit, last sync time and
// working-tree cleanliness. Same path validation as TriggerUpdate.
func (s *UpdateService) Status(ctx context.Context) (*domain.RepoStatus, error) {
	dir, err := s.validateTarget()
	if err != nil {
		return nil, err
	}

	statusCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	commit, err := s.git.RevParse(statusCtx, dir, "HEAD")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpdateFailed, err)
	}
	branch, err := s.git.CurrentBranch(statusCtx, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpdateFailed, err)
	}
	clean, err := s.git.IsClean(statusCtx, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpdateFailed, err)
	}

	lastSync, err := s.git.LastSync(dir)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not determine last sync time")
	}

	return &domain.RepoStatus{
		Branch:       branch,
		Commit:       commit,
		LastSyncTime: lastSync,
		IsClean:      clean,
	}, nil
}

// validateTarget resolves the approved path and confirms it still points at
// a real checkout: absolute, canonical (no symlink indirection), existing,
// and carrying version-control metadata. Any mismatch fails ErrInvalidTarget
// before a subprocess is spawned.
func (s *UpdateService) validateTarget() (string, error) {
	abs, err := filepath.Abs(s.approvedPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidTarget, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidTarget, err)
	}
	if resolved != abs {
		return "", fmt.Errorf("%w: %s resolves outside the approved path", domain.ErrInvalidTarget, s.approvedPath)
	}

	info, err := os.Stat(filepath.Join(resolved, ".git"))
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s has no version control metadata", domain.ErrInvalidTarget, s.approvedPath)
	}

	return resolved, nil
}

func (s *UpdateService) auditRun(action, performedBy string, client domain.ClientContext, detail map[string]string) {
	after, err := json.Marshal(detail)
	if err != nil {
		after = nil
	}
	s.audit.Record(&domain.AuditEvent{
		Action:       action,
		ResourceType: "website",
		After:        after,
		ActorID:      performedBy,
		IP:           client.IP,
		UserAgent:    client.UserAgent,
		Timestamp:    time.Now().UTC(),
	})
}
