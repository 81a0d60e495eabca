// Package gitcmd runs the fixed set of git commands the update service
// needs. Every command is scoped to the directory it is given, takes no
// caller-supplied arguments, and runs with a minimal environment that cannot
// prompt interactively.
package gitcmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Runner implements ports.RepoCommander over the git binary.
type Runner struct{}

func NewRunner() Runner {
	return Runner{}
}

// RevParse returns the commit hash for ref (typically "HEAD").
func (Runner) RevParse(ctx context.Context, dir, ref string) (string, error) {
	return run(ctx, dir, "rev-parse", ref)
}

// CurrentBranch returns the checked-out branch name.
func (Runner) CurrentBranch(ctx context.Context, dir string) (string, error) {
	return run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
}

// PullFastForward synchronises the checkout, refusing merges and rebases.
func (Runner) PullFastForward(ctx context.Context, dir string) (string, error) {
	return run(ctx, dir, "pull", "--ff-only")
}

// IsClean reports whether the working tree has no uncommitted changes.
func (Runner) IsClean(ctx context.Context, dir string) (bool, error) {
	out, err := run(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out == "", nil
}

// LastSync approximates the last synchronisation time from git bookkeeping:
// FETCH_HEAD's mtime when a fetch has happened, HEAD's otherwise.
func (Runner) LastSync(dir string) (time.Time, error) {
	for _, name := range []string{"FETCH_HEAD", "HEAD"} {
		if info, err := os.Stat(filepath.Join(dir, ".git", name)); err == nil {
			return info.ModTime().UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("no git bookkeeping files under %s", dir)
}

func run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	// Environment allowlist: enough for git to resolve binaries and its
	// config, with interactive prompts disabled.
	cmd.Env = []string{
		"GIT_TERMINAL_PROMPT=0",
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + os.Getenv("HOME"),
	}

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	out := strings.TrimSpace(buf.String())
	if err != nil {
		return out, fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, out)
	}
	return out, nil
}
