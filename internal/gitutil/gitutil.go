// Package gitutil inspects the git working tree before a codemod run.
//
// Rewrites touch files in place, so non-dry runs refuse to start on top of
// uncommitted changes unless the user forces them through.
package gitutil

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/SebassNoob/next-codemod/internal/logging"
)

// ErrDirtyTree indicates the working tree holds uncommitted changes.
var ErrDirtyTree = errors.New("gitutil: working tree has uncommitted changes")

// CommandRunner executes a command and returns its standard output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner executes real commands in a working directory.
type ExecRunner struct {
	// Dir is the working directory for commands (empty = current dir).
	Dir string
}

// Run executes the command and returns its trimmed standard output.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("gitutil: %s %s: %w", name, strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Checker verifies working-tree cleanliness through a CommandRunner.
type Checker struct {
	Runner CommandRunner
}

// NewChecker creates a Checker running real git commands in dir.
func NewChecker(dir string) *Checker {
	return &Checker{Runner: &ExecRunner{Dir: dir}}
}

// EnsureClean returns ErrDirtyTree (wrapped with guidance) when the working
// tree has uncommitted changes. force skips the check entirely. A failing git
// command (e.g. not a repository) is logged and treated as clean: there is
// nothing to clobber that git could have protected.
func (c *Checker) EnsureClean(ctx context.Context, force bool) error {
	if force {
		return nil
	}

	out, err := c.Runner.Run(ctx, "git", "status", "--porcelain")
	if err != nil {
		log := logging.GetLogger("gitutil")
		log.Warn().Err(err).Msg("git status failed, skipping working tree check")
		return nil
	}

	if out != "" {
		return fmt.Errorf("%w: commit or stash your changes first, or re-run with --force", ErrDirtyTree)
	}
	return nil
}
