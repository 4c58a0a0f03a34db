// Package packagemanager performs the follow-up dependency actions a
// transform can trigger: installing or uninstalling npm packages through
// whichever package manager the target project uses.
package packagemanager

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/SebassNoob/next-codemod/internal/logging"
)

// Kind identifies a JavaScript package manager.
type Kind string

const (
	Npm  Kind = "npm"
	Yarn Kind = "yarn"
	Pnpm Kind = "pnpm"
	Bun  Kind = "bun"
)

// Runner executes a package manager command with inherited output streams.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner executes real commands, relaying their output to the user.
type ExecRunner struct {
	// Dir is the working directory for commands (empty = current dir).
	Dir string
}

// Run executes the command with stdout/stderr passed through.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("packagemanager: %s failed: %w", name, err)
	}
	return nil
}

// Detect picks the package manager for dir by its lockfile, defaulting to npm.
func Detect(dir string) Kind {
	checks := []struct {
		lockfile string
		kind     Kind
	}{
		{"yarn.lock", Yarn},
		{"pnpm-lock.yaml", Pnpm},
		{"bun.lockb", Bun},
	}
	for _, c := range checks {
		if _, err := os.Stat(filepath.Join(dir, c.lockfile)); err == nil {
			return c.kind
		}
	}
	return Npm
}

// Manager installs and uninstalls packages with a fixed package manager.
type Manager struct {
	kind   Kind
	runner Runner
}

// New creates a Manager for dir. override forces a specific package manager;
// when empty the manager is detected from the project's lockfile.
func New(dir string, override Kind, runner Runner) *Manager {
	kind := override
	if kind == "" {
		kind = Detect(dir)
	}
	if runner == nil {
		runner = &ExecRunner{Dir: dir}
	}
	return &Manager{kind: kind, runner: runner}
}

// Kind returns the package manager in use.
func (m *Manager) Kind() Kind {
	return m.kind
}

// Install adds the given packages to the project.
func (m *Manager) Install(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		return nil
	}
	verb := "add"
	if m.kind == Npm {
		verb = "install"
	}
	args := append([]string{verb}, packages...)

	log := logging.GetLogger("packagemanager")
	log.Debug().Str("manager", string(m.kind)).Strs("packages", packages).Msg("installing packages")
	return m.runner.Run(ctx, string(m.kind), args...)
}

// Uninstall removes a single package from the project.
func (m *Manager) Uninstall(ctx context.Context, pkg string) error {
	verb := "remove"
	if m.kind == Npm {
		verb = "uninstall"
	}

	log := logging.GetLogger("packagemanager")
	log.Debug().Str("manager", string(m.kind)).Str("package", pkg).Msg("uninstalling package")
	return m.runner.Run(ctx, string(m.kind), verb, pkg)
}
