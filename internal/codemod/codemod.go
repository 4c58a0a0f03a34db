// Package codemod orchestrates a single transform run: selection and
// validation, path expansion, engine invocation, outcome detection, and the
// conditional follow-up package actions.
package codemod

import (
	"context"
	"fmt"
	"strings"

	"github.com/SebassNoob/next-codemod/internal/display"
	"github.com/SebassNoob/next-codemod/internal/engine"
	"github.com/SebassNoob/next-codemod/internal/filelock"
	"github.com/SebassNoob/next-codemod/internal/fileutil"
	"github.com/SebassNoob/next-codemod/internal/logging"
	"github.com/SebassNoob/next-codemod/internal/prompt"
	"github.com/SebassNoob/next-codemod/internal/registry"
)

// Options are the caller-resolved execution options for one run. The
// orchestrator never mutates them.
type Options struct {
	// Dry reports intended changes without writing them.
	Dry bool

	// Print makes the engine print transformed sources.
	Print bool

	// RunInBand disables the engine's worker parallelism.
	RunInBand bool

	// Verbose raises engine and diagnostic output detail.
	Verbose bool

	// Force skips the working-tree cleanliness check.
	Force bool

	// EngineArgs are passed through to the engine verbatim.
	EngineArgs []string
}

// EngineRunner spawns the rewrite engine. Implemented by engine.Engine;
// tests substitute fakes.
type EngineRunner interface {
	Run(ctx context.Context, inv engine.Invocation) (*engine.Result, error)
}

// PackageOperator performs the follow-up dependency actions.
type PackageOperator interface {
	Install(ctx context.Context, packages []string) error
	Uninstall(ctx context.Context, pkg string) error
}

// TreeChecker verifies the git working tree before a non-dry run.
type TreeChecker interface {
	EnsureClean(ctx context.Context, force bool) error
}

// InvalidSelectionError reports an explicitly requested transform that is not
// in the registry, together with every valid name.
type InvalidSelectionError struct {
	Name  string
	Valid []string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("codemod: unknown transform %q, valid transforms are:\n  %s",
		e.Name, strings.Join(e.Valid, "\n  "))
}

// Orchestrator wires one transform run end to end.
type Orchestrator struct {
	Registry *registry.Registry
	Prompter prompt.Prompter
	Engine   EngineRunner
	Packages PackageOperator
	Tree     TreeChecker
	Out      *display.Printer

	// Binary is the resolved engine executable.
	Binary string

	// TransformDir holds the engine transform scripts.
	TransformDir string

	// WorkDir is the directory the run operates from; concurrent runs
	// against it are excluded via a run lock.
	WorkDir string
}

// Run applies one transform. name and path may be empty, in which case they
// are resolved interactively. A run whose path expansion matches no files
// reports that and returns nil without spawning the engine.
func (o *Orchestrator) Run(ctx context.Context, name, path string, opts Options) error {
	log := logging.GetLogger("codemod")

	desc, err := o.selectTransform(name)
	if err != nil {
		return err
	}

	path, err = o.resolvePath(path)
	if err != nil {
		return err
	}

	if !opts.Dry {
		if err := o.Tree.EnsureClean(ctx, opts.Force); err != nil {
			return err
		}
	}

	lock := filelock.NewRunLock(o.WorkDir)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	files, err := fileutil.ExpandPaths([]string{path})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		o.Out.Warnf("no files found matching %q", path)
		return nil
	}

	log.Debug().
		Str("transform", desc.Name).
		Str("version", desc.Version).
		Int("files", len(files)).
		Bool("dry", opts.Dry).
		Msg("running transform")
	o.Out.Infof("Applying %s (v%s) to %d path(s)...", desc.Name, desc.Version, len(files))

	outcome, err := o.transformFor(desc).Run(ctx, files, opts)
	if err != nil {
		return err
	}

	if outcome.NoChangesDetected {
		o.Out.Infof("No files were modified.")
	}
	return o.applyFollowUps(ctx, desc.Name, opts, outcome)
}

// selectTransform resolves the transform descriptor, interactively when no
// name is given. An invalid explicit name never falls back to prompting.
func (o *Orchestrator) selectTransform(name string) (registry.Descriptor, error) {
	if name != "" {
		desc, ok := o.Registry.Lookup(name)
		if !ok {
			return registry.Descriptor{}, &InvalidSelectionError{Name: name, Valid: o.Registry.Names()}
		}
		return desc, nil
	}

	choices := o.Registry.Choices()
	labels := make([]string, len(choices))
	for i, d := range choices {
		labels[i] = d.Label()
	}
	idx, err := o.Prompter.Select("Which transform would you like to apply?", labels)
	if err != nil {
		return registry.Descriptor{}, err
	}
	return choices[idx], nil
}

// resolvePath resolves the target path, prompting with the current directory
// as default when none was given.
func (o *Orchestrator) resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return o.Prompter.Input("On which files or directory should the codemod be applied?", ".")
}

// transformFor dispatches a descriptor to its runnable variant.
func (o *Orchestrator) transformFor(desc registry.Descriptor) Transform {
	if desc.Name == craTransformName {
		return &craToNext{desc: desc, packages: o.Packages, out: o.Out}
	}
	return &engineTransform{
		desc:         desc,
		runner:       o.Engine,
		binary:       o.Binary,
		transformDir: o.TransformDir,
	}
}
