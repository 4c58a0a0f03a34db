// Package engine drives the external jscodeshift rewrite engine: it builds
// the argument vector for a transform run, spawns the process, relays its
// output, and interprets the trailing change-count summary.
package engine

import (
	"os"
	"os/exec"
	"path/filepath"
)

// DefaultBinary is the engine executable resolved from PATH when no local
// installation or configured override exists.
const DefaultBinary = "jscodeshift"

// extensions is the fixed set of source extensions the engine may touch.
const extensions = "tsx,ts,jsx,js"

// InvocationOptions are the caller-controlled switches that map onto engine
// flags. Passthrough args are forwarded verbatim after the built flags.
type InvocationOptions struct {
	Dry         bool
	Print       bool
	RunInBand   bool
	Verbose     bool
	Passthrough []string
}

// Invocation is a fully built engine command: executable path plus argv.
// It is derived deterministically from its inputs.
type Invocation struct {
	Path string
	Args []string
}

// NewInvocation builds the engine argument vector for one transform run.
// Flag order is fixed: boolean flags, the invariant engine setup (babel off,
// dependency and build-output directories ignored, extension allowlist), the
// transform script, passthrough args, then the file list.
func NewInvocation(binary, transformPath string, opts InvocationOptions, files []string) Invocation {
	var args []string
	if opts.Dry {
		args = append(args, "--dry")
	}
	if opts.Print {
		args = append(args, "--print")
	}
	if opts.RunInBand {
		args = append(args, "--run-in-band")
	}
	if opts.Verbose {
		args = append(args, "--verbose=2")
	}

	args = append(args,
		"--no-babel",
		"--ignore-pattern=**/node_modules/**",
		"--ignore-pattern=**/.next/**",
		"--extensions="+extensions,
		"--transform", transformPath,
	)

	args = append(args, opts.Passthrough...)
	args = append(args, files...)

	return Invocation{Path: binary, Args: args}
}

// TransformPath returns the script path for a named transform.
func TransformPath(transformDir, name string) string {
	return filepath.Join(transformDir, name+".js")
}

// ResolveBinary picks the engine executable: an explicit override wins, then
// a project-local installation under node_modules/.bin, then PATH lookup.
func ResolveBinary(override, workDir string) string {
	if override != "" {
		return override
	}
	local := filepath.Join(workDir, "node_modules", ".bin", DefaultBinary)
	if info, err := os.Stat(local); err == nil && !info.IsDir() {
		return local
	}
	if path, err := exec.LookPath(DefaultBinary); err == nil {
		return path
	}
	return DefaultBinary
}
