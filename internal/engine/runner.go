package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/SebassNoob/next-codemod/internal/logging"
)

// ErrEngineFailure indicates the engine process exited abnormally. The exit
// code is carried in the wrapped message.
var ErrEngineFailure = errors.New("engine: jscodeshift failed")

// Result is the outcome of a completed engine process.
type Result struct {
	ExitCode int
	Tail     *StreamTail
}

// Engine spawns jscodeshift processes. Stdout and Stderr default to the
// orchestrator's own streams; tests substitute buffers.
type Engine struct {
	Stdout io.Writer
	Stderr io.Writer
}

// New creates an Engine relaying to the process-wide standard streams.
func New() *Engine {
	return &Engine{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run spawns the engine and waits for it to finish. The child's stdout is
// relayed in real time and simultaneously folded into a StreamTail; stderr
// is relayed untouched. The child is forced to emit color so the relayed
// output matches an interactive invocation.
//
// A non-zero exit returns ErrEngineFailure wrapped with the exit code; no
// result is produced in that case.
func (e *Engine) Run(ctx context.Context, inv Invocation) (*Result, error) {
	log := logging.GetLogger("engine")
	log.Debug().Str("binary", inv.Path).Strs("args", inv.Args).Msg("spawning jscodeshift")

	tail := NewStreamTail()

	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Stdout = io.MultiWriter(e.Stdout, tail)
	cmd.Stderr = e.Stderr
	cmd.Env = append(os.Environ(), "FORCE_COLOR=1")

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: exit code %d", ErrEngineFailure, exitErr.ExitCode())
		}
		return nil, fmt.Errorf("engine: failed to start %s: %w", inv.Path, err)
	}

	return &Result{ExitCode: 0, Tail: tail}, nil
}
