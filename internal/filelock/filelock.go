// Package filelock serializes codemod runs and provides atomic file writes.
//
// Two concurrent runs rewriting the same tree would race on the same source
// files, so each run holds an exclusive lock keyed by the target directory
// for its whole duration.
package filelock

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RunLock is an exclusive cross-process lock for one target directory.
type RunLock struct {
	flock  *flock.Flock
	target string
}

// NewRunLock creates a lock for the given target directory. The lock file
// lives in the system temp directory, keyed by the absolute target path.
func NewRunLock(target string) *RunLock {
	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}
	key := sha256.Sum256([]byte(abs))
	path := filepath.Join(os.TempDir(), fmt.Sprintf("next-codemod-%x.lock", key[:8]))
	return &RunLock{
		flock:  flock.New(path),
		target: abs,
	}
}

// Acquire takes the lock without blocking. It fails when another run already
// holds it for the same target.
func (l *RunLock) Acquire() error {
	acquired, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("filelock: failed to lock %s: %w", l.target, err)
	}
	if !acquired {
		return fmt.Errorf("filelock: another codemod run is already in progress for %s", l.target)
	}
	return nil
}

// Release gives the lock back.
func (l *RunLock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("filelock: failed to unlock %s: %w", l.target, err)
	}
	return nil
}

// AtomicWrite writes data to path via a temp file and rename, so readers
// never observe a partial file. Used for generated files like next.config.js.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("filelock: failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".next-codemod-*")
	if err != nil {
		return fmt.Errorf("filelock: failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("filelock: failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filelock: failed to close temp file: %w", err)
	}
	tmp = nil

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("filelock: failed to rename temp file to %s: %w", path, err)
	}
	return nil
}
