package gitutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records invocations and returns canned results.
type fakeRunner struct {
	out    string
	err    error
	called int
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	f.called++
	return f.out, f.err
}

func TestEnsureCleanWithCleanTree(t *testing.T) {
	runner := &fakeRunner{out: ""}
	c := &Checker{Runner: runner}

	err := c.EnsureClean(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, runner.called)
}

func TestEnsureCleanWithDirtyTree(t *testing.T) {
	runner := &fakeRunner{out: " M pages/index.tsx"}
	c := &Checker{Runner: runner}

	err := c.EnsureClean(context.Background(), false)
	require.ErrorIs(t, err, ErrDirtyTree)
	assert.Contains(t, err.Error(), "--force")
}

func TestEnsureCleanForceSkipsCheck(t *testing.T) {
	runner := &fakeRunner{out: " M pages/index.tsx"}
	c := &Checker{Runner: runner}

	err := c.EnsureClean(context.Background(), true)
	require.NoError(t, err)
	assert.Zero(t, runner.called, "force must not invoke git at all")
}

func TestEnsureCleanOutsideRepository(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 128")}
	c := &Checker{Runner: runner}

	// Not a repository: nothing to protect, proceed.
	assert.NoError(t, c.EnsureClean(context.Background(), false))
}
