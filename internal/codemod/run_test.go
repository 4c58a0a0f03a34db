package codemod

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SebassNoob/next-codemod/internal/display"
	"github.com/SebassNoob/next-codemod/internal/engine"
	"github.com/SebassNoob/next-codemod/internal/prompt"
	"github.com/SebassNoob/next-codemod/internal/registry"
)

// fakePrompter answers prompts from scripted values and records questions.
type fakePrompter struct {
	selectAnswer  int
	inputAnswer   string
	confirmAnswer bool
	err           error

	questions []string
}

func (f *fakePrompter) Select(question string, options []string) (int, error) {
	f.questions = append(f.questions, question)
	return f.selectAnswer, f.err
}

func (f *fakePrompter) Input(question, defaultValue string) (string, error) {
	f.questions = append(f.questions, question)
	if f.err != nil {
		return "", f.err
	}
	if f.inputAnswer == "" {
		return defaultValue, nil
	}
	return f.inputAnswer, nil
}

func (f *fakePrompter) Confirm(question string, defaultYes bool) (bool, error) {
	f.questions = append(f.questions, question)
	return f.confirmAnswer, f.err
}

// fakeEngine returns a canned tail instead of spawning jscodeshift.
type fakeEngine struct {
	output      string
	err         error
	invocations []engine.Invocation
}

func (f *fakeEngine) Run(ctx context.Context, inv engine.Invocation) (*engine.Result, error) {
	f.invocations = append(f.invocations, inv)
	if f.err != nil {
		return nil, f.err
	}
	tail := engine.NewStreamTail()
	if _, err := tail.Write([]byte(f.output)); err != nil {
		return nil, err
	}
	return &engine.Result{Tail: tail}, nil
}

// fakePackages records install/uninstall requests.
type fakePackages struct {
	installed   [][]string
	uninstalled []string
}

func (f *fakePackages) Install(ctx context.Context, packages []string) error {
	f.installed = append(f.installed, packages)
	return nil
}

func (f *fakePackages) Uninstall(ctx context.Context, pkg string) error {
	f.uninstalled = append(f.uninstalled, pkg)
	return nil
}

// fakeTree simulates the working-tree check.
type fakeTree struct {
	err   error
	calls int
}

func (f *fakeTree) EnsureClean(ctx context.Context, force bool) error {
	f.calls++
	return f.err
}

type fixture struct {
	orch     *Orchestrator
	prompter *fakePrompter
	engine   *fakeEngine
	packages *fakePackages
	tree     *fakeTree
	out      *bytes.Buffer
	dir      string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg, err := registry.Load()
	require.NoError(t, err)

	f := &fixture{
		prompter: &fakePrompter{confirmAnswer: true},
		engine:   &fakeEngine{output: "All done.\n2 ok\nTime elapsed: 1s\n"},
		packages: &fakePackages{},
		tree:     &fakeTree{},
		out:      &bytes.Buffer{},
		dir:      t.TempDir(),
	}
	f.orch = &Orchestrator{
		Registry:     reg,
		Prompter:     f.prompter,
		Engine:       f.engine,
		Packages:     f.packages,
		Tree:         f.tree,
		Out:          display.New(f.out),
		Binary:       "jscodeshift",
		TransformDir: "/opt/transforms",
		WorkDir:      f.dir,
	}
	return f
}

func (f *fixture) targetFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte("export {}\n"), 0o644))
	return path
}

func TestRunInvalidTransformName(t *testing.T) {
	f := newFixture(t)

	err := f.orch.Run(context.Background(), "no-such-transform", f.dir, Options{})

	var sel *InvalidSelectionError
	require.ErrorAs(t, err, &sel)
	assert.Equal(t, "no-such-transform", sel.Name)
	for _, name := range f.orch.Registry.Names() {
		assert.Contains(t, err.Error(), name, "the error must list every valid transform")
	}
	assert.Empty(t, f.engine.invocations, "an invalid selection must never reach the engine")
}

func TestRunFontUninstallFollowUp(t *testing.T) {
	f := newFixture(t)
	target := f.targetFile(t, "pages.tsx")

	err := f.orch.Run(context.Background(), "built-in-next-font", target, Options{})
	require.NoError(t, err)

	require.Len(t, f.engine.invocations, 1)
	require.Len(t, f.prompter.questions, 1, "the uninstall confirmation must be asked")
	assert.Contains(t, f.prompter.questions[0], "@next/font")
	assert.Equal(t, []string{"@next/font"}, f.packages.uninstalled)
	assert.Contains(t, f.out.String(), "Uninstalled @next/font")
}

func TestRunFontFollowUpDeclined(t *testing.T) {
	f := newFixture(t)
	f.prompter.confirmAnswer = false
	target := f.targetFile(t, "pages.tsx")

	err := f.orch.Run(context.Background(), "built-in-next-font", target, Options{})
	require.NoError(t, err)
	assert.Empty(t, f.packages.uninstalled)
}

func TestRunGeoIPNoChangesSkipsFollowUp(t *testing.T) {
	f := newFixture(t)
	f.engine.output = "All done.\n0 ok\nTime elapsed: 1s\n"
	target := f.targetFile(t, "middleware.ts")

	err := f.orch.Run(context.Background(), "next-request-geo-ip", target, Options{})
	require.NoError(t, err)

	require.Len(t, f.engine.invocations, 1)
	assert.Empty(t, f.prompter.questions, "no changes means no install prompt")
	assert.Empty(t, f.packages.installed)
}

func TestRunGeoIPInstallFollowUp(t *testing.T) {
	f := newFixture(t)
	target := f.targetFile(t, "middleware.ts")

	err := f.orch.Run(context.Background(), "next-request-geo-ip", target, Options{})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"@vercel/functions"}}, f.packages.installed)
	assert.Contains(t, f.out.String(), "Installed @vercel/functions")
}

func TestRunNoMatchingFiles(t *testing.T) {
	f := newFixture(t)
	pattern := filepath.Join(f.dir, "src", "*.tsx")

	err := f.orch.Run(context.Background(), "new-link", pattern, Options{})
	require.NoError(t, err, "no matching files is a benign no-op")

	assert.Empty(t, f.engine.invocations, "the engine must not be spawned")
	assert.Contains(t, f.out.String(), fmt.Sprintf("no files found matching %q", pattern))
}

func TestRunEngineFailurePropagates(t *testing.T) {
	f := newFixture(t)
	f.engine.err = fmt.Errorf("%w: exit code 2", engine.ErrEngineFailure)
	target := f.targetFile(t, "pages.tsx")

	err := f.orch.Run(context.Background(), "built-in-next-font", target, Options{})
	require.ErrorIs(t, err, engine.ErrEngineFailure)
	assert.Contains(t, err.Error(), "2")
	assert.Empty(t, f.prompter.questions, "a failed run must not prompt for follow-ups")
}

func TestRunDirtyTreeAborts(t *testing.T) {
	f := newFixture(t)
	f.tree.err = errors.New("gitutil: working tree has uncommitted changes")
	target := f.targetFile(t, "pages.tsx")

	err := f.orch.Run(context.Background(), "new-link", target, Options{})
	require.Error(t, err)
	assert.Empty(t, f.engine.invocations)
}

func TestRunDrySkipsTreeCheckAndFollowUps(t *testing.T) {
	f := newFixture(t)
	target := f.targetFile(t, "pages.tsx")

	err := f.orch.Run(context.Background(), "built-in-next-font", target, Options{Dry: true})
	require.NoError(t, err)

	assert.Zero(t, f.tree.calls, "dry runs skip the working-tree check")
	assert.Empty(t, f.packages.uninstalled, "dry runs never trigger follow-ups")

	require.Len(t, f.engine.invocations, 1)
	assert.Contains(t, f.engine.invocations[0].Args, "--dry")
}

func TestRunPromptCancelledDuringSelection(t *testing.T) {
	f := newFixture(t)
	f.prompter.err = prompt.ErrCancelled

	err := f.orch.Run(context.Background(), "", f.dir, Options{})
	require.ErrorIs(t, err, prompt.ErrCancelled)
	assert.Empty(t, f.engine.invocations)
}

func TestRunInteractiveSelection(t *testing.T) {
	f := newFixture(t)
	f.prompter.selectAnswer = 0 // first choice in version-descending order
	f.engine.output = "All done.\n0 ok\nTime elapsed: 1s\n"
	target := f.targetFile(t, "middleware.ts")
	f.prompter.inputAnswer = target

	err := f.orch.Run(context.Background(), "", "", Options{})
	require.NoError(t, err)

	require.Len(t, f.engine.invocations, 1)
	first := f.orch.Registry.Choices()[0]
	assert.Contains(t, f.engine.invocations[0].Args, "--transform")
	assert.Contains(t, f.engine.invocations[0].Args, "/opt/transforms/"+first.Name+".js")
}

func TestRunDispatchesNativeTransform(t *testing.T) {
	f := newFixture(t)
	pkg := []byte(`{"dependencies": {"react-scripts": "5.0.1"}}`)
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "package.json"), pkg, 0o644))

	err := f.orch.Run(context.Background(), "cra-to-next", f.dir, Options{})
	require.NoError(t, err)

	assert.Empty(t, f.engine.invocations, "cra-to-next never uses the engine")
	assert.Equal(t, [][]string{{"next"}}, f.packages.installed)
	assert.FileExists(t, filepath.Join(f.dir, "next.config.js"))
}

func TestRunBuildsFullInvocation(t *testing.T) {
	f := newFixture(t)
	target := f.targetFile(t, "pages.tsx")

	opts := Options{RunInBand: true, Verbose: true, EngineArgs: []string{"--parser=tsx"}}
	err := f.orch.Run(context.Background(), "new-link", target, opts)
	require.NoError(t, err)

	require.Len(t, f.engine.invocations, 1)
	inv := f.engine.invocations[0]
	assert.Equal(t, "jscodeshift", inv.Path)
	assert.Contains(t, inv.Args, "--run-in-band")
	assert.Contains(t, inv.Args, "--verbose=2")
	assert.Contains(t, inv.Args, "--parser=tsx")
	assert.Equal(t, target, inv.Args[len(inv.Args)-1], "files come last")
}
