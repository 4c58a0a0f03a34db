package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasGlob(t *testing.T) {
	assert.True(t, HasGlob("src/*.tsx"))
	assert.True(t, HasGlob("pages/[id].js"))
	assert.True(t, HasGlob("file?.ts"))
	assert.False(t, HasGlob("src/components"))
	assert.False(t, HasGlob("."))
}

func TestExpandPathsIdentityWithoutGlob(t *testing.T) {
	paths := []string{"src", "pages/index.tsx"}

	out, err := ExpandPaths(paths)
	require.NoError(t, err)
	assert.Equal(t, paths, out)

	// The input slice must not be aliased.
	out[0] = "mutated"
	assert.Equal(t, "src", paths[0])
}

func TestExpandPathsGlobMatches(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.tsx", "b.tsx", "c.js"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	out, err := ExpandPaths([]string{filepath.Join(dir, "*.tsx")})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.tsx"),
		filepath.Join(dir, "b.tsx"),
	}, out)
}

func TestExpandPathsGlobNoMatches(t *testing.T) {
	dir := t.TempDir()

	out, err := ExpandPaths([]string{filepath.Join(dir, "src", "*.tsx")})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExpandPathsBadPattern(t *testing.T) {
	_, err := ExpandPaths([]string{"src/[.tsx"})
	assert.Error(t, err)
}
