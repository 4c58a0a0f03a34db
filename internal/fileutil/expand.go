// Package fileutil turns glob-bearing path arguments into concrete file lists.
package fileutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// globChars are the metacharacters understood by filepath.Match.
const globChars = "*?["

// HasGlob reports whether path contains a glob metacharacter.
func HasGlob(path string) bool {
	return strings.ContainsAny(path, globChars)
}

// ExpandPaths resolves path arguments against the filesystem. If any argument
// contains a glob metacharacter, every argument is expanded via pattern
// matching; otherwise the arguments pass through unchanged. An empty result
// means no files matched (a benign no-op for the caller, not an error).
func ExpandPaths(paths []string) ([]string, error) {
	expand := false
	for _, p := range paths {
		if HasGlob(p) {
			expand = true
			break
		}
	}
	if !expand {
		out := make([]string, len(paths))
		copy(out, paths)
		return out, nil
	}

	var matched []string
	for _, p := range paths {
		m, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("fileutil: invalid pattern %q: %w", p, err)
		}
		matched = append(matched, m...)
	}
	return matched, nil
}
