package engine

import (
	"regexp"
	"strings"
)

// noChangesMarker is the fragment of the engine's summary line reporting that
// zero files were rewritten, e.g. "0 errors 12 unmodified 0 skipped 0 ok".
const noChangesMarker = "0 ok"

// ansiPattern matches ANSI escape sequences the engine embeds when colorized.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// Outcome is what the orchestrator learns from a successful engine run.
type Outcome struct {
	// NoChangesDetected is true when the engine reported zero rewritten files.
	NoChangesDetected bool
}

// Interpret derives the Outcome from the final stream tail. The engine's
// output ends with a trailing newline, so the change-count summary is the
// third-from-last line. When the tail is too short to hold a summary at all,
// no changes are assumed: follow-up side effects must not fire on output
// that could not be read.
func Interpret(tail *StreamTail) Outcome {
	lines := strings.Split(tail.String(), "\n")
	if len(lines) < tailBreaks {
		return Outcome{NoChangesDetected: true}
	}
	summary := StripANSI(lines[len(lines)-tailBreaks])
	return Outcome{NoChangesDetected: strings.Contains(summary, noChangesMarker)}
}

// StripANSI removes ANSI escape sequences from s.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
