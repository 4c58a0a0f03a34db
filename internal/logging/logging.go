// Package logging configures the global zerolog logger for next-codemod.
//
// Diagnostic logs go to stderr so they never interleave with the rewrite
// engine's relayed output on stdout. Every run is tagged with a run_id so a
// single invocation can be traced through component loggers.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger for one run and returns the run id.
// Verbose forces debug level regardless of the configured level.
func Setup(level string, verbose bool) string {
	zerolog.SetGlobalLevel(parseLevel(level))
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	runID := uuid.New().String()
	log.Logger = zerolog.New(consoleWriter).With().
		Timestamp().
		Str("run_id", runID).
		Logger()

	log.Debug().Str("level", zerolog.GlobalLevel().String()).Msg("logger initialized")
	return runID
}

// GetLogger returns a contextualized logger for the given component.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}
