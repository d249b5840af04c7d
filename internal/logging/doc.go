// Package logging assembles structured slog loggers and formatting helpers used
// across ytscript.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so workflow code can tag log
// lines with the run correlation ID and the video being processed. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
//
// CLI loggers write to stderr; stdout is reserved for command results.
package logging
