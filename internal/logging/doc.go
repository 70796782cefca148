// Package logging assembles structured slog loggers used across museo.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so API clients tag log lines
// with operation names and correlation IDs. A no-op logger is provided for
// tests and wiring code that cannot fail.
package logging
