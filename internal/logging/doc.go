// Package logging assembles the structured slog loggers used across
// subtran.
//
// It owns the configurable console/JSON handlers and centralizes level and
// output plumbing so every run logs to stderr and, when configured, to a
// per-run file under the log directory. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape as the rest of the tool.
package logging
