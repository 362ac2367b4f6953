// Package logging assembles structured slog loggers and formatting helpers used
// across uxfomo packages.
//
// It owns the configurable console/JSON handlers, fans records out to the
// terminal and the log file, and exposes helpers so warnings always carry an
// event type, a hint, and the user-facing impact. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the tool.
package logging
