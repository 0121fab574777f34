// Package logging assembles the structured slog loggers used across ladle
// services.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so every component tags log lines
// with the same field names. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape as the rest of the system.
package logging
