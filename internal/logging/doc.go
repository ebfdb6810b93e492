// Package logging builds slog loggers for the CLI and library components,
// with console and JSON handlers, optional log files, and shared attribute
// helpers so every component logs the same field names.
package logging
