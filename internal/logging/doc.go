// Package logging assembles structured slog loggers used across vidbridge.
//
// It owns the console and JSON handlers, fans records out to an optional log
// file, and exposes context-aware helpers so request handlers automatically
// tag log lines with correlation IDs and the transport that carried the call.
// A no-op logger is provided for tests and wiring code that cannot fail.
package logging
