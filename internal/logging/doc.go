// Package logging assembles the slog loggers used by the cstag command and
// the library packages.
//
// It owns the console and JSON handlers and the level plumbing, and provides a
// no-op logger for tests and for library callers that do not pass one.
// Components tag their lines with a "component" attribute via
// NewComponentLogger.
package logging
