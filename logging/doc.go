// Package logging builds the slog loggers used by the menv command and the
// Fx module. Records are written as JSON by default, or as logfmt-style text.
package logging
