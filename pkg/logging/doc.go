// Package logging provides structured logging for the provider server.
//
// It wraps the standard library slog package with project defaults: JSON
// output to stderr, environment-based log level configuration (LOG_LEVEL),
// module/version context injection, and source location tracking for debug
// logs.
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("providerd", version)
//
//	    slog.Info("processing event", "container", id)
//	    slog.Error("operation failed", "error", err)
//	}
//
// The LOG_LEVEL environment variable controls verbosity (debug, info, warn,
// error; case-insensitive). If unset, INFO is used.
package logging
