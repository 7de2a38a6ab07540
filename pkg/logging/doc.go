// Package logging provides structured logging configuration for clix
// programs.
//
// This package wraps log/slog. The default CLI format prints one
// "<level>: <message>" line per record on stderr, which is what a user
// running a command expects to read; text and JSON formats are available
// for machine consumption.
//
// # Usage
//
//	var level slog.LevelVar
//	logger := logging.New(logging.Config{
//	    LevelVar: &level,
//	    Format:   logging.FormatCLI,
//	})
//
//	logger.Warn("unknown configuration key", "key", "extra_value")
//	level.Set(logging.LevelDebug)
//
// # Verbosity
//
// Five verbosities are recognized, from quietest to loudest: CRITICAL,
// ERROR, WARNING, INFO, DEBUG. CRITICAL maps to LevelCritical, a level above
// slog.LevelError used for failures that end the invocation.
//
// # Integration
//
// Components accept a *slog.Logger. If no logger is provided, use
// logging.Nop() for a no-op logger.
package logging
