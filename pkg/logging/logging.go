package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level represents a log level.
type Level = slog.Level

// Log levels.
const (
	LevelDebug    = slog.LevelDebug
	LevelInfo     = slog.LevelInfo
	LevelWarn     = slog.LevelWarn
	LevelError    = slog.LevelError
	LevelCritical = slog.Level(12)
)

// Verbosities lists the verbosity names accepted on the command line, from
// the quietest to the most verbose.
var Verbosities = []string{"CRITICAL", "ERROR", "WARNING", "INFO", "DEBUG"}

// DefaultVerbosity is the verbosity used when none is configured.
const DefaultVerbosity = "WARNING"

// Format represents the log output format.
type Format string

// Output formats.
const (
	// FormatCLI prints "<level>: <message>" lines meant for humans at a
	// terminal.
	FormatCLI  Format = "cli"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level to output. Ignored when LevelVar is set.
	Level Level

	// LevelVar, when set, controls the minimum level and can be changed
	// after the logger is built.
	LevelVar *slog.LevelVar

	// Format is the output format (cli, text or json).
	Format Format

	// Output is the writer to send logs to. Defaults to os.Stderr.
	Output io.Writer

	// AddSource adds source file and line to log entries.
	AddSource bool
}

// DefaultConfig returns sensible defaults for logging.
func DefaultConfig() Config {
	return Config{
		Level:     LevelWarn,
		Format:    FormatCLI,
		Output:    os.Stderr,
		AddSource: false,
	}
}

// New creates a new slog.Logger with the given configuration.
func New(cfg Config) *slog.Logger {
	return slog.New(NewHandler(cfg))
}

// NewHandler builds the handler New wraps.
func NewHandler(cfg Config) slog.Handler {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	var level slog.Leveler = cfg.Level
	if cfg.LevelVar != nil {
		level = cfg.LevelVar
	}
	opts := &slog.HandlerOptions{
		Level:       level,
		AddSource:   cfg.AddSource,
		ReplaceAttr: replaceLevel,
	}

	switch cfg.Format {
	case FormatJSON:
		return slog.NewJSONHandler(cfg.Output, opts)
	case FormatText:
		return slog.NewTextHandler(cfg.Output, opts)
	default:
		return NewCLIHandler(cfg.Output, level)
	}
}

// Nop returns a no-op logger that discards all output.
// Use this when a logger is required but logging is disabled.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}

// ParseVerbosity parses one of the Verbosities names, case-insensitively.
// "WARN" is accepted for "WARNING".
func ParseVerbosity(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO", "":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	case "CRITICAL":
		return LevelCritical, nil
	}
	return LevelInfo, fmt.Errorf("unknown verbosity %q: must be one of %s", s, strings.Join(Verbosities, ", "))
}

// LevelName returns the verbosity name of l, e.g. "WARNING".
func LevelName(l Level) string {
	switch {
	case l >= LevelCritical:
		return "CRITICAL"
	case l >= LevelError:
		return "ERROR"
	case l >= LevelWarn:
		return "WARNING"
	case l >= LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// ParseFormat parses a log format string.
// Valid values: "cli", "text", "json".
// Returns FormatCLI if the string is not recognized.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatCLI
	}
}

// replaceLevel names LevelCritical in text and JSON output, which slog
// would otherwise print as "ERROR+4".
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if l, ok := a.Value.Any().(slog.Level); ok && l >= LevelCritical {
			a.Value = slog.StringValue("CRITICAL")
		}
	}
	return a
}
