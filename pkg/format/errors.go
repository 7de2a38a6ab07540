package format

import (
	"fmt"
	"strings"
)

// ParseError reports malformed content in a configuration file.
type ParseError struct {
	Format   string
	Location string
	Line     int
	Column   int
	Err      error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s", e.Format)
	if e.Location != "" {
		b.WriteString(" in " + e.Location)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d, column %d)", e.Line, e.Column)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Kind names the error for user-facing reports.
func (e *ParseError) Kind() string { return "ParseError" }

// UnsupportedFormatError reports an extension no adapter is registered for.
type UnsupportedFormatError struct {
	Extension string
	Location  string
	Supported []string
}

func (e *UnsupportedFormatError) Error() string {
	ext := e.Extension
	if ext == "" {
		ext = "(none)"
	}
	msg := fmt.Sprintf("unsupported configuration format %q", ext)
	if e.Location != "" {
		msg += " for " + e.Location
	}
	if len(e.Supported) > 0 {
		msg += "; supported extensions: " + strings.Join(e.Supported, ", ")
	}
	return msg
}

// Kind names the error for user-facing reports.
func (e *UnsupportedFormatError) Kind() string { return "UnsupportedFormatError" }
