package source

import (
	"fmt"
	"strings"
)

// ConfigNotFoundError reports that an explicitly requested configuration
// matched nothing. Path is absolute.
type ConfigNotFoundError struct {
	Path string
}

func (e *ConfigNotFoundError) Error() string {
	return "configuration not found at " + e.Path
}

// Kind names the error for user-facing reports.
func (e *ConfigNotFoundError) Kind() string { return "ConfigNotFoundError" }

// NotAFileError reports a match that is a directory or another non-regular
// file.
type NotAFileError struct {
	Path string
}

func (e *NotAFileError) Error() string {
	return fmt.Sprintf("configuration %s is not a file", e.Path)
}

// Kind names the error for user-facing reports.
func (e *NotAFileError) Kind() string { return "NotAFileError" }

// AmbiguousConfigError reports a pattern matching more than one file.
type AmbiguousConfigError struct {
	Pattern string
	Matches []string
}

func (e *AmbiguousConfigError) Error() string {
	return fmt.Sprintf("configuration pattern %s matches %d files: %s",
		e.Pattern, len(e.Matches), strings.Join(e.Matches, ", "))
}

// Kind names the error for user-facing reports.
func (e *AmbiguousConfigError) Kind() string { return "AmbiguousConfigError" }

// RemoteFetchError reports a failed download of a remote configuration.
// Status is zero when no HTTP response was received.
type RemoteFetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *RemoteFetchError) Error() string {
	msg := "fetch configuration from " + e.URL
	if e.Status != 0 {
		msg += fmt.Sprintf(": HTTP status %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RemoteFetchError) Unwrap() error { return e.Err }

// Kind names the error for user-facing reports.
func (e *RemoteFetchError) Kind() string { return "RemoteFetchError" }
