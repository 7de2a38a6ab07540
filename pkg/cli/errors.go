package cli

import (
	"errors"
	"fmt"
)

// Exit codes returned by App.Execute.
const (
	ExitOK = 0
	// ExitCommandError is returned when a command body fails.
	ExitCommandError = 1
	// ExitUsage is returned for usage errors and for any failure while
	// locating, loading or resolving configuration.
	ExitUsage = 2
)

// kinded is implemented by the typed errors of the format, source and
// params packages.
type kinded interface {
	error
	Kind() string
}

// ResolutionError wraps a failure that happened before any command body
// ran: locating, loading or parsing the configuration, or coercing a
// parameter value.
type ResolutionError struct {
	Err error
}

func (e *ResolutionError) Error() string { return e.Err.Error() }
func (e *ResolutionError) Unwrap() error { return e.Err }

// Kind returns the kind of the wrapped error, e.g. "ConfigNotFoundError",
// or "ConfigError" when it has none.
func (e *ResolutionError) Kind() string {
	var k kinded
	if errors.As(e.Err, &k) {
		return k.Kind()
	}
	return "ConfigError"
}

// CommandError wraps an error returned by a command body.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode maps an error returned while executing to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var cerr *CommandError
	if errors.As(err, &cerr) {
		return ExitCommandError
	}
	return ExitUsage
}
