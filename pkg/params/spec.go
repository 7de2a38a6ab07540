package params

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Type is the declared type of a parameter.
type Type int

// Supported parameter types.
const (
	String Type = iota
	Int
	Float
	Bool
	Duration
	StringSlice
	Choice
)

func (t Type) String() string {
	switch t {
	case String:
		return "str"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Duration:
		return "duration"
	case StringSlice:
		return "list[str]"
	case Choice:
		return "choice"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Spec declares one parameter of a command.
//
// The zero value of the optional fields gives a string option that can be
// set from the command line, the environment (auto-generated variable name)
// and configuration files, and that is handed to the running command.
type Spec struct {
	// Name is the parameter key. It is used in configuration files and as
	// the last component of the parameter's qualified name.
	Name string

	// Flag is the long flag name. Defaults to Name with '_' replaced by '-'.
	Flag string

	// Short is an optional one-letter shorthand.
	Short string

	// Metavar is the placeholder shown after the flag in help and reports.
	Metavar string

	Type    Type
	Choices []string
	Default any
	Help    string

	// EnvVars are user-declared environment variable names, checked before
	// the auto-generated one, in declaration order.
	EnvVars []string

	// NoAutoEnv disables the auto-generated <PREFIX>_<NAME> variable.
	NoAutoEnv bool

	// ShowEnv lists the environment variables in the flag's help text.
	ShowEnv bool

	// NoConfig forbids setting this parameter from a configuration file.
	NoConfig bool

	// Hidden keeps the value out of the running command's Values.
	Hidden bool
}

// FlagName returns the long flag name for the parameter.
func (s *Spec) FlagName() string {
	if s.Flag != "" {
		return s.Flag
	}
	return strings.ReplaceAll(s.Name, "_", "-")
}

// AllowedInConfig reports whether configuration files may set the parameter.
func (s *Spec) AllowedInConfig() bool {
	return !s.NoConfig
}

// Exposed reports whether the resolved value is handed to the command.
func (s *Spec) Exposed() bool {
	return !s.Hidden
}

// Usage renders the flag declaration, e.g. "-C, --config CONFIG_PATH".
func (s *Spec) Usage() string {
	var b strings.Builder
	if s.Short != "" {
		b.WriteString("-" + s.Short + ", ")
	}
	b.WriteString("--" + s.FlagName())
	if s.Type != Bool {
		b.WriteString(" " + s.Placeholder())
	}
	return b.String()
}

// Placeholder returns the metavar shown after the flag, e.g. "INTEGER".
func (s *Spec) Placeholder() string {
	if s.Metavar != "" {
		return s.Metavar
	}
	switch s.Type {
	case Int:
		return "INTEGER"
	case Float:
		return "FLOAT"
	case Duration:
		return "DURATION"
	case Choice:
		return "[" + strings.Join(s.Choices, "|") + "]"
	default:
		return "TEXT"
	}
}

// ZeroDefault returns the default value, or the zero value of the declared
// type when no default was given.
func (s *Spec) ZeroDefault() any {
	if s.Default != nil {
		return s.Default
	}
	switch s.Type {
	case Int:
		return 0
	case Float:
		return 0.0
	case Bool:
		return false
	case Duration:
		return time.Duration(0)
	case StringSlice:
		return []string{}
	default:
		return ""
	}
}

// Validate checks the declaration and normalizes its default value to the
// declared type.
func (s *Spec) Validate() error {
	if s.Name == "" {
		return errors.New("parameter name is required")
	}
	if s.Type < String || s.Type > Choice {
		return fmt.Errorf("parameter %q: unknown type %d", s.Name, int(s.Type))
	}
	if s.Type == Choice && len(s.Choices) == 0 {
		return fmt.Errorf("parameter %q: choice type needs at least one choice", s.Name)
	}
	if len(s.Short) > 1 {
		return fmt.Errorf("parameter %q: shorthand %q must be a single letter", s.Name, s.Short)
	}
	if s.Default != nil {
		v, err := Coerce(s, s.Default)
		if err != nil {
			return fmt.Errorf("parameter %q: invalid default: %w", s.Name, err)
		}
		s.Default = v
	}
	return nil
}
