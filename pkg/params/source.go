package params

import "fmt"

// Source identifies where a resolved parameter value came from.
// Lower values take precedence over higher ones.
type Source int

// Parameter sources, in precedence order.
const (
	SourceCommandLine Source = iota + 1
	SourceEnvironment
	SourceConfigFile
	SourceDefault
)

// Sources lists every valid source from highest to lowest precedence.
var Sources = []Source{SourceCommandLine, SourceEnvironment, SourceConfigFile, SourceDefault}

func (s Source) String() string {
	switch s {
	case SourceCommandLine:
		return "COMMANDLINE"
	case SourceEnvironment:
		return "ENVIRONMENT"
	case SourceConfigFile:
		return "CONFIG_FILE"
	case SourceDefault:
		return "DEFAULT"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Valid reports whether s is one of the four known sources.
func (s Source) Valid() bool {
	return s >= SourceCommandLine && s <= SourceDefault
}

// Precedes reports whether s wins over other.
func (s Source) Precedes(other Source) bool {
	return s < other
}

// MarshalText renders the source name, so reports encode it as a string.
func (s Source) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid parameter source %d", int(s))
	}
	return []byte(s.String()), nil
}
