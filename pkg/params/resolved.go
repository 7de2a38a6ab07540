package params

import (
	"io"
	"log/slog"
	"slices"
	"time"
)

// Resolved is the final state of one declared parameter for an invocation.
// It is built in one step by the merger and never modified afterwards.
type Resolved struct {
	// ID is the qualified name: the command path and the parameter name
	// joined by dots, e.g. "my-cli.sub.int_param".
	ID      string
	Command string
	Spec    *Spec

	Value   any
	Default any
	Source  Source
	// Raw is the input the value was coerced from.
	Raw any

	// EnvVars are the environment variables bound to the parameter, in
	// lookup order. Empty when environment injection is disabled.
	EnvVars []string
	// EnvVar is the variable that supplied the value, if any.
	EnvVar string
}

// Values is a read-only view over resolved parameters, keyed by parameter
// name.
type Values struct {
	byName map[string]*Resolved
	order  []string
}

// NewValues indexes records by parameter name. Later records with the same
// name replace earlier ones.
func NewValues(records []*Resolved) Values {
	v := Values{byName: make(map[string]*Resolved, len(records))}
	for _, r := range records {
		if _, dup := v.byName[r.Spec.Name]; !dup {
			v.order = append(v.order, r.Spec.Name)
		}
		v.byName[r.Spec.Name] = r
	}
	return v
}

// Names lists the parameter names in declaration order.
func (v Values) Names() []string { return slices.Clone(v.order) }

// Lookup returns the record for name.
func (v Values) Lookup(name string) (*Resolved, bool) {
	r, ok := v.byName[name]
	return r, ok
}

// Get returns the value of name, or nil when it is unknown.
func (v Values) Get(name string) any {
	if r, ok := v.byName[name]; ok {
		return r.Value
	}
	return nil
}

// Source returns the winning source for name, or 0 when it is unknown.
func (v Values) Source(name string) Source {
	if r, ok := v.byName[name]; ok {
		return r.Source
	}
	return 0
}

func (v Values) String(name string) string {
	s, _ := v.Get(name).(string)
	return s
}

func (v Values) Int(name string) int {
	n, _ := v.Get(name).(int)
	return n
}

func (v Values) Float(name string) float64 {
	f, _ := v.Get(name).(float64)
	return f
}

func (v Values) Bool(name string) bool {
	b, _ := v.Get(name).(bool)
	return b
}

func (v Values) Duration(name string) time.Duration {
	d, _ := v.Get(name).(time.Duration)
	return d
}

func (v Values) Strings(name string) []string {
	s, _ := v.Get(name).([]string)
	return slices.Clone(s)
}

// Invocation is what a command body receives once every parameter on the
// invoked path has been resolved.
type Invocation struct {
	// Command is the dotted identity of the running node.
	Command string
	// Args are the positional arguments left after flag parsing.
	Args []string
	// RawArgs are the arguments as given on the command line.
	RawArgs []string

	// Values holds the exposed parameters of the running node.
	Values Values
	// Resolved holds every parameter of the invoked path, root first.
	Resolved []*Resolved

	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
}
