// Package flags binds parameter declarations to pflag values.
package flags

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/getmockd/clix/pkg/params"
)

// Value implements pflag.Value for one declared parameter. It keeps the
// text given on the command line; conversion to the declared type happens
// during resolution so that a bad value is reported like any other source.
type Value struct {
	spec   *params.Spec
	raw    string
	items  []string
	wasSet bool
}

// NewValue returns the flag value of spec.
func NewValue(spec *params.Spec) *Value {
	return &Value{spec: spec}
}

// String returns the current value as text. Before any Set it renders the
// declared default.
func (v *Value) String() string {
	if !v.wasSet {
		return Display(v.spec.ZeroDefault())
	}
	if v.spec.Type == params.StringSlice {
		return strings.Join(v.items, ",")
	}
	return v.raw
}

// Set records a value. List parameters accumulate across repeated flags and
// split on commas.
func (v *Value) Set(s string) error {
	if v.spec.Type == params.StringSlice {
		if !v.wasSet {
			v.items = nil
		}
		for _, item := range strings.Split(s, ",") {
			v.items = append(v.items, strings.TrimSpace(item))
		}
	}
	v.raw = s
	v.wasSet = true
	return nil
}

// Type is "bool" for booleans, so cobra can read the help flag, and the
// metavar for every other type, which pflag prints after the flag name.
func (v *Value) Type() string {
	if v.spec.Type == params.Bool {
		return "bool"
	}
	return v.spec.Placeholder()
}

// Raw returns what was passed on the command line: a string, or a
// []string for list parameters.
func (v *Value) Raw() any {
	if v.spec.Type == params.StringSlice {
		return append([]string(nil), v.items...)
	}
	return v.raw
}

// Spec returns the declaration bound to the value.
func (v *Value) Spec() *params.Spec { return v.spec }

// Add registers spec on fs and returns the created flag. Booleans also get
// a hidden --no-<flag> that sets them to false.
func Add(fs *pflag.FlagSet, spec *params.Spec, usage string) *pflag.Flag {
	value := NewValue(spec)
	fs.VarP(value, spec.FlagName(), spec.Short, usage)
	flag := fs.Lookup(spec.FlagName())
	if spec.Type == params.Bool {
		flag.NoOptDefVal = "true"
		addNegation(fs, spec.FlagName())
	}
	return flag
}

// NegationPrefix starts the name of the flag that turns a boolean off.
const NegationPrefix = "no-"

func addNegation(fs *pflag.FlagSet, target string) {
	name := NegationPrefix + target
	if fs.Lookup(name) != nil {
		return
	}
	fs.Var(&negation{fs: fs, target: target}, name, "Unset --"+target+".")
	neg := fs.Lookup(name)
	neg.NoOptDefVal = "true"
	neg.Hidden = true
}

// negation sets its target boolean flag to the opposite of its own value.
type negation struct {
	fs     *pflag.FlagSet
	target string
}

func (n *negation) String() string { return "false" }

func (n *negation) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	return n.fs.Set(n.target, strconv.FormatBool(!b))
}

func (n *negation) Type() string { return "bool" }

// Lookup returns the Value registered under spec's flag name on fs.
func Lookup(fs *pflag.FlagSet, spec *params.Spec) (*Value, bool) {
	flag := fs.Lookup(spec.FlagName())
	if flag == nil {
		return nil, false
	}
	v, ok := flag.Value.(*Value)
	return v, ok
}

// Changed reports whether spec's flag was passed on the command line, and
// returns its raw value.
func Changed(fs *pflag.FlagSet, spec *params.Spec) (any, bool) {
	flag := fs.Lookup(spec.FlagName())
	if flag == nil || !flag.Changed {
		return nil, false
	}
	v, ok := flag.Value.(*Value)
	if !ok {
		return flag.Value.String(), true
	}
	return v.Raw(), true
}

// Display renders a parameter value for help texts and tables.
func Display(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, ",")
	}
	return fmt.Sprint(v)
}
