package resolve

import (
	"errors"

	"github.com/getmockd/clix/pkg/params"
)

// Input is everything a merge reads. It is never modified.
type Input struct {
	// Path lists the invoked nodes, root first.
	Path []*params.Node

	// CommandLine holds the values explicitly passed on the command line,
	// keyed by qualified parameter name.
	CommandLine map[string]any

	Env params.Env

	// EnvPrefix replaces the root command name in auto-generated variable
	// names.
	EnvPrefix string

	Sections Sections
}

// Merge resolves every parameter declared on Path, root first and in
// declaration order. For each parameter the first present source wins:
// command line, environment, configuration section, default.
//
// Every record is complete before it is appended. On a coercion failure
// Merge returns a *params.TypeCoercionError naming the parameter and the
// source, and no context.
func Merge(in Input) (*Context, error) {
	ctx := newContext()
	for _, node := range in.Path {
		prefix := params.EnvPrefix(node, in.EnvPrefix)
		for _, spec := range node.Params {
			r, err := mergeOne(in, node, spec, prefix)
			if err != nil {
				return nil, err
			}
			ctx.add(r)
		}
	}
	return ctx, nil
}

func mergeOne(in Input, node *params.Node, spec *params.Spec, prefix string) (*params.Resolved, error) {
	r := &params.Resolved{
		ID:      QualifiedName(node, spec),
		Command: node.ID(),
		Spec:    spec,
		Default: spec.ZeroDefault(),
		EnvVars: params.BoundEnvVars(spec, prefix),
	}

	raw, source, envVar := pick(in, node, spec, r.ID, r.EnvVars)
	r.Raw = raw
	r.Source = source
	r.EnvVar = envVar

	if source == params.SourceDefault {
		r.Value = r.Default
		return r, nil
	}
	v, err := params.Coerce(spec, raw)
	if err != nil {
		var cerr *params.TypeCoercionError
		if errors.As(err, &cerr) {
			cerr.Param = r.ID
			cerr.Source = source
		}
		return nil, err
	}
	r.Value = v
	return r, nil
}

// pick returns the raw value of the first present source.
func pick(in Input, node *params.Node, spec *params.Spec, id string, envVars []string) (any, params.Source, string) {
	if v, ok := in.CommandLine[id]; ok {
		return v, params.SourceCommandLine, ""
	}
	for _, name := range envVars {
		v, ok := in.Env.Lookup(name)
		if !ok {
			continue
		}
		// An empty variable is unset, except for booleans where it
		// means false.
		if v == "" && spec.Type != params.Bool {
			continue
		}
		return v, params.SourceEnvironment, name
	}
	if spec.AllowedInConfig() {
		if v, ok := in.Sections.Lookup(node, spec.Name); ok {
			return v, params.SourceConfigFile, ""
		}
	}
	return nil, params.SourceDefault, ""
}

// QualifiedName is the dotted identity of spec on node, e.g.
// "my-cli.sub.int_param".
func QualifiedName(node *params.Node, spec *params.Spec) string {
	return node.ID() + "." + spec.Name
}
