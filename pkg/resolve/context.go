package resolve

import (
	"log/slog"
	"slices"

	"github.com/getmockd/clix/pkg/format"
	"github.com/getmockd/clix/pkg/params"
)

// Context is the resolved state of one invocation: one record per declared
// parameter of the invoked path. It is read-only once returned.
type Context struct {
	params []*params.Resolved
	byID   map[string]*params.Resolved
}

func newContext() *Context {
	return &Context{byID: make(map[string]*params.Resolved)}
}

func (c *Context) add(r *params.Resolved) {
	c.params = append(c.params, r)
	c.byID[r.ID] = r
}

// Params returns the records in resolution order: root first, then
// declaration order.
func (c *Context) Params() []*params.Resolved {
	return slices.Clone(c.params)
}

// Lookup returns the record with the qualified name id.
func (c *Context) Lookup(id string) (*params.Resolved, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// ForNode returns the exposed parameters declared on node.
func (c *Context) ForNode(node *params.Node) params.Values {
	id := node.ID()
	var records []*params.Resolved
	for _, r := range c.params {
		if r.Command == id && r.Spec.Exposed() {
			records = append(records, r)
		}
	}
	return params.NewValues(records)
}

// Len returns the number of resolved parameters.
func (c *Context) Len() int { return len(c.params) }

// Resolver combines section selection and merging. The zero value uses
// no defaults section and the root command name as environment prefix.
type Resolver struct {
	// DefaultsSection names the top-level section applying to any
	// parameter of the invoked path. Empty disables it.
	DefaultsSection string
	EnvPrefix       string
	Logger          *slog.Logger
}

// Resolve computes the final value and source of every parameter on path.
// It only reads its arguments: calling it twice with the same inputs gives
// equal contexts.
func (r *Resolver) Resolve(path []*params.Node, doc format.Document, cmdline map[string]any, env params.Env) (*Context, error) {
	return Merge(Input{
		Path:        path,
		CommandLine: cmdline,
		Env:         env,
		EnvPrefix:   r.EnvPrefix,
		Sections:    SelectSections(doc, path, r.DefaultsSection, r.Logger),
	})
}
