package params

import (
	"context"
	"fmt"
	"maps"
	"strings"
)

// RunFunc is the body of a command.
type RunFunc func(ctx context.Context, inv *Invocation) error

// Node is one command or subcommand of a command tree. A parent owns its
// children; a Node must not be shared between trees.
type Node struct {
	Name  string
	Short string
	Long  string

	Params   []*Spec
	Children []*Node
	Run      RunFunc

	parent *Node
}

// NewNode creates a command node.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// WithParams appends parameter declarations, keeping their order.
func (n *Node) WithParams(specs ...*Spec) *Node {
	n.Params = append(n.Params, specs...)
	return n
}

// WithChildren attaches subcommands.
func (n *Node) WithChildren(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
	}
	n.Children = append(n.Children, children...)
	return n
}

// WithRun sets the command body.
func (n *Node) WithRun(run RunFunc) *Node {
	n.Run = run
	return n
}

// Describe sets the short and long help texts.
func (n *Node) Describe(short, long string) *Node {
	n.Short = short
	n.Long = long
	return n
}

// Parent returns the owning node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Names returns the command names from the root to n.
func (n *Node) Names() []string {
	var names []string
	for cur := n; cur != nil; cur = cur.parent {
		names = append(names, cur.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// ID returns the dotted identity of the node, e.g. "root.sub.leaf".
func (n *Node) ID() string {
	return strings.Join(n.Names(), ".")
}

// Lineage returns the nodes from the root down to n.
func (n *Node) Lineage() []*Node {
	var path []*Node
	for cur := n; cur != nil; cur = cur.parent {
		path = append([]*Node{cur}, path...)
	}
	return path
}

// Param returns the declaration named name on this node.
func (n *Node) Param(name string) (*Spec, bool) {
	for _, s := range n.Params {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Child returns the direct subcommand named name.
func (n *Node) Child(name string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Find follows names below n and returns the node reached.
func (n *Node) Find(names ...string) (*Node, bool) {
	cur := n
	for _, name := range names {
		next, ok := cur.Child(name)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Walk visits n and its descendants depth-first, parents before children.
func (n *Node) Walk(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the whole tree below n: command names are set and unique
// among siblings, every declaration is valid, and no parameter name or flag
// appears twice along a root-to-leaf path.
func (n *Node) Validate() error {
	return n.validate(map[string]string{}, map[string]string{})
}

func (n *Node) validate(names, flags map[string]string) error {
	if n.Name == "" {
		return fmt.Errorf("command under %q has no name", parentID(n))
	}
	if strings.Contains(n.Name, ".") {
		return fmt.Errorf("command %q: name must not contain '.'", n.ID())
	}
	names = maps.Clone(names)
	flags = maps.Clone(flags)
	for _, s := range n.Params {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("command %q: %w", n.ID(), err)
		}
		if owner, dup := names[s.Name]; dup {
			return fmt.Errorf("command %q: parameter %q already declared on %q", n.ID(), s.Name, owner)
		}
		if owner, dup := flags[s.FlagName()]; dup {
			return fmt.Errorf("command %q: flag --%s already declared on %q", n.ID(), s.FlagName(), owner)
		}
		if s.Short != "" {
			if owner, dup := flags["-"+s.Short]; dup {
				return fmt.Errorf("command %q: shorthand -%s already declared on %q", n.ID(), s.Short, owner)
			}
			flags["-"+s.Short] = n.ID()
		}
		names[s.Name] = n.ID()
		flags[s.FlagName()] = n.ID()
	}
	seen := make(map[string]bool, len(n.Children))
	for _, c := range n.Children {
		if seen[c.Name] {
			return fmt.Errorf("command %q: duplicate subcommand %q", n.ID(), c.Name)
		}
		seen[c.Name] = true
		c.parent = n
		if err := c.validate(names, flags); err != nil {
			return err
		}
	}
	return nil
}

func parentID(n *Node) string {
	if n.parent == nil {
		return ""
	}
	return n.parent.ID()
}
