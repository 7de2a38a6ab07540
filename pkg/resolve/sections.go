package resolve

import (
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/getmockd/clix/pkg/format"
	"github.com/getmockd/clix/pkg/logging"
	"github.com/getmockd/clix/pkg/params"
)

// DefaultsSection is the name of the top-level section whose keys apply to
// any parameter of the invoked path.
const DefaultsSection = "defaults"

// Sections holds the configuration values that apply to an invoked path,
// already filtered down to declared parameters that accept configuration.
type Sections struct {
	// Nodes maps a node's dotted identity to the values of its own section.
	Nodes map[string]map[string]any
	// Defaults holds the values of the defaults section.
	Defaults map[string]any
}

// Lookup returns the configured value of the parameter name declared on
// node. The node's own section wins over the defaults section.
func (s Sections) Lookup(node *params.Node, name string) (any, bool) {
	if v, ok := s.Nodes[node.ID()][name]; ok {
		return v, true
	}
	v, ok := s.Defaults[name]
	return v, ok
}

// Empty reports whether no configuration value applies.
func (s Sections) Empty() bool {
	for _, sec := range s.Nodes {
		if len(sec) > 0 {
			return false
		}
	}
	return len(s.Defaults) == 0
}

// SelectSections extracts from doc the sections of the nodes on path, root
// first. The root's section is doc[<root name>]; a subcommand's section is
// found nested under its parent's or under its literal dotted identity.
// Sections of commands off the path are never visited.
//
// Keys naming a subcommand are skipped. Keys naming no declared parameter,
// or a parameter that refuses configuration, are logged as warnings and
// skipped. Other top-level keys of doc are logged at debug level.
func SelectSections(doc format.Document, path []*params.Node, defaultsSection string, logger *slog.Logger) Sections {
	log := logging.OrNop(logger)
	out := Sections{Nodes: make(map[string]map[string]any, len(path))}
	if len(path) == 0 || len(doc) == 0 {
		return out
	}
	root := path[0]
	if defaultsSection == root.Name {
		defaultsSection = ""
	}

	for _, key := range doc.Keys() {
		switch {
		case key == root.Name, key == defaultsSection:
		case strings.HasPrefix(key, root.Name+"."):
			// Dotted section of a subcommand; visited below if on the path.
		default:
			log.Debug("Ignore top-level configuration key.", "key", key)
		}
	}

	names := make([]string, 0, len(path))
	for _, node := range path {
		names = append(names, node.Name)
		section, ok := doc.Section(names...)
		if !ok {
			continue
		}
		out.Nodes[node.ID()] = filterSection(section, node, log)
	}

	if defaultsSection != "" {
		if raw, ok := doc[defaultsSection]; ok {
			if section, ok := format.AsMap(raw); ok {
				out.Defaults = filterDefaults(section, defaultsSection, path, log)
			} else {
				log.Warn("Configuration defaults section is not a table; skipped.", "section", defaultsSection)
			}
		}
	}
	return out
}

func filterSection(section map[string]any, node *params.Node, log *slog.Logger) map[string]any {
	kept := make(map[string]any, len(section))
	for _, key := range format.Document(section).Keys() {
		if _, isChild := node.Child(key); isChild {
			continue
		}
		spec, declared := node.Param(key)
		switch {
		case !declared:
			log.Warn("Unknown configuration key; skipped.", "section", node.ID(), "key", key)
		case !spec.AllowedInConfig():
			log.Warn("Parameter not allowed in configuration files; skipped.", "section", node.ID(), "key", key)
		default:
			kept[key] = section[key]
		}
	}
	return kept
}

// filterDefaults keeps the keys of the defaults section declared on path.
// Keys declared only on commands off the path are skipped silently; keys no
// command of the tree declares are reported.
func filterDefaults(section map[string]any, name string, path []*params.Node, log *slog.Logger) map[string]any {
	kept := make(map[string]any, len(section))
	for _, key := range format.Document(section).Keys() {
		idx := slices.IndexFunc(path, func(n *params.Node) bool {
			_, ok := n.Param(key)
			return ok
		})
		if idx < 0 {
			if declaredInTree(path[0], key) {
				log.Debug("Defaults key belongs to another command; skipped.", "section", name, "key", key)
			} else {
				log.Warn("Unknown configuration key; skipped.", "section", name, "key", key)
			}
			continue
		}
		if spec, _ := path[idx].Param(key); !spec.AllowedInConfig() {
			log.Warn("Parameter not allowed in configuration files; skipped.", "section", name, "key", key)
			continue
		}
		kept[key] = section[key]
	}
	return kept
}

var errFound = errors.New("found")

func declaredInTree(root *params.Node, key string) bool {
	err := root.Walk(func(n *params.Node) error {
		if _, ok := n.Param(key); ok {
			return errFound
		}
		return nil
	})
	return errors.Is(err, errFound)
}
