package format

import (
	"maps"
	"slices"
	"strings"
)

// Document is the nested mapping parsed from a configuration file: section
// names map to nested sections or to parameter values.
type Document map[string]any

// Keys returns the top-level keys, sorted.
func (d Document) Keys() []string {
	return slices.Sorted(maps.Keys(d))
}

// Section returns the mapping reached by following names. A section is found
// either by walking nested mappings or under the literal dotted key at the
// top level; when both exist the literal key's entries win.
func (d Document) Section(names ...string) (map[string]any, bool) {
	if len(names) == 0 {
		return d, true
	}
	nested, nestedOK := walk(d, names)
	if len(names) == 1 {
		return nested, nestedOK
	}
	flat, flatOK := AsMap(d[strings.Join(names, ".")])
	switch {
	case nestedOK && flatOK:
		merged := maps.Clone(nested)
		maps.Copy(merged, flat)
		return merged, true
	case flatOK:
		return flat, true
	default:
		return nested, nestedOK
	}
}

func walk(m map[string]any, names []string) (map[string]any, bool) {
	cur := m
	for _, name := range names {
		next, ok := AsMap(cur[name])
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// AsMap reports whether v is a mapping and returns it.
func AsMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Document:
		return m, true
	}
	return nil, false
}
