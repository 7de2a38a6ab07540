package format

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
)

type iniAdapter struct{}

// INI returns the adapter for .ini files. Dotted section names such as
// [cli.sub] become nested sections and keys outside any section become
// top-level keys. All values are strings.
func INI() Adapter { return iniAdapter{} }

func (iniAdapter) Name() string         { return "INI" }
func (iniAdapter) Extensions() []string { return []string{".ini"} }

func (iniAdapter) Parse(data []byte) (Document, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{}, data)
	if err != nil {
		return nil, &ParseError{Format: "INI", Err: err}
	}
	doc := Document{}
	for _, sec := range cfg.Sections() {
		target := map[string]any(doc)
		if sec.Name() != ini.DefaultSection {
			target = sectionAt(doc, strings.Split(sec.Name(), "."))
		}
		for _, key := range sec.Keys() {
			target[key.Name()] = key.Value()
		}
	}
	return doc, nil
}

// sectionAt returns the nested mapping for names, creating it as needed.
func sectionAt(doc Document, names []string) map[string]any {
	cur := map[string]any(doc)
	for _, name := range names {
		next, ok := cur[name].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[name] = next
		}
		cur = next
	}
	return cur
}

func (iniAdapter) Marshal(doc Document) ([]byte, error) {
	cfg := ini.Empty()
	if err := writeINISection(cfg, "", doc); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeINISection(cfg *ini.File, name string, values map[string]any) error {
	sec := cfg.Section(name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var subsections []string
	for _, k := range keys {
		if _, ok := AsMap(values[k]); ok {
			subsections = append(subsections, k)
			continue
		}
		if _, err := sec.NewKey(k, iniValue(values[k])); err != nil {
			return fmt.Errorf("write key %q: %w", k, err)
		}
	}
	for _, k := range subsections {
		child, _ := AsMap(values[k])
		full := k
		if name != "" {
			full = name + "." + k
		}
		if err := writeINISection(cfg, full, child); err != nil {
			return err
		}
	}
	return nil
}

func iniValue(v any) string {
	switch t := v.(type) {
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(t, ",")
	}
	return fmt.Sprint(v)
}
