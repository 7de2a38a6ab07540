package format

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

type yamlAdapter struct{}

// YAML returns the adapter for .yaml and .yml files.
func YAML() Adapter { return yamlAdapter{} }

func (yamlAdapter) Name() string         { return "YAML" }
func (yamlAdapter) Extensions() []string { return []string{".yaml", ".yml"} }

func (yamlAdapter) Parse(data []byte) (Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Format: "YAML", Err: err}
	}
	if raw == nil {
		return Document{}, nil
	}
	m, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, &ParseError{Format: "YAML", Err: errors.New("top-level value must be a mapping")}
	}
	return Document(m), nil
}

func (yamlAdapter) Marshal(doc Document) ([]byte, error) {
	return yaml.Marshal(map[string]any(doc))
}

// normalize turns mappings with non-string keys into map[string]any, all
// the way down.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalize(item)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = normalize(item)
		}
		return t
	}
	return v
}
