package format

import (
	"bytes"
	"errors"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
)

type jsonAdapter struct{}

// JSON returns the adapter for .json files. Integers decode as int64 and
// decimals as float64.
func JSON() Adapter { return jsonAdapter{} }

func (jsonAdapter) Name() string         { return "JSON" }
func (jsonAdapter) Extensions() []string { return []string{".json"} }

func (jsonAdapter) Parse(data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, nil
	}
	raw, err := oj.Parse(data)
	if err != nil {
		return nil, &ParseError{Format: "JSON", Err: err}
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, &ParseError{Format: "JSON", Err: errors.New("top-level value must be an object")}
	}
	return Document(m), nil
}

func (jsonAdapter) Marshal(doc Document) ([]byte, error) {
	out := oj.JSON(map[string]any(doc), &ojg.Options{Indent: 2, Sort: true})
	return []byte(out + "\n"), nil
}
