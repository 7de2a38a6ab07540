package format

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

type tomlAdapter struct{}

// TOML returns the adapter for .toml files.
func TOML() Adapter { return tomlAdapter{} }

func (tomlAdapter) Name() string         { return "TOML" }
func (tomlAdapter) Extensions() []string { return []string{".toml"} }

func (tomlAdapter) Parse(data []byte) (Document, error) {
	doc := Document{}
	if err := toml.Unmarshal(data, (*map[string]any)(&doc)); err != nil {
		perr := &ParseError{Format: "TOML", Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return doc, nil
}

func (tomlAdapter) Marshal(doc Document) ([]byte, error) {
	return toml.Marshal(map[string]any(doc))
}
