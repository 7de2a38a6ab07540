package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_Section(t *testing.T) {
	doc := Document{
		"cli": map[string]any{
			"verbosity": "INFO",
			"sub": map[string]any{
				"int_param": 1,
				"name":      "nested",
			},
		},
		"cli.sub": map[string]any{
			"name": "dotted",
		},
		"cli.only-dotted": map[string]any{
			"flag": true,
		},
		"scalar": "x",
	}

	tests := []struct {
		name   string
		path   []string
		want   map[string]any
		wantOK bool
	}{
		{
			name:   "root",
			path:   nil,
			want:   map[string]any(doc),
			wantOK: true,
		},
		{
			name:   "top-level section",
			path:   []string{"cli"},
			want:   doc["cli"].(map[string]any),
			wantOK: true,
		},
		{
			name:   "dotted key wins over nested",
			path:   []string{"cli", "sub"},
			want:   map[string]any{"int_param": 1, "name": "dotted"},
			wantOK: true,
		},
		{
			name:   "dotted key only",
			path:   []string{"cli", "only-dotted"},
			want:   map[string]any{"flag": true},
			wantOK: true,
		},
		{
			name:   "missing",
			path:   []string{"cli", "other"},
			wantOK: false,
		},
		{
			name:   "scalar is not a section",
			path:   []string{"scalar"},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := doc.Section(tt.path...)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDocument_SectionDoesNotMutate(t *testing.T) {
	doc := Document{
		"cli": map[string]any{"sub": map[string]any{"a": 1}},
		"cli.sub": map[string]any{"a": 2},
	}
	got, ok := doc.Section("cli", "sub")
	assert.True(t, ok)
	assert.Equal(t, 2, got["a"])
	assert.Equal(t, 1, doc["cli"].(map[string]any)["sub"].(map[string]any)["a"])
}

func TestDocument_Keys(t *testing.T) {
	doc := Document{"b": 1, "a": 2, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, doc.Keys())
}
