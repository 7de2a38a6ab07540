package format

import (
	"fmt"
	"path"
	"strings"
)

// Adapter converts between raw file content and a Document.
type Adapter interface {
	// Name is a short label such as "TOML".
	Name() string
	// Extensions lists the handled file extensions, with leading dot.
	Extensions() []string
	Parse(data []byte) (Document, error)
	// Marshal serializes doc. The result parses back to an equivalent
	// Document; comments and key order are not preserved.
	Marshal(doc Document) ([]byte, error)
}

// Registry maps file extensions to adapters. Populate it at startup and
// only read from it afterwards.
type Registry struct {
	byExt map[string]Adapter
	exts  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]Adapter)}
}

// Builtin returns a registry holding the TOML, YAML, JSON, INI and XML
// adapters, in that order.
func Builtin() *Registry {
	r := NewRegistry()
	for _, a := range []Adapter{TOML(), YAML(), JSON(), INI(), XML()} {
		if err := r.Register(a); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a to the registry. It fails if one of its extensions is
// already taken.
func (r *Registry) Register(a Adapter) error {
	exts := a.Extensions()
	if len(exts) == 0 {
		return fmt.Errorf("adapter %s declares no extension", a.Name())
	}
	for _, ext := range exts {
		ext = normalizeExt(ext)
		if prev, ok := r.byExt[ext]; ok {
			return fmt.Errorf("extension %s already registered by %s", ext, prev.Name())
		}
	}
	for _, ext := range exts {
		ext = normalizeExt(ext)
		r.byExt[ext] = a
		r.exts = append(r.exts, ext)
	}
	return nil
}

// Lookup returns the adapter registered for ext.
func (r *Registry) Lookup(ext string) (Adapter, error) {
	if a, ok := r.byExt[normalizeExt(ext)]; ok {
		return a, nil
	}
	return nil, &UnsupportedFormatError{Extension: ext, Supported: r.Extensions()}
}

// ForPath returns the adapter matching the extension of p, which may be a
// local path or a URL path.
func (r *Registry) ForPath(p string) (Adapter, error) {
	ext := path.Ext(strings.ReplaceAll(p, "\\", "/"))
	if a, ok := r.byExt[normalizeExt(ext)]; ok {
		return a, nil
	}
	return nil, &UnsupportedFormatError{Extension: ext, Location: p, Supported: r.Extensions()}
}

// Extensions lists registered extensions in registration order.
func (r *Registry) Extensions() []string {
	return append([]string(nil), r.exts...)
}

// GlobSuffix renders the extensions as a brace pattern, e.g.
// "*.{toml,yaml,yml,json,ini,xml}".
func (r *Registry) GlobSuffix() string {
	names := make([]string, len(r.exts))
	for i, ext := range r.exts {
		names[i] = strings.TrimPrefix(ext, ".")
	}
	if len(names) == 1 {
		return "*." + names[0]
	}
	return "*.{" + strings.Join(names, ",") + "}"
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
