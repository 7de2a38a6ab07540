// Package format parses configuration files into Documents.
//
// Each serialization format is an Adapter selected by file extension from a
// Registry. Registries are explicit values built once at startup; there is
// no package-level registry. Builtin returns one holding every bundled
// adapter:
//
//   - TOML (.toml) - github.com/pelletier/go-toml/v2
//   - YAML (.yaml, .yml) - gopkg.in/yaml.v3
//   - JSON (.json) - github.com/ohler55/ojg
//   - INI (.ini) - gopkg.in/ini.v1
//   - XML (.xml) - github.com/beevik/etree
//
// Adding a format only requires registering another Adapter.
package format
