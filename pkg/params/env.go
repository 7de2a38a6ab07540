package params

import (
	"os"
	"strings"
)

// NormalizeEnvVar uppercases name, replaces every run of characters that are
// not ASCII letters or digits by a single underscore, and trims underscores
// at both ends.
func NormalizeEnvVar(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pending := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			r -= 'a' - 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte('_')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// AutoEnvVar derives the environment variable bound to a parameter from the
// command prefix, e.g. AutoEnvVar("my-cli", "int_param") is MY_CLI_INT_PARAM.
func AutoEnvVar(prefix, name string) string {
	return NormalizeEnvVar(prefix + "_" + name)
}

// ExtendEnvVars concatenates both lists, dropping empty names and
// duplicates while keeping first occurrences in order.
func ExtendEnvVars(first, second []string) []string {
	seen := make(map[string]bool, len(first)+len(second))
	out := make([]string, 0, len(first)+len(second))
	for _, list := range [][]string{first, second} {
		for _, name := range list {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// Env is an immutable snapshot of environment variables. Key comparison
// follows the platform policy of envKey.
type Env struct {
	vars map[string]string
}

// EnvFromOS snapshots the current process environment.
func EnvFromOS() Env {
	return EnvFromList(os.Environ())
}

// EnvFromList builds a snapshot from KEY=VALUE entries. Later entries win.
func EnvFromList(entries []string) Env {
	vars := make(map[string]string, len(entries))
	for _, kv := range entries {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[envKey(k)] = v
	}
	return Env{vars: vars}
}

// EnvFromMap builds a snapshot from a map, mostly for tests.
func EnvFromMap(m map[string]string) Env {
	vars := make(map[string]string, len(m))
	for k, v := range m {
		vars[envKey(k)] = v
	}
	return Env{vars: vars}
}

// WithFallback returns a snapshot holding e's variables plus those of
// fallback that e does not set.
func (e Env) WithFallback(fallback Env) Env {
	vars := make(map[string]string, len(e.vars)+len(fallback.vars))
	for k, v := range fallback.vars {
		vars[k] = v
	}
	for k, v := range e.vars {
		vars[k] = v
	}
	return Env{vars: vars}
}

// Lookup returns the value bound to name and whether it is set.
func (e Env) Lookup(name string) (string, bool) {
	v, ok := e.vars[envKey(name)]
	return v, ok
}

// First returns the first of names that is set, in order.
func (e Env) First(names []string) (name, value string, ok bool) {
	for _, n := range names {
		if v, found := e.Lookup(n); found {
			return n, v, true
		}
	}
	return "", "", false
}

// EnvPrefix returns the prefix of the auto-generated variables of n's
// parameters: rootPrefix (or the root command name when empty), followed
// by the name of each subcommand down to n, normalized.
func EnvPrefix(n *Node, rootPrefix string) string {
	lineage := n.Lineage()
	if rootPrefix == "" {
		rootPrefix = lineage[0].Name
	}
	parts := []string{rootPrefix}
	for _, node := range lineage[1:] {
		parts = append(parts, node.Name)
	}
	return NormalizeEnvVar(strings.Join(parts, "_"))
}

// BoundEnvVars lists the variables checked for s, in lookup order: the
// user-declared names, then the auto-generated one unless disabled.
func BoundEnvVars(s *Spec, prefix string) []string {
	var auto []string
	if !s.NoAutoEnv {
		auto = []string{AutoEnvVar(prefix, s.Name)}
	}
	return ExtendEnvVars(s.EnvVars, auto)
}
