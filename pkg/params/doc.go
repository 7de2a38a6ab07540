// Package params declares the parameters of a command tree and holds the
// values they resolve to.
//
// Commands are described with Node values, each owning an ordered list of
// Spec declarations. Resolution (see package resolve) turns every Spec on the
// invoked path into a Resolved record tagged with the Source that supplied
// its value:
//
//  1. COMMANDLINE - explicitly passed flag
//  2. ENVIRONMENT - first bound environment variable
//  3. CONFIG_FILE - matched configuration section
//  4. DEFAULT     - programmatic default
//
// Key types:
//
//   - Spec: a single parameter declaration (name, type, default, env vars)
//   - Node: one command or subcommand and its declared parameters
//   - Resolved: the final value of a parameter and its winning Source
//   - Values: read-only view handed to a running command
//   - Env: immutable snapshot of the process environment
package params
