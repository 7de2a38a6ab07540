// Package resolve assigns every parameter of an invoked command path its
// final value and the source that supplied it.
//
// Resolution runs in two steps. SelectSections picks, from the parsed
// configuration document, the section of each node on the path plus the
// optional defaults section. Merge then walks the path root first and, for
// each declared parameter, takes the first present source in this order:
//
//  1. the command line;
//  2. the first set environment variable bound to the parameter;
//  3. the node's configuration section, then the defaults section;
//  4. the declared default.
//
// The result is a Context of params.Resolved records that the provenance
// report and the running commands read from.
package resolve
