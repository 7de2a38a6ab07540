//go:build windows

package params

import "strings"

// envKey upper-cases names: Windows environment variables are
// case-insensitive, so "Magic", "MAGIC" and "magic" are the same variable.
func envKey(name string) string {
	return strings.ToUpper(name)
}
