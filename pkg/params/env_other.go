//go:build !windows

package params

// envKey keeps names as written: POSIX environment variables are
// case-sensitive, both for user-declared and auto-generated names.
func envKey(name string) string {
	return name
}
