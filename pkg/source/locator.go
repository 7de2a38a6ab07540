// Package source finds the configuration file a pattern designates, on the
// local file system or at a remote URL, and reads its content.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/getmockd/clix/pkg/logging"
)

// DefaultTimeout bounds a remote fetch when Locator.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// maxRemoteSize caps the body read from a remote configuration.
const maxRemoteSize = 10 << 20

// Candidate is a located configuration, not yet read.
type Candidate struct {
	// Location is an absolute local path or a URL.
	Location string
	Remote   bool
}

// Ext returns the lowercased extension of the candidate's path, with the
// leading dot. Query strings and fragments of URLs are ignored.
func (c *Candidate) Ext() string {
	p := c.Location
	if c.Remote {
		if u, err := url.Parse(c.Location); err == nil {
			p = u.Path
		}
		return strings.ToLower(path.Ext(p))
	}
	return strings.ToLower(filepath.Ext(p))
}

// Locator resolves configuration patterns. The zero value is ready to use.
type Locator struct {
	// Client performs remote fetches. Defaults to a client with no timeout of
	// its own; Timeout applies per request.
	Client *http.Client

	// Timeout bounds a remote fetch. Defaults to DefaultTimeout.
	Timeout time.Duration

	Logger *slog.Logger
}

// IsURL reports whether pattern designates a remote http or https
// resource.
func IsURL(pattern string) bool {
	u, err := url.Parse(pattern)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Locate resolves pattern to at most one candidate. Local patterns may use
// "*", "**", "?", "[...]" and "{a,b}"; a leading "~/" is the user's home
// directory. When nothing matches, Locate returns nil and no error unless
// required is set.
func (l *Locator) Locate(ctx context.Context, pattern string, required bool) (*Candidate, error) {
	log := logging.OrNop(l.Logger)

	if IsURL(pattern) {
		log.Debug("Pattern is a remote URL.")
		return &Candidate{Location: pattern, Remote: true}, nil
	}
	log.Debug("Pattern is not an URL.")

	dir, glob, err := splitPattern(pattern)
	if err != nil {
		return nil, fmt.Errorf("resolve configuration pattern %q: %w", pattern, err)
	}
	abs := filepath.Join(dir, filepath.FromSlash(glob))

	log.Debug("Search local file system.")
	rel, err := doublestar.Glob(os.DirFS(dir), glob)
	if err != nil {
		return nil, fmt.Errorf("expand configuration pattern %q: %w", abs, err)
	}
	matches := make([]string, len(rel))
	for i, m := range rel {
		matches[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	sort.Strings(matches)

	switch len(matches) {
	case 0:
		log.Debug("No configuration file found.")
		if required {
			return nil, &ConfigNotFoundError{Path: abs}
		}
		return nil, nil
	case 1:
	default:
		return nil, &AmbiguousConfigError{Pattern: abs, Matches: matches}
	}

	match := matches[0]
	info, err := os.Stat(match)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Dangling symlink.
			if required {
				return nil, &ConfigNotFoundError{Path: match}
			}
			return nil, nil
		}
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, &NotAFileError{Path: match}
	}
	log.Debug("Configuration file found.", "path", match)
	return &Candidate{Location: match}, nil
}

// Read returns the content of c. Remote candidates are fetched with a single
// GET bounded by the locator's timeout; there are no retries.
func (l *Locator) Read(ctx context.Context, c *Candidate) ([]byte, error) {
	if !c.Remote {
		data, err := os.ReadFile(c.Location)
		if err != nil {
			return nil, fmt.Errorf("read configuration %s: %w", c.Location, err)
		}
		return data, nil
	}
	return l.fetch(ctx, c.Location)
}

func (l *Locator) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &RemoteFetchError{URL: rawURL, Err: err}
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	logging.OrNop(l.Logger).Debug("Fetch remote configuration.", "url", rawURL, "timeout", timeout)
	resp, err := client.Do(req)
	if err != nil {
		return nil, &RemoteFetchError{URL: rawURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteFetchError{URL: rawURL, Status: resp.StatusCode}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize+1))
	if err != nil {
		return nil, &RemoteFetchError{URL: rawURL, Status: resp.StatusCode, Err: err}
	}
	if len(data) > maxRemoteSize {
		return nil, &RemoteFetchError{URL: rawURL, Status: resp.StatusCode,
			Err: fmt.Errorf("body exceeds %d bytes", maxRemoteSize)}
	}
	return data, nil
}

// DefaultPattern returns the pattern matching any file with one of the
// given glob suffix (e.g. "*.{toml,yaml}") in the application's directory
// under the user configuration directory. It returns "" when the platform
// has no such directory.
func DefaultPattern(appName, globSuffix string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return PatternIn(dir, appName, globSuffix)
}

// PatternIn is DefaultPattern rooted at configDir. Glob metacharacters in
// configDir and appName are escaped.
func PatternIn(configDir, appName, globSuffix string) string {
	return filepath.Join(escapeMeta(configDir), escapeMeta(appName), globSuffix)
}

// AbsPattern expands a leading "~/" and makes a local pattern absolute
// without touching its glob syntax. The result is meant for display.
func AbsPattern(pattern string) (string, error) {
	dir, glob, err := splitPattern(pattern)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.FromSlash(glob)), nil
}

// splitPattern splits a local pattern into the absolute directory holding
// its literal leading part and the glob relative to that directory. The
// working or home directory joined to a relative pattern is never read as
// glob syntax.
func splitPattern(pattern string) (dir, glob string, err error) {
	var prefix string
	rest := pattern
	switch {
	case pattern == "~" || strings.HasPrefix(pattern, "~/") || strings.HasPrefix(pattern, `~\`):
		if prefix, err = os.UserHomeDir(); err != nil {
			return "", "", err
		}
		rest = strings.TrimLeft(pattern[1:], `/\`)
	case !filepath.IsAbs(pattern):
		if prefix, err = os.Getwd(); err != nil {
			return "", "", err
		}
	}

	base, glob := doublestar.SplitPattern(filepath.ToSlash(rest))
	dir = filepath.Join(prefix, filepath.FromSlash(unescapeMeta(base)))
	if glob == "" || glob == "." {
		glob = escapeMeta(filepath.Base(dir))
		dir = filepath.Dir(dir)
	}
	return dir, glob, nil
}

const globMeta = `*?[]{}\`

// escapeMeta quotes glob metacharacters in a literal path. Backslash is the
// path separator on Windows, where nothing can be escaped.
func escapeMeta(s string) string {
	if filepath.Separator == '\\' {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(globMeta, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// unescapeMeta is the inverse of escapeMeta.
func unescapeMeta(s string) string {
	if filepath.Separator == '\\' || !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}
