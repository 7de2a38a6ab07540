package cli

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/getmockd/clix/pkg/format"
	"github.com/getmockd/clix/pkg/logging"
	"github.com/getmockd/clix/pkg/params"
)

// Option configures an App.
type Option func(*App)

// WithVersion sets the version reported by --version. Defaults to the main
// module version from the build information.
func WithVersion(version string) Option {
	return func(a *App) { a.version = version }
}

// WithEnvPrefix replaces the root command name in auto-generated
// environment variable names.
func WithEnvPrefix(prefix string) Option {
	return func(a *App) { a.envPrefix = prefix }
}

// WithEnviron makes every invocation read environ (KEY=VALUE entries)
// instead of the process environment.
func WithEnviron(environ []string) Option {
	return func(a *App) {
		env := params.EnvFromList(environ)
		a.environ = &env
	}
}

// WithEnvFiles reads variables from dotenv files on every invocation.
// They only supply names the environment does not set; later files win.
func WithEnvFiles(paths ...string) Option {
	return func(a *App) { a.envFiles = append(a.envFiles, paths...) }
}

// WithOutput redirects the standard and error outputs.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) {
		a.stdout = stdout
		a.stderr = stderr
	}
}

// WithFetchTimeout bounds the download of a remote configuration.
func WithFetchTimeout(d time.Duration) Option {
	return func(a *App) { a.fetchTimeout = d }
}

// WithHTTPClient sets the client used for remote configurations.
func WithHTTPClient(c *http.Client) Option {
	return func(a *App) { a.httpClient = c }
}

// WithRegistry replaces the built-in configuration formats.
func WithRegistry(r *format.Registry) Option {
	return func(a *App) { a.registry = r }
}

// WithDefaultsSection renames the top-level configuration section whose
// values apply to every command. An empty name disables it.
func WithDefaultsSection(name string) Option {
	return func(a *App) { a.defaultsSection = name }
}

// WithConfigDir replaces the user configuration directory in the default
// configuration pattern.
func WithConfigDir(dir string) Option {
	return func(a *App) { a.configDir = dir }
}

// WithLogFormat selects the log output format: "cli" (the default),
// "text" or "json". Unknown names fall back to "cli".
func WithLogFormat(format string) Option {
	return func(a *App) { a.logFormat = logging.ParseFormat(format) }
}

// WithLogHandler adds a handler receiving every log record alongside the
// terminal output, at its own level.
func WithLogHandler(h slog.Handler) Option {
	return func(a *App) { a.extraHandler = h }
}
