package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmockd/clix/pkg/cli/internal/flags"
	"github.com/getmockd/clix/pkg/format"
	"github.com/getmockd/clix/pkg/logging"
	"github.com/getmockd/clix/pkg/params"
	"github.com/getmockd/clix/pkg/resolve"
	"github.com/getmockd/clix/pkg/source"
)

// App runs a declared command tree with configuration file support,
// environment variables, version reporting and parameter introspection.
// An App may execute several times; each Execute builds its own command
// tree state.
type App struct {
	root *params.Node
	info Info

	version         string
	envPrefix       string
	environ         *params.Env
	envFiles        []string
	stdout          io.Writer
	stderr          io.Writer
	fetchTimeout    time.Duration
	httpClient      *http.Client
	registry        *format.Registry
	defaultsSection string
	configDir       string
	logFormat       logging.Format
	extraHandler    slog.Handler
}

// ErrTreeInUse is returned by New for a command tree already owned by an
// App.
var ErrTreeInUse = errors.New("command tree already belongs to an App")

// New validates root, adds the standard options to it and computes the
// program information. The App takes ownership of the tree: root must not
// be modified afterwards nor passed to New again.
func New(root *params.Node, opts ...Option) (*App, error) {
	if ownedByApp(root) {
		return nil, ErrTreeInUse
	}
	a := &App{
		root:            root,
		stdout:          os.Stdout,
		stderr:          os.Stderr,
		fetchTimeout:    source.DefaultTimeout,
		defaultsSection: resolve.DefaultsSection,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.registry == nil {
		a.registry = format.Builtin()
	}

	root.WithParams(standardParams(a.defaultPattern())...)
	if err := root.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command tree: %w", err)
	}
	a.info = computeInfo(root.Name, a.version)
	return a, nil
}

// ownedByApp reports whether root already carries every standard option.
func ownedByApp(root *params.Node) bool {
	for _, spec := range standardParams("") {
		if _, ok := root.Param(spec.Name); !ok {
			return false
		}
	}
	return true
}

// Info returns the program information computed by New.
func (a *App) Info() Info { return a.info }

func (a *App) defaultPattern() string {
	if a.configDir != "" {
		return source.PatternIn(a.configDir, a.root.Name, a.registry.GlobSuffix())
	}
	return source.DefaultPattern(a.root.Name, a.registry.GlobSuffix())
}

// Execute runs the command line args (without the program name) and
// returns the process exit code.
func (a *App) Execute(ctx context.Context, args []string) int {
	inv := a.newInvocation(args)
	cmd := a.command(a.root, inv)
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	err := cmd.ExecuteContext(ctx)
	code := ExitCode(err)
	if err == nil {
		return code
	}

	var rerr *ResolutionError
	var cerr *CommandError
	switch {
	case errors.As(err, &rerr):
		inv.logger.Log(ctx, logging.LevelCritical, rerr.Kind()+": "+rerr.Error())
	case errors.As(err, &cerr):
		inv.logger.Error(cerr.Error())
	default:
		_, _ = fmt.Fprintf(a.stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintf(a.stderr, "Try '%s --help' for help.\n", a.root.Name)
	}
	return code
}

// invocation is the per-Execute state shared by the cobra commands.
type invocation struct {
	rawArgs []string
	level   *slog.LevelVar
	logger  *slog.Logger
	env     params.Env
}

func (a *App) newInvocation(args []string) *invocation {
	level := &slog.LevelVar{}
	level.Set(logging.LevelWarn)

	cfg := logging.DefaultConfig()
	cfg.LevelVar = level
	cfg.Output = a.stderr
	if a.logFormat != "" {
		cfg.Format = a.logFormat
	}
	handler := logging.NewHandler(cfg)
	if a.extraHandler != nil {
		handler = logging.NewTeeHandler(handler, a.extraHandler)
	}

	env := params.EnvFromOS()
	if a.environ != nil {
		env = *a.environ
	}
	return &invocation{
		rawArgs: append([]string(nil), args...),
		level:   level,
		logger:  slog.New(handler),
		env:     env,
	}
}

// command builds the cobra command of node and its descendants.
// Parameters of nodes with children are persistent, so they are accepted
// before the subcommand name.
func (a *App) command(node *params.Node, inv *invocation) *cobra.Command {
	cmd := &cobra.Command{
		Use:           node.Name,
		Short:         node.Short,
		Long:          node.Long,
		SilenceUsage:  true,
		SilenceErrors: true, // reported by Execute
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, node, inv, args)
		},
	}
	if len(node.Children) > 0 {
		cmd.Use = node.Name + " COMMAND"
		if node.Parent() != nil {
			cmd.Args = cobra.NoArgs
		}
	}

	fs := cmd.Flags()
	if len(node.Children) > 0 {
		fs = cmd.PersistentFlags()
	}
	prefix := params.EnvPrefix(node, a.envPrefix)
	for _, spec := range node.Params {
		flags.Add(fs, spec, usage(spec, prefix))
	}

	for _, child := range node.Children {
		cmd.AddCommand(a.command(child, inv))
	}
	return cmd
}

// usage renders the help text of spec, listing its environment variables
// and default when requested.
func usage(spec *params.Spec, prefix string) string {
	if !spec.ShowEnv {
		return spec.Help
	}
	var notes []string
	if vars := params.BoundEnvVars(spec, prefix); len(vars) > 0 {
		notes = append(notes, "env var: "+strings.Join(vars, ", "))
	}
	if def := flags.Display(spec.ZeroDefault()); def != "" {
		notes = append(notes, "default: "+def)
	}
	if len(notes) == 0 {
		return spec.Help
	}
	return strings.TrimSpace(spec.Help + " [" + strings.Join(notes, "; ") + "]")
}
