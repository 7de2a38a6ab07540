package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/getmockd/clix/pkg/cli/internal/flags"
	"github.com/getmockd/clix/pkg/config"
	"github.com/getmockd/clix/pkg/logging"
	"github.com/getmockd/clix/pkg/params"
	"github.com/getmockd/clix/pkg/provenance"
	"github.com/getmockd/clix/pkg/resolve"
	"github.com/getmockd/clix/pkg/source"
)

// run resolves every parameter of the path leading to node and runs the
// command bodies from the root down to node.
func (a *App) run(cmd *cobra.Command, node *params.Node, inv *invocation, args []string) error {
	start := time.Now()
	ctx := cmd.Context()
	path := node.Lineage()
	cmdline := commandLine(cmd, path)

	if requested(cmdline[a.rootID(ParamVersion)]) {
		_, _ = fmt.Fprintln(a.stdout, a.info.VersionLine())
		_, _ = fmt.Fprintln(a.stdout, a.info.Environment())
		return nil
	}

	if len(a.envFiles) > 0 {
		vars, err := godotenv.Read(a.envFiles...)
		if err != nil {
			return &ResolutionError{Err: fmt.Errorf("read environment files: %w", err)}
		}
		inv.env = inv.env.WithFallback(params.EnvFromMap(vars))
	}

	// Verbosity and config location come from the command line and the
	// environment only.
	pre, err := resolve.Merge(resolve.Input{
		Path:        path[:1],
		CommandLine: cmdline,
		Env:         inv.env,
		EnvPrefix:   a.envPrefix,
	})
	if err != nil {
		return &ResolutionError{Err: err}
	}
	a.applyVerbosity(inv, pre)

	log := inv.logger
	log.Debug(a.info.VersionLine())
	log.Debug(fmt.Sprintf("raw_args: %q", inv.rawArgs))

	configParam, _ := pre.Lookup(a.rootID(ParamConfig))
	loader := &config.Loader{
		Registry: a.registry,
		Locator: &source.Locator{
			Client:  a.httpClient,
			Timeout: a.fetchTimeout,
			Logger:  log,
		},
		Logger:  log,
		Notices: a.stderr,
	}
	pattern, _ := configParam.Value.(string)
	loaded, err := loader.Load(ctx, pattern, configParam.Source != params.SourceDefault)
	if err != nil {
		return &ResolutionError{Err: err}
	}

	resolver := &resolve.Resolver{
		DefaultsSection: a.defaultsSection,
		EnvPrefix:       a.envPrefix,
		Logger:          log,
	}
	resolved, err := resolver.Resolve(path, loaded.Document, cmdline, inv.env)
	if err != nil {
		return &ResolutionError{Err: err}
	}
	verbosity := a.applyVerbosity(inv, resolved)
	log.Debug("Verbosity set to " + verbosity + ".")

	root := resolved.ForNode(path[0])
	if root.Bool(ParamShowParams) {
		format := provenance.Format(root.String(ParamTableFormat))
		return provenance.Render(a.stdout, provenance.Report(resolved), format)
	}

	if len(node.Children) > 0 && len(args) == 0 {
		return cmd.Help()
	}

	for _, n := range path {
		if n.Run == nil {
			continue
		}
		err := n.Run(ctx, &params.Invocation{
			Command:  n.ID(),
			Args:     args,
			RawArgs:  inv.rawArgs,
			Values:   resolved.ForNode(n),
			Resolved: resolved.Params(),
			Logger:   log.With("command", n.ID()),
			Stdout:   a.stdout,
			Stderr:   a.stderr,
		})
		if err != nil {
			return &CommandError{Command: n.ID(), Err: err}
		}
	}

	if root.Bool(ParamTime) {
		_, _ = fmt.Fprintf(a.stdout, "Execution time: %.3f seconds.\n", time.Since(start).Seconds())
	}
	return nil
}

// rootID returns the qualified name of a standard root parameter.
func (a *App) rootID(name string) string {
	return a.root.Name + "." + name
}

// applyVerbosity sets the log level from the resolved verbosity and
// returns its name.
func (a *App) applyVerbosity(inv *invocation, ctx *resolve.Context) string {
	r, ok := ctx.Lookup(a.rootID(ParamVerbosity))
	if !ok {
		return logging.DefaultVerbosity
	}
	name, _ := r.Value.(string)
	level, err := logging.ParseVerbosity(name)
	if err != nil {
		return logging.LevelName(inv.level.Level())
	}
	inv.level.Set(level)
	return name
}

// commandLine collects the values passed explicitly on the command line
// for every parameter of path, keyed by qualified name.
func commandLine(cmd *cobra.Command, path []*params.Node) map[string]any {
	values := make(map[string]any)
	fs := cmd.Flags()
	for _, node := range path {
		for _, spec := range node.Params {
			if raw, ok := flags.Changed(fs, spec); ok {
				values[resolve.QualifiedName(node, spec)] = raw
			}
		}
	}
	return values
}

// requested reports whether a boolean flag was passed as true.
func requested(raw any) bool {
	s, ok := raw.(string)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
