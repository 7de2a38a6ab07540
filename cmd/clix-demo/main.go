// clix-demo - Example program showing configuration files, environment
// variables and parameter provenance
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getmockd/clix/pkg/cli"
	"github.com/getmockd/clix/pkg/params"
)

// Build-time variables set via ldflags
var (
	Version = ""
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []cli.Option{
		cli.WithVersion(Version),
		cli.WithLogFormat(os.Getenv("CLIX_DEMO_LOG_FORMAT")),
	}
	if path := os.Getenv("CLIX_DEMO_ENV_FILE"); path != "" {
		opts = append(opts, cli.WithEnvFiles(path))
	}
	app, err := cli.New(commandTree(), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitUsage
	}
	return app.Execute(ctx, os.Args[1:])
}

func commandTree() *params.Node {
	defaultCommand := params.NewNode("default-command").
		Describe("Print the integer parameter", "").
		WithParams(&params.Spec{
			Name:    "int_param",
			Type:    params.Int,
			Default: 10,
			Help:    "An integer.",
		}).
		WithRun(func(_ context.Context, inv *params.Invocation) error {
			_, err := fmt.Fprintf(inv.Stdout, "int_parameter = %d\n", inv.Values.Int("int_param"))
			return err
		})

	greet := params.NewNode("greet").
		Describe("Greet people", "Greet every name given with --name, after an optional delay.").
		WithParams(
			&params.Spec{Name: "name", Type: params.StringSlice, Default: []string{"world"}, Help: "Names to greet."},
			&params.Spec{Name: "style", Type: params.Choice, Choices: []string{"plain", "loud"}, Default: "plain"},
			&params.Spec{Name: "delay", Type: params.Duration, Help: "Wait before greeting."},
		).
		WithRun(func(ctx context.Context, inv *params.Invocation) error {
			if d := inv.Values.Duration("delay"); d > 0 {
				select {
				case <-time.After(d):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			for _, name := range inv.Values.Strings("name") {
				msg := "Hello, " + name + "!"
				if inv.Values.String("style") == "loud" {
					msg = strings.ToUpper(msg)
				}
				if _, err := fmt.Fprintln(inv.Stdout, msg); err != nil {
					return err
				}
			}
			inv.Logger.Info("Greeted.", "count", len(inv.Values.Strings("name")))
			return nil
		})

	return params.NewNode("clix-demo").
		Describe("Demonstrate configuration loading and parameter provenance", "").
		WithParams(&params.Spec{
			Name:    "dummy_flag",
			Type:    params.Bool,
			EnvVars: []string{"DUMMY_FLAG"},
			ShowEnv: true,
			Help:    "A flag printed by every command.",
		}, &params.Spec{
			Name:   "token",
			Hidden: true,
			Help:   "Resolved but never handed to commands.",
		}).
		WithRun(func(_ context.Context, inv *params.Invocation) error {
			_, err := fmt.Fprintf(inv.Stdout, "dummy_flag = %t\n", inv.Values.Bool("dummy_flag"))
			return err
		}).
		WithChildren(defaultCommand, greet)
}
