// Package cli runs a declared command tree on top of cobra.
//
// An App adds standard options to the root command:
//   - --time: print the elapsed execution time
//   - -C, --config: location of the configuration file, a local glob pattern or a URL
//   - -v, --verbosity: log level, one of CRITICAL, ERROR, WARNING, INFO, DEBUG
//   - -t, --table-format: rendering of the --show-params table
//   - --show-params: print every parameter with its value and source, then exit
//   - --version: print the program version and build environment
//   - -h, --help: print help
//
// Every invocation resolves the parameters of the invoked path from the
// command line, the environment, the configuration file and the declared
// defaults, in that order of precedence, before running the command bodies
// from the root down to the invoked command.
//
// Execute returns the process exit code: 0 on success, 1 when a command body
// fails and 2 for usage errors and configuration or resolution failures.
package cli
