package cli

import (
	"github.com/getmockd/clix/pkg/logging"
	"github.com/getmockd/clix/pkg/params"
	"github.com/getmockd/clix/pkg/provenance"
)

// Names of the parameters every App adds to the root command.
const (
	ParamTime        = "time"
	ParamConfig      = "config"
	ParamVerbosity   = "verbosity"
	ParamTableFormat = "table_format"
	ParamShowParams  = "show_params"
	ParamVersion     = "version"
	ParamHelp        = "help"
)

// standardParams declares the options added to the root command. The
// config default is the pattern searched when no path is given.
func standardParams(configPattern string) []*params.Spec {
	return []*params.Spec{
		{
			Name: ParamTime,
			Type: params.Bool,
			Help: "Measure and print elapsed execution time.",
		},
		{
			Name:     ParamConfig,
			Short:    "C",
			Metavar:  "CONFIG_PATH",
			Default:  configPattern,
			NoConfig: true,
			Help:     "Location of the configuration file. Supports glob pattern of local path and remote URL.",
		},
		{
			Name:    ParamVerbosity,
			Short:   "v",
			Metavar: "LEVEL",
			Type:    params.Choice,
			Choices: logging.Verbosities,
			Default: logging.DefaultVerbosity,
			Help:    "Either CRITICAL, ERROR, WARNING, INFO, DEBUG.",
		},
		{
			Name:    ParamTableFormat,
			Short:   "t",
			Type:    params.Choice,
			Choices: provenance.FormatNames(),
			Default: string(provenance.FormatRounded),
			Help:    "Rendering style of tables.",
		},
		{
			Name:     ParamShowParams,
			Type:     params.Bool,
			NoConfig: true,
			Help:     "Show all CLI parameters, their provenance, defaults and value, then exit.",
		},
		{
			Name:     ParamVersion,
			Type:     params.Bool,
			NoConfig: true,
			Help:     "Show the version and exit.",
		},
		{
			Name:     ParamHelp,
			Short:    "h",
			Type:     params.Bool,
			NoConfig: true,
			Help:     "Show this message and exit.",
		},
	}
}
