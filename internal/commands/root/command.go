package root

import (
	"github.com/artuross/funscript/internal/commands/check"
	"github.com/artuross/funscript/internal/commands/parse"
	"github.com/artuross/funscript/internal/commands/repl"
	"github.com/artuross/funscript/internal/commands/run"
	"github.com/artuross/funscript/internal/config"
	cli "github.com/urfave/cli/v2"
)

func NewCommand() *cli.App {
	return &cli.App{
		Name:  "funscript",
		Usage: "Runs, checks and explores funscript programs.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  config.FlagConfig,
				Usage: "Path to a YAML config file.",
			},
			&cli.StringFlag{
				Name:  config.FlagLogLevel,
				Usage: "Log level: trace, debug, info, warn, error or disabled.",
			},
			&cli.IntFlag{
				Name:  config.FlagMaxCallDepth,
				Usage: "Maximum depth of nested function calls.",
			},
			&cli.BoolFlag{
				Name:  config.FlagCatchRuntimeFaults,
				Usage: "Let try/catch intercept type, reference and range errors.",
			},
			&cli.BoolFlag{
				Name:  config.FlagTrace,
				Usage: "Export OpenTelemetry traces over OTLP/gRPC.",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Print the effective config before running.",
			},
		},
		Commands: []*cli.Command{
			run.NewCommand(),
			check.NewCommand(),
			parse.NewCommand(),
			repl.NewCommand(),
		},
	}
}
