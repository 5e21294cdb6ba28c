package run

import (
	"errors"
	"fmt"

	"github.com/artuross/funscript/internal/commandinit"
	"github.com/artuross/funscript/internal/engine"
	"github.com/artuross/funscript/internal/script/runtime"
	cli "github.com/urfave/cli/v2"
)

var ErrCommandFailed = errors.New("command failed")

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Runs a script.",
		ArgsUsage: "[file | -]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  commandinit.FlagEval,
				Usage: "Source text to run instead of a file.",
			},
			&cli.BoolFlag{
				Name:  "print",
				Usage: "Print the value of the last statement.",
			},
		},
		Action: run,
	}
}

func run(cliCtx *cli.Context) error {
	setup, err := commandinit.New(cliCtx, "run")
	if err != nil {
		return fmt.Errorf("init command: %w", err)
	}
	defer setup.Shutdown(setup.Context)

	logger := setup.Logger

	name, source, err := commandinit.ReadSource(cliCtx)
	if err != nil {
		logger.Error().Err(err).Msg("read source")
		return ErrCommandFailed
	}

	value, err := setup.Engine.Run(setup.Context, name, source)
	if err != nil {
		fmt.Fprintln(cliCtx.App.ErrWriter, engine.Describe(err, source))
		logger.Debug().Err(err).Msg("script failed")

		return ErrCommandFailed
	}

	if cliCtx.Bool("print") && value.Kind() != runtime.KindUndefined {
		fmt.Fprintln(cliCtx.App.Writer, runtime.Inspect(value))
	}

	return nil
}
