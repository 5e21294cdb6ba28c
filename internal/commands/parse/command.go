package parse

import (
	"errors"
	"fmt"

	"github.com/artuross/funscript/internal/commandinit"
	"github.com/artuross/funscript/internal/engine"
	"github.com/kr/pretty"
	cli "github.com/urfave/cli/v2"
)

var ErrCommandFailed = errors.New("command failed")

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Prints the syntax tree of a script.",
		ArgsUsage: "[file | -]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  commandinit.FlagEval,
				Usage: "Source text to parse instead of a file.",
			},
		},
		Action: run,
	}
}

func run(cliCtx *cli.Context) error {
	setup, err := commandinit.New(cliCtx, "parse")
	if err != nil {
		return fmt.Errorf("init command: %w", err)
	}
	defer setup.Shutdown(setup.Context)

	name, source, err := commandinit.ReadSource(cliCtx)
	if err != nil {
		setup.Logger.Error().Err(err).Msg("read source")
		return ErrCommandFailed
	}

	program, err := setup.Engine.Parse(setup.Context, name, source)
	if err != nil {
		fmt.Fprintln(cliCtx.App.ErrWriter, engine.Describe(err, source))
		return ErrCommandFailed
	}

	pretty.Fprintf(cliCtx.App.Writer, "%# v\n", program)

	return nil
}
