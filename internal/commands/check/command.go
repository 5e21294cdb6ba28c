package check

import (
	"errors"
	"fmt"
	"os"
	goruntime "runtime"

	"github.com/artuross/funscript/internal/commandinit"
	"github.com/artuross/funscript/internal/engine"
	"github.com/rs/zerolog"
	cli "github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var (
	ErrCommandFailed = errors.New("command failed")
	ErrNoFiles       = errors.New("no files given")
)

type result struct {
	path   string
	source string
	err    error
}

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Parses scripts and reports syntax faults without running them.",
		ArgsUsage: "file [file...]",
		Action:    run,
	}
}

func run(cliCtx *cli.Context) error {
	setup, err := commandinit.New(cliCtx, "check")
	if err != nil {
		return fmt.Errorf("init command: %w", err)
	}
	defer setup.Shutdown(setup.Context)

	paths := cliCtx.Args().Slice()
	if len(paths) == 0 {
		setup.Logger.Error().Err(ErrNoFiles).Msg("check")
		return ErrCommandFailed
	}

	results := make([]result, len(paths))

	group, ctx := errgroup.WithContext(setup.Context)
	group.SetLimit(goruntime.NumCPU())

	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			_, err = setup.Engine.Parse(ctx, path, string(content))
			results[i] = result{path: path, source: string(content), err: err}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		setup.Logger.Error().Err(err).Msg("check")
		return ErrCommandFailed
	}

	if failed := report(cliCtx, setup.Logger, results); failed > 0 {
		return ErrCommandFailed
	}

	return nil
}

// report prints results in argument order and returns how many files failed.
func report(cliCtx *cli.Context, logger zerolog.Logger, results []result) int {
	failed := 0

	for _, r := range results {
		if r.err == nil {
			fmt.Fprintf(cliCtx.App.Writer, "%s: ok\n", r.path)
			continue
		}

		failed++
		fmt.Fprintf(cliCtx.App.ErrWriter, "%s:\n%s\n", r.path, engine.Describe(r.err, r.source))
	}

	logger.Debug().Int("files", len(results)).Int("failed", failed).Msg("checked")

	return failed
}
