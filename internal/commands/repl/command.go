package repl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/artuross/funscript/internal/commandinit"
	"github.com/artuross/funscript/internal/config"
	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	cli "github.com/urfave/cli/v2"
)

const historyFileName = ".funscript_history"

var ErrCommandFailed = errors.New("command failed")

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Starts an interactive session.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  config.FlagHistoryFile,
				Usage: "Where to keep input history. Defaults to ~/" + historyFileName + ".",
			},
		},
		Action: run,
	}
}

func run(cliCtx *cli.Context) error {
	setup, err := commandinit.New(cliCtx, "repl")
	if err != nil {
		return fmt.Errorf("init command: %w", err)
	}
	defer setup.Shutdown(setup.Context)

	logger := setup.Logger

	session, err := setup.Engine.NewSession()
	if err != nil {
		logger.Error().Err(err).Msg("create session")
		return ErrCommandFailed
	}

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(completer(session.Names))

	historyPath := historyPath(setup.Config.HistoryFile)
	readHistory(line, historyPath, logger)
	defer writeHistory(line, historyPath, logger)

	fmt.Fprintln(cliCtx.App.Writer, "funscript repl, type .exit to quit")

	return loop(setup.Context, line, session, cliCtx.App.Writer, cliCtx.App.ErrWriter)
}

func historyPath(configured string) string {
	if configured != "" {
		return configured
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, historyFileName)
}

func readHistory(line *liner.State, path string, logger zerolog.Logger) {
	if path == "" {
		return
	}

	file, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn().Err(err).Str("path", path).Msg("read history")
		}

		return
	}
	defer file.Close()

	if _, err := line.ReadHistory(file); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("read history")
	}
}

func writeHistory(line *liner.State, path string, logger zerolog.Logger) {
	if path == "" {
		return
	}

	file, err := os.Create(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("write history")
		return
	}
	defer file.Close()

	if _, err := line.WriteHistory(file); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("write history")
	}
}
