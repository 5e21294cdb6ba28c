package commandinit

import (
	"errors"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v2"
)

const (
	FlagEval = "eval"

	evalScriptName  = "<eval>"
	stdinScriptName = "<stdin>"
)

var ErrNoSource = errors.New("no script given: pass a file, '-' for stdin or --eval")

// ReadSource returns the script a command works on: --eval text, stdin for
// "-", or the file named by the first argument.
func ReadSource(cliCtx *cli.Context) (string, string, error) {
	if cliCtx.IsSet(FlagEval) {
		return evalScriptName, cliCtx.String(FlagEval), nil
	}

	path := cliCtx.Args().First()
	switch path {
	case "":
		return "", "", ErrNoSource

	case "-":
		_, _, stdin := streams(cliCtx.App)

		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}

		return stdinScriptName, string(content), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read script: %w", err)
	}

	return path, string(content), nil
}
