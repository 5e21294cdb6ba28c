package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/artuross/funscript/internal/engine"
	"github.com/artuross/funscript/internal/script/lexer"
	"github.com/artuross/funscript/internal/script/parser"
	"github.com/artuross/funscript/internal/script/runtime"
	"github.com/peterh/liner"
)

const (
	prompt             = "> "
	continuationPrompt = "... "
	exitCommand        = ".exit"
)

// LineReader is the part of *liner.State the loop needs.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type Evaluator interface {
	Eval(ctx context.Context, source string) (runtime.Value, error)
}

func loop(ctx context.Context, reader LineReader, session Evaluator, out, errOut io.Writer) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		source, ok, err := readInput(reader)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if !ok {
			fmt.Fprintln(out)
			return nil
		}

		trimmed := strings.TrimSpace(source)
		switch {
		case trimmed == "":
			continue

		case trimmed == exitCommand:
			return nil
		}

		reader.AppendHistory(strings.ReplaceAll(source, "\n", " "))

		value, err := session.Eval(ctx, source)
		if err != nil {
			fmt.Fprintln(errOut, engine.Describe(err, source))
			continue
		}

		fmt.Fprintln(out, runtime.Inspect(value))
	}
}

// readInput keeps prompting while the text so far only fails to parse
// because it ends too early. It returns false once input is exhausted.
func readInput(reader LineReader) (string, bool, error) {
	var sb strings.Builder

	for {
		current := prompt
		if sb.Len() > 0 {
			current = continuationPrompt
		}

		line, err := reader.Prompt(current)
		switch {
		case errors.Is(err, io.EOF):
			if sb.Len() > 0 {
				return sb.String(), true, nil
			}

			return "", false, nil

		case errors.Is(err, liner.ErrPromptAborted):
			// Ctrl-C drops the pending input
			return "", true, nil

		case err != nil:
			return "", false, err
		}

		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)

		source := sb.String()
		if strings.TrimSpace(source) == "" {
			return source, true, nil
		}

		_, err = parser.NewParser(lexer.NewLexer(source)).Parse()
		if err != nil && parser.IsIncomplete(err) {
			continue
		}

		return source, true, nil
	}
}

// completer offers every visible name that extends the identifier under
// the cursor.
func completer(names func() []string) liner.Completer {
	return func(line string) []string {
		head, word := splitWord(line)
		if word == "" {
			return nil
		}

		completions := make([]string, 0)
		for _, name := range names() {
			if strings.HasPrefix(name, word) && name != word {
				completions = append(completions, head+name)
			}
		}

		return completions
	}
}

func splitWord(line string) (string, string) {
	runes := []rune(line)

	start := len(runes)
	for start > 0 && isIdentifierRune(runes[start-1]) {
		start--
	}

	return string(runes[:start]), string(runes[start:])
}

func isIdentifierRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
