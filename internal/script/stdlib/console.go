package stdlib

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/artuross/funscript/internal/script/runtime"
)

func consoleNatives(stdout, stderr io.Writer, stdin *bufio.Reader) []runtime.NativeDescriptor {
	return []runtime.NativeDescriptor{
		{Name: "print", Fn: writeLine(stdout)},
		{Namespace: "console", Name: "log", Fn: writeLine(stdout)},
		{Namespace: "console", Name: "error", Fn: writeLine(stderr)},
		{Name: "input", Fn: readLine(stdout, stdin)},
	}
}

// writeLine prints its arguments separated by spaces. Strings are written
// raw, everything else in display form.
func writeLine(w io.Writer) runtime.NativeFunc {
	return func(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = runtime.ToString(arg)
		}

		if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
			return runtime.Undefined(), fmt.Errorf("write output: %w", err)
		}

		return runtime.Undefined(), nil
	}
}

// readLine returns the next input line without its terminator, or null at
// end of input.
func readLine(prompt io.Writer, r *bufio.Reader) runtime.NativeFunc {
	return func(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
		if len(args) > 0 {
			if _, err := fmt.Fprint(prompt, runtime.ToString(args[0])); err != nil {
				return runtime.Undefined(), fmt.Errorf("write prompt: %w", err)
			}
		}

		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return runtime.Undefined(), fmt.Errorf("read input: %w", err)
		}

		if errors.Is(err, io.EOF) && line == "" {
			return runtime.Null(), nil
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		return runtime.String(line), nil
	}
}
