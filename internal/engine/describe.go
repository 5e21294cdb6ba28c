package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/artuross/funscript/internal/script/evaluate"
	"github.com/artuross/funscript/internal/script/lexer"
	"github.com/artuross/funscript/internal/script/parser"
	"github.com/artuross/funscript/internal/script/runtime"
)

// Describe renders err for a user: every fault that carries a source
// position gets a header and the offending line with a caret under the
// column. Other errors are returned as their message.
//
//	2:9: SyntaxError: unexpected token ')'
//	   2 | let x = )
//	     |         ^
func Describe(err error, source string) string {
	if err == nil {
		return ""
	}

	lines := strings.Split(source, "\n")

	var list parser.ErrorList
	if errors.As(err, &list) {
		parts := make([]string, 0, len(list))
		for _, fault := range list {
			parts = append(parts, describeAt(lines, fault.Position.Start, "SyntaxError: "+fault.Message))
		}

		return strings.Join(parts, "\n")
	}

	var syntaxError *parser.SyntaxError
	if errors.As(err, &syntaxError) {
		return describeAt(lines, syntaxError.Position.Start, "SyntaxError: "+syntaxError.Message)
	}

	var fault *runtime.Fault
	if errors.As(err, &fault) && fault.HasPosition() {
		return describeAt(lines, fault.Position.Start, fmt.Sprintf("%s: %s", fault.Kind, fault.Message))
	}

	var uncaught *evaluate.UncaughtError
	if errors.As(err, &uncaught) && uncaught.Position.Start.Line > 0 {
		message := strings.TrimPrefix(uncaught.Error(), uncaught.Position.Start.String()+": ")
		return describeAt(lines, uncaught.Position.Start, message)
	}

	return err.Error()
}

func describeAt(lines []string, point lexer.Point, message string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s: %s", point, message)

	if point.Line < 1 || point.Line > len(lines) {
		return sb.String()
	}

	line := strings.TrimRight(lines[point.Line-1], "\r")
	gutter := fmt.Sprintf("%4d | ", point.Line)

	// columns count runes; tabs are kept so the caret lines up
	pad := make([]rune, 0, point.Column)
	for i, r := range []rune(line) {
		if i >= point.Column-1 {
			break
		}

		if r == '\t' {
			pad = append(pad, '\t')
		} else {
			pad = append(pad, ' ')
		}
	}

	fmt.Fprintf(&sb, "\n%s%s", gutter, line)
	fmt.Fprintf(&sb, "\n%s| %s^", strings.Repeat(" ", len(gutter)-2), string(pad))

	return sb.String()
}
