package runtime

import (
	"fmt"

	"github.com/artuross/funscript/internal/script/lexer"
)

type FaultKind string

const (
	FaultTypeError      FaultKind = "TypeError"
	FaultReferenceError FaultKind = "ReferenceError"
	FaultRangeError     FaultKind = "RangeError"
)

// Fault is a runtime type, reference or range error. It is not a user-level
// throw and is not caught by try/catch unless the evaluator is told to.
type Fault struct {
	Kind     FaultKind
	Message  string
	Position lexer.Position
}

func (f *Fault) Error() string {
	if !f.HasPosition() {
		return fmt.Sprintf("%s: %s", f.Kind, f.Message)
	}

	return fmt.Sprintf("%s: %s: %s", f.Position.Start, f.Kind, f.Message)
}

func (f *Fault) HasPosition() bool {
	return f.Position.Start.Line > 0
}

// At sets the source range unless one is already recorded.
func (f *Fault) At(position lexer.Position) *Fault {
	if !f.HasPosition() {
		f.Position = position
	}

	return f
}

func TypeErrorf(format string, args ...any) *Fault {
	return &Fault{Kind: FaultTypeError, Message: fmt.Sprintf(format, args...)}
}

func ReferenceErrorf(format string, args ...any) *Fault {
	return &Fault{Kind: FaultReferenceError, Message: fmt.Sprintf(format, args...)}
}

func RangeErrorf(format string, args ...any) *Fault {
	return &Fault{Kind: FaultRangeError, Message: fmt.Sprintf(format, args...)}
}
