package evaluate

import (
	"github.com/artuross/funscript/internal/script/lexer"
	"github.com/artuross/funscript/internal/script/runtime"
)

type CompletionType int

const (
	CompletionNormal CompletionType = iota
	CompletionReturn
	CompletionBreak
	CompletionContinue
	CompletionThrow
)

func (t CompletionType) String() string {
	switch t {
	case CompletionNormal:
		return "normal"
	case CompletionReturn:
		return "return"
	case CompletionBreak:
		return "break"
	case CompletionContinue:
		return "continue"
	case CompletionThrow:
		return "throw"
	}

	return "unknown"
}

// Completion is the outcome of executing a statement. Every construct
// inspects the type and passes on what it does not handle.
type Completion struct {
	Type     CompletionType
	Value    runtime.Value
	Position lexer.Position
}

func (c Completion) Abrupt() bool {
	return c.Type != CompletionNormal
}

func normal(value runtime.Value) Completion {
	return Completion{Type: CompletionNormal, Value: value}
}

func jump(t CompletionType, value runtime.Value, position lexer.Position) Completion {
	return Completion{Type: t, Value: value, Position: position}
}
