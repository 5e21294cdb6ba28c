package runtime

import (
	"context"

	"github.com/artuross/funscript/internal/script/ast"
)

// Function is a user-defined closure. Exactly one of Body and Expression is set.
type Function struct {
	Name       string
	Params     []ast.Pattern
	Rest       *ast.Identifier
	Body       *ast.BlockStatement
	Expression ast.Expr
	Closure    *Environment
}

// CallContext is what a native function sees of its caller.
type CallContext interface {
	Context() context.Context
	Env() *Environment
	// Call invokes any callable value with the same contract as a script call.
	Call(fn Value, args []Value) (Value, error)
}

type NativeFunc func(ctx CallContext, args []Value) (Value, error)

type Native struct {
	Name string
	Fn   NativeFunc
}

// Arg returns args[index] or undefined when the caller passed fewer arguments.
func Arg(args []Value, index int) Value {
	if index < len(args) {
		return args[index]
	}

	return Undefined()
}
