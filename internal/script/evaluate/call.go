package evaluate

import (
	"context"
	"slices"

	"github.com/artuross/funscript/internal/script/ast"
	"github.com/artuross/funscript/internal/script/runtime"
)

func (e *Evaluator) evalCall(ctx context.Context, call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	callee, err := e.evalExpression(ctx, call.Callee, env)
	if err != nil {
		return runtime.Undefined(), err
	}

	if !callee.IsCallable() {
		return runtime.Undefined(), runtime.TypeErrorf("%s is not a function", calleeName(call.Callee)).At(call.Callee.Range())
	}

	args, err := e.evalElements(ctx, call.Arguments, env)
	if err != nil {
		return runtime.Undefined(), err
	}

	return e.CallFunction(ctx, callee, args, env)
}

// callFunction binds parameters positionally in a new frame on top of the
// closure: missing arguments are undefined and extra ones are dropped unless
// collected by a rest parameter.
func (e *Evaluator) callFunction(ctx context.Context, fn *runtime.Function, args []runtime.Value) (runtime.Value, error) {
	if err := e.enterCall(ctx); err != nil {
		return runtime.Undefined(), err
	}
	defer e.leaveCall()

	callEnv := fn.Closure.Extend()

	for i, param := range fn.Params {
		if err := e.bindPattern(ctx, param, runtime.Arg(args, i), callEnv, bindLet); err != nil {
			return runtime.Undefined(), err
		}
	}

	if fn.Rest != nil {
		rest := make([]runtime.Value, 0)
		if len(args) > len(fn.Params) {
			rest = slices.Clone(args[len(fn.Params):])
		}

		callEnv.Define(fn.Rest.Name, runtime.NewArray(rest))
	}

	if fn.Expression != nil {
		return e.evalExpression(ctx, fn.Expression, callEnv)
	}

	completion, err := e.execBlock(ctx, fn.Body, callEnv)
	if err != nil {
		return runtime.Undefined(), err
	}

	switch completion.Type {
	case CompletionReturn:
		return completion.Value, nil

	case CompletionThrow:
		return runtime.Undefined(), &ThrownError{Value: completion.Value, Position: completion.Position}

	case CompletionBreak, CompletionContinue:
		return runtime.Undefined(), illegalJump(completion)
	}

	return runtime.Undefined(), nil
}

func (e *Evaluator) callNative(ctx context.Context, native *runtime.Native, args []runtime.Value, env *runtime.Environment) (runtime.Value, error) {
	if err := e.enterCall(ctx); err != nil {
		return runtime.Undefined(), err
	}
	defer e.leaveCall()

	return native.Fn(&callContext{ctx: ctx, evaluator: e, env: env}, args)
}

func (e *Evaluator) enterCall(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if e.depth >= e.maxCallDepth {
		return runtime.RangeErrorf("maximum call depth exceeded")
	}

	e.depth++

	return nil
}

func (e *Evaluator) leaveCall() {
	e.depth--
}

func calleeName(expr ast.Expr) string {
	switch x := expr.(type) {
	case *ast.Identifier:
		return x.Name
	case *ast.MemberAccess:
		return calleeName(x.Base) + "." + x.Property.Name
	case *ast.IndexAccess:
		return calleeName(x.Base) + "[...]"
	case *ast.FunctionCall:
		return calleeName(x.Callee) + "(...)"
	}

	return "expression"
}
