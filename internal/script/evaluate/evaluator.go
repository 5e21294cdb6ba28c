package evaluate

import (
	"context"
	"errors"

	"github.com/artuross/funscript/internal/script/ast"
	"github.com/artuross/funscript/internal/script/runtime"
)

const DefaultMaxCallDepth = 2048

// Evaluator walks a syntax tree. It is not safe for concurrent use.
type Evaluator struct {
	maxCallDepth       int
	catchRuntimeFaults bool
	depth              int
}

func New(options ...func(*Evaluator)) *Evaluator {
	e := &Evaluator{
		maxCallDepth: DefaultMaxCallDepth,
	}

	for _, apply := range options {
		apply(e)
	}

	return e
}

func WithMaxCallDepth(depth int) func(*Evaluator) {
	return func(e *Evaluator) {
		if depth > 0 {
			e.maxCallDepth = depth
		}
	}
}

// WithCatchRuntimeFaults lets try/catch intercept runtime faults as thrown
// {name, message} objects. By default only user throws are catchable.
func WithCatchRuntimeFaults(enabled bool) func(*Evaluator) {
	return func(e *Evaluator) {
		e.catchRuntimeFaults = enabled
	}
}

// Run executes program in env and returns the value of the last statement
// executed. A top-level return ends the program with its value.
func (e *Evaluator) Run(ctx context.Context, program *ast.Program, env *runtime.Environment) (runtime.Value, error) {
	e.hoist(program.Body, env)

	result := runtime.Undefined()
	for _, stmt := range program.Body {
		completion, err := e.exec(ctx, stmt, env)
		if err != nil {
			return runtime.Undefined(), err
		}

		switch completion.Type {
		case CompletionNormal:
			result = completion.Value

		case CompletionReturn:
			return completion.Value, nil

		case CompletionThrow:
			return runtime.Undefined(), &UncaughtError{Value: completion.Value, Position: completion.Position}

		case CompletionBreak, CompletionContinue:
			return runtime.Undefined(), illegalJump(completion)
		}
	}

	return result, nil
}

// CallFunction invokes a user or native function with the script call contract.
func (e *Evaluator) CallFunction(ctx context.Context, fn runtime.Value, args []runtime.Value, env *runtime.Environment) (runtime.Value, error) {
	switch fn.Kind() {
	case runtime.KindFunction:
		return e.callFunction(ctx, fn.AsFunction(), args)

	case runtime.KindNative:
		return e.callNative(ctx, fn.AsNative(), args, env)
	}

	return runtime.Undefined(), runtime.TypeErrorf("%s is not a function", runtime.Inspect(fn))
}

// exec runs one statement and lifts a throw raised inside an expression
// into a throw completion.
func (e *Evaluator) exec(ctx context.Context, stmt ast.Stmt, env *runtime.Environment) (Completion, error) {
	completion, err := e.execStatement(ctx, stmt, env)
	if err != nil {
		var thrown *ThrownError
		if errors.As(err, &thrown) {
			return jump(CompletionThrow, thrown.Value, thrown.Position), nil
		}

		return Completion{}, err
	}

	return completion, nil
}

func illegalJump(completion Completion) error {
	return runtime.TypeErrorf("illegal %s statement", completion.Type).At(completion.Position)
}

type callContext struct {
	ctx       context.Context
	evaluator *Evaluator
	env       *runtime.Environment
}

func (c *callContext) Context() context.Context {
	return c.ctx
}

func (c *callContext) Env() *runtime.Environment {
	return c.env
}

func (c *callContext) Call(fn runtime.Value, args []runtime.Value) (runtime.Value, error) {
	return c.evaluator.CallFunction(c.ctx, fn, args, c.env)
}
