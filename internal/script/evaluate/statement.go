package evaluate

import (
	"context"
	"errors"
	"fmt"

	"github.com/artuross/funscript/internal/script/ast"
	"github.com/artuross/funscript/internal/script/runtime"
)

func (e *Evaluator) execStatement(ctx context.Context, stmt ast.Stmt, env *runtime.Environment) (Completion, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		value, err := e.evalExpression(ctx, s.Expression, env)
		if err != nil {
			return Completion{}, err
		}

		return normal(value), nil

	case *ast.VariableDeclaration:
		return e.execVariableDeclaration(ctx, s, env)

	case *ast.FunctionDeclaration:
		// bound when the enclosing statement list was hoisted
		return normal(runtime.Undefined()), nil

	case *ast.BlockStatement:
		return e.execBlock(ctx, s, env.Extend())

	case *ast.EmptyStatement:
		return normal(runtime.Undefined()), nil

	case *ast.IfStatement:
		return e.execIf(ctx, s, env)

	case *ast.WhileStatement:
		return e.execWhile(ctx, s, env)

	case *ast.ForStatement:
		return e.execFor(ctx, s, env)

	case *ast.ReturnStatement:
		value := runtime.Undefined()
		if s.Argument != nil {
			v, err := e.evalExpression(ctx, s.Argument, env)
			if err != nil {
				return Completion{}, err
			}

			value = v
		}

		return jump(CompletionReturn, value, s.Range()), nil

	case *ast.BreakStatement:
		return jump(CompletionBreak, runtime.Undefined(), s.Range()), nil

	case *ast.ContinueStatement:
		return jump(CompletionContinue, runtime.Undefined(), s.Range()), nil

	case *ast.ThrowStatement:
		value, err := e.evalExpression(ctx, s.Argument, env)
		if err != nil {
			return Completion{}, err
		}

		return jump(CompletionThrow, value, s.Range()), nil

	case *ast.SwitchStatement:
		return e.execSwitch(ctx, s, env)

	case *ast.TryStatement:
		return e.execTry(ctx, s, env)
	}

	return Completion{}, fmt.Errorf("unsupported statement %T", stmt)
}

// execBlock runs a block's statements directly in env; callers decide
// whether the block gets its own frame.
func (e *Evaluator) execBlock(ctx context.Context, block *ast.BlockStatement, env *runtime.Environment) (Completion, error) {
	e.hoist(block.Body, env)

	return e.execList(ctx, block.Body, env)
}

func (e *Evaluator) execList(ctx context.Context, stmts []ast.Stmt, env *runtime.Environment) (Completion, error) {
	result := runtime.Undefined()

	for _, stmt := range stmts {
		completion, err := e.exec(ctx, stmt, env)
		if err != nil {
			return Completion{}, err
		}

		if completion.Abrupt() {
			return completion, nil
		}

		result = completion.Value
	}

	return normal(result), nil
}

// hoist binds every function declaration of a statement list up front, so
// functions can be called before the statement that declares them.
func (e *Evaluator) hoist(stmts []ast.Stmt, env *runtime.Environment) {
	for _, stmt := range stmts {
		decl, ok := stmt.(*ast.FunctionDeclaration)
		if !ok {
			continue
		}

		env.Define(decl.Function.Name, e.makeFunction(decl.Function, env))
	}
}

func (e *Evaluator) execVariableDeclaration(ctx context.Context, s *ast.VariableDeclaration, env *runtime.Environment) (Completion, error) {
	mode := bindLet
	if s.Kind == ast.DeclarationConst {
		mode = bindConst
	}

	for _, decl := range s.Declarations {
		value := runtime.Undefined()

		if decl.Init != nil {
			v, err := e.evalExpression(ctx, decl.Init, env)
			if err != nil {
				return Completion{}, err
			}

			if target, ok := decl.Target.(*ast.Identifier); ok {
				nameFunction(v, decl.Init, target.Name)
			}

			value = v
		}

		if err := e.bindPattern(ctx, decl.Target, value, env, mode); err != nil {
			return Completion{}, err
		}
	}

	return normal(runtime.Undefined()), nil
}

func (e *Evaluator) execIf(ctx context.Context, s *ast.IfStatement, env *runtime.Environment) (Completion, error) {
	test, err := e.evalExpression(ctx, s.Test, env)
	if err != nil {
		return Completion{}, err
	}

	if runtime.Truthy(test) {
		return e.exec(ctx, s.Consequent, env)
	}

	if s.Alternate != nil {
		return e.exec(ctx, s.Alternate, env)
	}

	return normal(runtime.Undefined()), nil
}

func (e *Evaluator) execWhile(ctx context.Context, s *ast.WhileStatement, env *runtime.Environment) (Completion, error) {
	result := runtime.Undefined()

	for {
		if err := ctx.Err(); err != nil {
			return Completion{}, err
		}

		test, err := e.evalExpression(ctx, s.Test, env)
		if err != nil {
			return Completion{}, err
		}

		if !runtime.Truthy(test) {
			return normal(result), nil
		}

		completion, err := e.exec(ctx, s.Body, env)
		if err != nil {
			return Completion{}, err
		}

		switch completion.Type {
		case CompletionBreak:
			return normal(result), nil
		case CompletionContinue:
			continue
		case CompletionReturn, CompletionThrow:
			return completion, nil
		}

		result = completion.Value
	}
}

// execFor runs the whole loop in one child frame, so a let-declared loop
// variable is private to the loop and its updates persist across iterations.
func (e *Evaluator) execFor(ctx context.Context, s *ast.ForStatement, env *runtime.Environment) (Completion, error) {
	loopEnv := env.Extend()
	result := runtime.Undefined()

	if s.Init != nil {
		completion, err := e.exec(ctx, s.Init, loopEnv)
		if err != nil {
			return Completion{}, err
		}

		if completion.Abrupt() {
			return completion, nil
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return Completion{}, err
		}

		if s.Test != nil {
			test, err := e.evalExpression(ctx, s.Test, loopEnv)
			if err != nil {
				return Completion{}, err
			}

			if !runtime.Truthy(test) {
				return normal(result), nil
			}
		}

		completion, err := e.exec(ctx, s.Body, loopEnv)
		if err != nil {
			return Completion{}, err
		}

		switch completion.Type {
		case CompletionBreak:
			return normal(result), nil
		case CompletionReturn, CompletionThrow:
			return completion, nil
		case CompletionNormal:
			result = completion.Value
		}

		if s.Update != nil {
			if _, err := e.evalExpression(ctx, s.Update, loopEnv); err != nil {
				return Completion{}, err
			}
		}
	}
}

// execSwitch finds the first matching case (or default) and runs every case
// body from there on until a break.
func (e *Evaluator) execSwitch(ctx context.Context, s *ast.SwitchStatement, env *runtime.Environment) (Completion, error) {
	discriminant, err := e.evalExpression(ctx, s.Discriminant, env)
	if err != nil {
		return Completion{}, err
	}

	switchEnv := env.Extend()
	for _, c := range s.Cases {
		e.hoist(c.Body, switchEnv)
	}

	start, defaultIndex := -1, -1
	for i, c := range s.Cases {
		if c.Test == nil {
			defaultIndex = i
			continue
		}

		test, err := e.evalExpression(ctx, c.Test, switchEnv)
		if err != nil {
			return Completion{}, err
		}

		if runtime.Equal(discriminant, test) {
			start = i
			break
		}
	}

	if start < 0 {
		start = defaultIndex
	}

	if start < 0 {
		return normal(runtime.Undefined()), nil
	}

	result := runtime.Undefined()
	for _, c := range s.Cases[start:] {
		completion, err := e.execList(ctx, c.Body, switchEnv)
		if err != nil {
			return Completion{}, err
		}

		switch completion.Type {
		case CompletionBreak:
			return normal(result), nil
		case CompletionContinue, CompletionReturn, CompletionThrow:
			return completion, nil
		}

		result = completion.Value
	}

	return normal(result), nil
}

// execTry runs the finalizer on every way out of the block and handler,
// including runtime faults. An abrupt finalizer replaces the pending outcome.
func (e *Evaluator) execTry(ctx context.Context, s *ast.TryStatement, env *runtime.Environment) (Completion, error) {
	completion, err := e.execBlock(ctx, s.Block, env.Extend())
	completion, err = e.catchable(completion, err)

	if err == nil && completion.Type == CompletionThrow && s.Handler != nil {
		catchEnv := env.Extend()

		if s.Param != nil {
			err = e.bindPattern(ctx, s.Param, completion.Value, catchEnv, bindLet)
		}

		if err == nil {
			completion, err = e.execBlock(ctx, s.Handler, catchEnv)
		}
	}

	if s.Finalizer == nil {
		return completion, err
	}

	final, finalErr := e.execBlock(ctx, s.Finalizer, env.Extend())
	if finalErr != nil {
		return Completion{}, finalErr
	}

	if final.Abrupt() {
		return final, nil
	}

	return completion, err
}

// catchable converts a runtime fault into a throw completion when faults
// are configured to be catchable.
func (e *Evaluator) catchable(completion Completion, err error) (Completion, error) {
	if err == nil || !e.catchRuntimeFaults {
		return completion, err
	}

	var fault *runtime.Fault
	if !errors.As(err, &fault) {
		return completion, err
	}

	return jump(CompletionThrow, faultValue(fault), fault.Position), nil
}
