package evaluate

import (
	"context"
	"fmt"
	"strings"

	"github.com/artuross/funscript/internal/script/ast"
	"github.com/artuross/funscript/internal/script/runtime"
)

func (e *Evaluator) evalExpression(ctx context.Context, expr ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	value, err := e.evalNode(ctx, expr, env)
	if err != nil {
		return runtime.Undefined(), withPosition(err, expr.Range())
	}

	return value, nil
}

func (e *Evaluator) evalNode(ctx context.Context, expr ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	switch x := expr.(type) {
	case *ast.Literal:
		return evalLiteral(x)

	case *ast.Identifier:
		return env.Get(x.Name)

	case *ast.TemplateLiteral:
		return e.evalTemplateLiteral(ctx, x, env)

	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(ctx, x, env)

	case *ast.ObjectLiteral:
		return e.evalObjectLiteral(ctx, x, env)

	case *ast.FunctionLiteral:
		if x.Name == "" {
			return e.makeFunction(x, env), nil
		}

		// a named function expression can refer to itself
		scope := env.Extend()
		fn := e.makeFunction(x, scope)
		scope.Define(x.Name, fn)

		return fn, nil

	case *ast.ArrowFunction:
		return runtime.FunctionValue(&runtime.Function{
			Params:     x.Params,
			Rest:       x.Rest,
			Body:       x.Body,
			Expression: x.Expression,
			Closure:    env,
		}), nil

	case *ast.Unary:
		return e.evalUnary(ctx, x, env)

	case *ast.Binary:
		left, err := e.evalExpression(ctx, x.Left, env)
		if err != nil {
			return runtime.Undefined(), err
		}

		right, err := e.evalExpression(ctx, x.Right, env)
		if err != nil {
			return runtime.Undefined(), err
		}

		return binaryOperation(x.Operator, left, right)

	case *ast.Logical:
		return e.evalLogical(ctx, x, env)

	case *ast.Conditional:
		test, err := e.evalExpression(ctx, x.Test, env)
		if err != nil {
			return runtime.Undefined(), err
		}

		if runtime.Truthy(test) {
			return e.evalExpression(ctx, x.Consequent, env)
		}

		return e.evalExpression(ctx, x.Alternate, env)

	case *ast.Assignment:
		return e.evalAssignment(ctx, x, env)

	case *ast.MemberAccess:
		base, err := e.evalExpression(ctx, x.Base, env)
		if err != nil {
			return runtime.Undefined(), err
		}

		return getProperty(base, runtime.String(x.Property.Name))

	case *ast.IndexAccess:
		base, err := e.evalExpression(ctx, x.Base, env)
		if err != nil {
			return runtime.Undefined(), err
		}

		property, err := e.evalExpression(ctx, x.Property, env)
		if err != nil {
			return runtime.Undefined(), err
		}

		return getProperty(base, property)

	case *ast.FunctionCall:
		return e.evalCall(ctx, x, env)

	case *ast.Spread:
		return runtime.Undefined(), runtime.TypeErrorf("spread is only allowed in array literals, object literals and calls")

	case *ast.ArrayPattern, *ast.ObjectPattern:
		return runtime.Undefined(), runtime.TypeErrorf("destructuring pattern used as a value")
	}

	return runtime.Undefined(), fmt.Errorf("unsupported expression %T", expr)
}

func evalLiteral(literal *ast.Literal) (runtime.Value, error) {
	switch v := literal.Value.(type) {
	case float64:
		return runtime.Number(v), nil
	case string:
		return runtime.String(v), nil
	case bool:
		return runtime.Boolean(v), nil
	case ast.Keyword:
		if v == ast.ValueNull {
			return runtime.Null(), nil
		}

		return runtime.Undefined(), nil
	}

	return runtime.Undefined(), fmt.Errorf("unsupported literal %T", literal.Value)
}

func (e *Evaluator) evalTemplateLiteral(ctx context.Context, template *ast.TemplateLiteral, env *runtime.Environment) (runtime.Value, error) {
	var sb strings.Builder

	for i, quasi := range template.Quasis {
		sb.WriteString(quasi)

		if i >= len(template.Expressions) {
			continue
		}

		value, err := e.evalExpression(ctx, template.Expressions[i], env)
		if err != nil {
			return runtime.Undefined(), err
		}

		sb.WriteString(runtime.ToString(value))
	}

	return runtime.String(sb.String()), nil
}

func (e *Evaluator) evalArrayLiteral(ctx context.Context, literal *ast.ArrayLiteral, env *runtime.Environment) (runtime.Value, error) {
	elements, err := e.evalElements(ctx, literal.Elements, env)
	if err != nil {
		return runtime.Undefined(), err
	}

	return runtime.NewArray(elements), nil
}

// evalElements evaluates array elements or call arguments, inlining spreads.
func (e *Evaluator) evalElements(ctx context.Context, exprs []ast.Expr, env *runtime.Environment) ([]runtime.Value, error) {
	values := make([]runtime.Value, 0, len(exprs))

	for _, expr := range exprs {
		if expr == nil {
			values = append(values, runtime.Undefined())
			continue
		}

		spread, isSpread := expr.(*ast.Spread)
		if !isSpread {
			value, err := e.evalExpression(ctx, expr, env)
			if err != nil {
				return nil, err
			}

			values = append(values, value)

			continue
		}

		value, err := e.evalExpression(ctx, spread.Argument, env)
		if err != nil {
			return nil, err
		}

		if value.Kind() != runtime.KindArray {
			return nil, runtime.TypeErrorf("cannot spread %s into an array", value.Kind()).At(spread.Range())
		}

		values = append(values, value.AsArray().Elements...)
	}

	return values, nil
}

// evalObjectLiteral applies members in source order, so later keys win.
func (e *Evaluator) evalObjectLiteral(ctx context.Context, literal *ast.ObjectLiteral, env *runtime.Environment) (runtime.Value, error) {
	object := runtime.NewObject()

	for _, member := range literal.Properties {
		switch m := member.(type) {
		case *ast.Spread:
			value, err := e.evalExpression(ctx, m.Argument, env)
			if err != nil {
				return runtime.Undefined(), err
			}

			if value.Kind() != runtime.KindObject {
				return runtime.Undefined(), runtime.TypeErrorf("cannot spread %s into an object", value.Kind()).At(m.Range())
			}

			source := value.AsObject()
			for _, key := range source.Keys() {
				v, _ := source.Get(key)
				if err := object.Set(key, v); err != nil {
					return runtime.Undefined(), err
				}
			}

		case *ast.Property:
			key := m.Key
			if m.Computed != nil {
				keyValue, err := e.evalExpression(ctx, m.Computed, env)
				if err != nil {
					return runtime.Undefined(), err
				}

				k, err := propertyKey(keyValue)
				if err != nil {
					return runtime.Undefined(), withPosition(err, m.Computed.Range())
				}

				key = k
			}

			value, err := e.evalExpression(ctx, m.Value, env)
			if err != nil {
				return runtime.Undefined(), err
			}

			nameFunction(value, m.Value, key)

			if err := object.Set(key, value); err != nil {
				return runtime.Undefined(), err
			}
		}
	}

	return runtime.ObjectValue(object), nil
}

// makeFunction creates a closure over env.
func (e *Evaluator) makeFunction(literal *ast.FunctionLiteral, env *runtime.Environment) runtime.Value {
	fn := &runtime.Function{
		Name:    literal.Name,
		Params:  literal.Params,
		Rest:    literal.Rest,
		Body:    literal.Body,
		Closure: env,
	}

	return runtime.FunctionValue(fn)
}

// nameFunction gives an anonymous function literal the name it is bound to.
func nameFunction(value runtime.Value, expr ast.Expr, name string) {
	switch expr.(type) {
	case *ast.FunctionLiteral, *ast.ArrowFunction:
	default:
		return
	}

	if fn := value.AsFunction(); fn != nil && fn.Name == "" {
		fn.Name = name
	}
}

func (e *Evaluator) evalUnary(ctx context.Context, unary *ast.Unary, env *runtime.Environment) (runtime.Value, error) {
	// typeof tolerates names that are not defined
	if identifier, ok := unary.Operand.(*ast.Identifier); ok && unary.Operator == ast.OperatorTypeof {
		value, found := env.Lookup(identifier.Name)
		if !found {
			return runtime.String("undefined"), nil
		}

		return runtime.String(value.TypeOf()), nil
	}

	operand, err := e.evalExpression(ctx, unary.Operand, env)
	if err != nil {
		return runtime.Undefined(), err
	}

	return unaryOperation(unary.Operator, operand)
}

func (e *Evaluator) evalLogical(ctx context.Context, logical *ast.Logical, env *runtime.Environment) (runtime.Value, error) {
	left, err := e.evalExpression(ctx, logical.Left, env)
	if err != nil {
		return runtime.Undefined(), err
	}

	switch logical.Operator {
	case ast.OperatorAnd:
		if !runtime.Truthy(left) {
			return left, nil
		}

	case ast.OperatorOr:
		if runtime.Truthy(left) {
			return left, nil
		}

	case ast.OperatorNullish:
		if !left.IsNullish() {
			return left, nil
		}

	default:
		return runtime.Undefined(), fmt.Errorf("unsupported logical operator %s", logical.Operator)
	}

	return e.evalExpression(ctx, logical.Right, env)
}

func (e *Evaluator) evalAssignment(ctx context.Context, assignment *ast.Assignment, env *runtime.Environment) (runtime.Value, error) {
	switch target := assignment.Target.(type) {
	case *ast.Identifier:
		value, err := e.assignedValue(ctx, assignment, env, func() (runtime.Value, error) {
			return env.Get(target.Name)
		})
		if err != nil {
			return runtime.Undefined(), err
		}

		nameFunction(value, assignment.Value, target.Name)

		if err := env.Assign(target.Name, value); err != nil {
			return runtime.Undefined(), err
		}

		return value, nil

	case *ast.MemberAccess:
		base, err := e.evalExpression(ctx, target.Base, env)
		if err != nil {
			return runtime.Undefined(), err
		}

		return e.assignProperty(ctx, assignment, env, base, runtime.String(target.Property.Name))

	case *ast.IndexAccess:
		base, err := e.evalExpression(ctx, target.Base, env)
		if err != nil {
			return runtime.Undefined(), err
		}

		property, err := e.evalExpression(ctx, target.Property, env)
		if err != nil {
			return runtime.Undefined(), err
		}

		return e.assignProperty(ctx, assignment, env, base, property)

	case *ast.ArrayPattern, *ast.ObjectPattern:
		value, err := e.evalExpression(ctx, assignment.Value, env)
		if err != nil {
			return runtime.Undefined(), err
		}

		if err := e.bindPattern(ctx, target.(ast.Pattern), value, env, bindAssign); err != nil {
			return runtime.Undefined(), err
		}

		return value, nil
	}

	return runtime.Undefined(), runtime.TypeErrorf("invalid assignment target")
}

func (e *Evaluator) assignProperty(ctx context.Context, assignment *ast.Assignment, env *runtime.Environment, base, property runtime.Value) (runtime.Value, error) {
	value, err := e.assignedValue(ctx, assignment, env, func() (runtime.Value, error) {
		return getProperty(base, property)
	})
	if err != nil {
		return runtime.Undefined(), err
	}

	if err := setProperty(base, property, value); err != nil {
		return runtime.Undefined(), err
	}

	return value, nil
}

// assignedValue evaluates the right-hand side; compound operators combine it
// with the current value of the target, read once.
func (e *Evaluator) assignedValue(ctx context.Context, assignment *ast.Assignment, env *runtime.Environment, current func() (runtime.Value, error)) (runtime.Value, error) {
	op := assignment.Operator.Binary()
	if op == "" {
		return e.evalExpression(ctx, assignment.Value, env)
	}

	left, err := current()
	if err != nil {
		return runtime.Undefined(), err
	}

	right, err := e.evalExpression(ctx, assignment.Value, env)
	if err != nil {
		return runtime.Undefined(), err
	}

	return binaryOperation(op, left, right)
}
