package evaluate

import (
	"fmt"
	"math"

	"github.com/artuross/funscript/internal/script/ast"
	"github.com/artuross/funscript/internal/script/runtime"
)

// binaryOperation applies a non short-circuit binary operator. No operand
// is ever coerced to another kind except by string concatenation.
func binaryOperation(op ast.Operator, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.OperatorEqual:
		return runtime.Boolean(runtime.Equal(left, right)), nil

	case ast.OperatorNotEqual:
		return runtime.Boolean(!runtime.Equal(left, right)), nil

	case ast.OperatorLessThan, ast.OperatorLessThanOrEqual, ast.OperatorGreaterThan, ast.OperatorGreaterThanOrEqual:
		result, ordered, err := runtime.Compare(left, right)
		if err != nil {
			return runtime.Undefined(), err
		}

		if !ordered {
			return runtime.Boolean(false), nil
		}

		switch op {
		case ast.OperatorLessThan:
			return runtime.Boolean(result < 0), nil
		case ast.OperatorLessThanOrEqual:
			return runtime.Boolean(result <= 0), nil
		case ast.OperatorGreaterThan:
			return runtime.Boolean(result > 0), nil
		}

		return runtime.Boolean(result >= 0), nil

	case ast.OperatorAdd:
		if left.Kind() == runtime.KindString || right.Kind() == runtime.KindString {
			return runtime.String(runtime.ToString(left) + runtime.ToString(right)), nil
		}
	}

	if left.Kind() != runtime.KindNumber || right.Kind() != runtime.KindNumber {
		return runtime.Undefined(), runtime.TypeErrorf("cannot apply '%s' to %s and %s", op, left.Kind(), right.Kind())
	}

	x, y := left.AsNumber(), right.AsNumber()

	switch op {
	case ast.OperatorAdd:
		return runtime.Number(x + y), nil
	case ast.OperatorSubtract:
		return runtime.Number(x - y), nil
	case ast.OperatorMultiply:
		return runtime.Number(x * y), nil
	case ast.OperatorDivide:
		// floating point: x/0 is ±Infinity, 0/0 is NaN
		return runtime.Number(x / y), nil
	case ast.OperatorModulo:
		return runtime.Number(math.Mod(x, y)), nil
	case ast.OperatorPower:
		return runtime.Number(math.Pow(x, y)), nil
	}

	return runtime.Undefined(), fmt.Errorf("unsupported binary operator %s", op)
}

func unaryOperation(op ast.Operator, operand runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.OperatorNot:
		return runtime.Boolean(!runtime.Truthy(operand)), nil

	case ast.OperatorTypeof:
		return runtime.String(operand.TypeOf()), nil

	case ast.OperatorNegate, ast.OperatorPlus:
		if operand.Kind() != runtime.KindNumber {
			return runtime.Undefined(), runtime.TypeErrorf("cannot apply unary '%s' to %s", op, operand.Kind())
		}

		if op == ast.OperatorNegate {
			return runtime.Number(-operand.AsNumber()), nil
		}

		return operand, nil
	}

	return runtime.Undefined(), fmt.Errorf("unsupported unary operator %s", op)
}
