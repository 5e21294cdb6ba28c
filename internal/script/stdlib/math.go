package stdlib

import (
	"math"
	"math/rand"

	"github.com/artuross/funscript/internal/script/runtime"
)

func mathNatives() []runtime.NativeDescriptor {
	return []runtime.NativeDescriptor{
		{Namespace: "Math", Name: "PI", Value: runtime.Number(math.Pi)},
		{Namespace: "Math", Name: "E", Value: runtime.Number(math.E)},
		{Namespace: "Math", Name: "abs", Fn: unaryMath("Math.abs", math.Abs)},
		{Namespace: "Math", Name: "floor", Fn: unaryMath("Math.floor", math.Floor)},
		{Namespace: "Math", Name: "ceil", Fn: unaryMath("Math.ceil", math.Ceil)},
		{Namespace: "Math", Name: "round", Fn: unaryMath("Math.round", round)},
		{Namespace: "Math", Name: "sqrt", Fn: unaryMath("Math.sqrt", math.Sqrt)},
		{Namespace: "Math", Name: "trunc", Fn: unaryMath("Math.trunc", math.Trunc)},
		{Namespace: "Math", Name: "sign", Fn: unaryMath("Math.sign", sign)},
		{Namespace: "Math", Name: "pow", Fn: mathPow},
		{Namespace: "Math", Name: "min", Fn: extremum("Math.min", math.Inf(1), math.Min)},
		{Namespace: "Math", Name: "max", Fn: extremum("Math.max", math.Inf(-1), math.Max)},
		{Namespace: "Math", Name: "random", Fn: mathRandom},
	}
}

func unaryMath(name string, fn func(float64) float64) runtime.NativeFunc {
	return func(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
		x, err := numberArg(name, args, 0)
		if err != nil {
			return runtime.Undefined(), err
		}

		return runtime.Number(fn(x)), nil
	}
}

func mathPow(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	x, err := numberArg("Math.pow", args, 0)
	if err != nil {
		return runtime.Undefined(), err
	}

	y, err := numberArg("Math.pow", args, 1)
	if err != nil {
		return runtime.Undefined(), err
	}

	return runtime.Number(math.Pow(x, y)), nil
}

// extremum folds every argument with pick, starting from identity.
func extremum(name string, identity float64, pick func(float64, float64) float64) runtime.NativeFunc {
	return func(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
		result := identity

		for i := range args {
			x, err := numberArg(name, args, i)
			if err != nil {
				return runtime.Undefined(), err
			}

			result = pick(result, x)
		}

		return runtime.Number(result), nil
	}
}

func mathRandom(_ runtime.CallContext, _ []runtime.Value) (runtime.Value, error) {
	return runtime.Number(rand.Float64()), nil
}

// round rounds half up, so -2.5 becomes -2.
func round(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}

	return math.Floor(x + 0.5)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}

	// keeps 0, -0 and NaN
	return x
}
