package stdlib

import (
	"math"
	"slices"

	"github.com/artuross/funscript/internal/script/runtime"
)

// maxRangeLength bounds the arrays Lambda.range may allocate.
const maxRangeLength = 1 << 24

func lambdaNatives() []runtime.NativeDescriptor {
	return []runtime.NativeDescriptor{
		{Namespace: "Lambda", Name: "map", Fn: lambdaMap},
		{Namespace: "Lambda", Name: "filter", Fn: lambdaFilter},
		{Namespace: "Lambda", Name: "reduce", Fn: lambdaReduce},
		{Namespace: "Lambda", Name: "forEach", Fn: lambdaForEach},
		{Namespace: "Lambda", Name: "find", Fn: lambdaFind},
		{Namespace: "Lambda", Name: "some", Fn: lambdaSome},
		{Namespace: "Lambda", Name: "every", Fn: lambdaEvery},
		{Namespace: "Lambda", Name: "range", Fn: lambdaRange},
		{Namespace: "Lambda", Name: "sort", Fn: lambdaSort},
		{Namespace: "Lambda", Name: "reverse", Fn: lambdaReverse},
		{Namespace: "Lambda", Name: "keys", Fn: lambdaKeys},
		{Namespace: "Lambda", Name: "values", Fn: lambdaValues},
		{Namespace: "Lambda", Name: "entries", Fn: lambdaEntries},
		{Namespace: "Lambda", Name: "zip", Fn: lambdaZip},
		{Namespace: "Lambda", Name: "flatMap", Fn: lambdaFlatMap},
		{Namespace: "Lambda", Name: "pipe", Fn: lambdaPipe},
	}
}

// each calls fn(element, index) for a snapshot of the array elements and
// stops early when visit returns false.
func each(name string, ctx runtime.CallContext, args []runtime.Value, visit func(element, result runtime.Value) bool) error {
	array, err := arrayArg(name, args, 0)
	if err != nil {
		return err
	}

	fn, err := functionArg(name, args, 1)
	if err != nil {
		return err
	}

	for i, element := range slices.Clone(array.Elements) {
		result, err := ctx.Call(fn, []runtime.Value{element, runtime.Number(float64(i))})
		if err != nil {
			return err
		}

		if !visit(element, result) {
			return nil
		}
	}

	return nil
}

func lambdaMap(ctx runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	out := make([]runtime.Value, 0)

	err := each("Lambda.map", ctx, args, func(_, result runtime.Value) bool {
		out = append(out, result)
		return true
	})
	if err != nil {
		return runtime.Undefined(), err
	}

	return runtime.NewArray(out), nil
}

func lambdaFilter(ctx runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	out := make([]runtime.Value, 0)

	err := each("Lambda.filter", ctx, args, func(element, result runtime.Value) bool {
		if runtime.Truthy(result) {
			out = append(out, element)
		}

		return true
	})
	if err != nil {
		return runtime.Undefined(), err
	}

	return runtime.NewArray(out), nil
}

func lambdaForEach(ctx runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	err := each("Lambda.forEach", ctx, args, func(_, _ runtime.Value) bool {
		return true
	})

	return runtime.Undefined(), err
}

func lambdaFind(ctx runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	found := runtime.Undefined()

	err := each("Lambda.find", ctx, args, func(element, result runtime.Value) bool {
		if runtime.Truthy(result) {
			found = element
			return false
		}

		return true
	})

	return found, err
}

func lambdaSome(ctx runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	matched := false

	err := each("Lambda.some", ctx, args, func(_, result runtime.Value) bool {
		matched = runtime.Truthy(result)
		return !matched
	})

	return runtime.Boolean(matched), err
}

func lambdaEvery(ctx runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	all := true

	err := each("Lambda.every", ctx, args, func(_, result runtime.Value) bool {
		all = runtime.Truthy(result)
		return all
	})

	return runtime.Boolean(all), err
}

// lambdaReduce folds left with fn(accumulator, element, index). Without an
// initial value the first element seeds the accumulator.
func lambdaReduce(ctx runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	array, err := arrayArg("Lambda.reduce", args, 0)
	if err != nil {
		return runtime.Undefined(), err
	}

	fn, err := functionArg("Lambda.reduce", args, 1)
	if err != nil {
		return runtime.Undefined(), err
	}

	elements := slices.Clone(array.Elements)
	start := 0

	var accumulator runtime.Value
	switch {
	case len(args) > 2:
		accumulator = args[2]
	case len(elements) == 0:
		return runtime.Undefined(), runtime.TypeErrorf("Lambda.reduce of empty array with no initial value")
	default:
		accumulator = elements[0]
		start = 1
	}

	for i := start; i < len(elements); i++ {
		accumulator, err = ctx.Call(fn, []runtime.Value{accumulator, elements[i], runtime.Number(float64(i))})
		if err != nil {
			return runtime.Undefined(), err
		}
	}

	return accumulator, nil
}

// lambdaRange accepts range(end), range(start, end) and range(start, end, step).
func lambdaRange(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	bounds := make([]float64, len(args))
	for i := range args {
		n, err := numberArg("Lambda.range", args, i)
		if err != nil {
			return runtime.Undefined(), err
		}

		bounds[i] = n
	}

	start, end, step := 0.0, 0.0, 1.0
	switch len(bounds) {
	case 1:
		end = bounds[0]
	case 2:
		start, end = bounds[0], bounds[1]
	case 3:
		start, end, step = bounds[0], bounds[1], bounds[2]
	default:
		return runtime.Undefined(), runtime.TypeErrorf("Lambda.range expects 1 to 3 arguments, got %d", len(bounds))
	}

	if step == 0 || math.IsNaN(step) {
		return runtime.Undefined(), runtime.RangeErrorf("Lambda.range step must not be zero")
	}

	count := math.Ceil((end - start) / step)
	if math.IsNaN(count) || count < 0 {
		count = 0
	}

	if count > maxRangeLength {
		return runtime.Undefined(), runtime.RangeErrorf("Lambda.range of %s elements is too large", runtime.FormatNumber(count))
	}

	out := make([]runtime.Value, int(count))
	for i := range out {
		out[i] = runtime.Number(start + float64(i)*step)
	}

	return runtime.NewArray(out), nil
}

// lambdaSort returns a sorted copy. Without a comparator numbers and strings
// sort in natural order; mixing kinds is a type fault.
func lambdaSort(ctx runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	array, err := arrayArg("Lambda.sort", args, 0)
	if err != nil {
		return runtime.Undefined(), err
	}

	comparator := runtime.Undefined()
	if len(args) > 1 {
		comparator, err = functionArg("Lambda.sort", args, 1)
		if err != nil {
			return runtime.Undefined(), err
		}
	}

	out := slices.Clone(array.Elements)

	var sortErr error
	slices.SortStableFunc(out, func(a, b runtime.Value) int {
		if sortErr != nil {
			return 0
		}

		if comparator.IsCallable() {
			result, err := ctx.Call(comparator, []runtime.Value{a, b})
			if err != nil {
				sortErr = err
				return 0
			}

			if result.Kind() != runtime.KindNumber {
				sortErr = runtime.TypeErrorf("Lambda.sort comparator must return a number, got %s", result.Kind())
				return 0
			}

			switch n := result.AsNumber(); {
			case n < 0:
				return -1
			case n > 0:
				return 1
			}

			return 0
		}

		result, _, err := runtime.Compare(a, b)
		if err != nil {
			sortErr = err
		}

		return result
	})
	if sortErr != nil {
		return runtime.Undefined(), sortErr
	}

	return runtime.NewArray(out), nil
}

func lambdaReverse(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	array, err := arrayArg("Lambda.reverse", args, 0)
	if err != nil {
		return runtime.Undefined(), err
	}

	out := slices.Clone(array.Elements)
	slices.Reverse(out)

	return runtime.NewArray(out), nil
}

func lambdaKeys(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	object, err := objectArg("Lambda.keys", args, 0)
	if err != nil {
		return runtime.Undefined(), err
	}

	keys := object.Keys()
	out := make([]runtime.Value, len(keys))
	for i, key := range keys {
		out[i] = runtime.String(key)
	}

	return runtime.NewArray(out), nil
}

func lambdaValues(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	object, err := objectArg("Lambda.values", args, 0)
	if err != nil {
		return runtime.Undefined(), err
	}

	keys := object.Keys()
	out := make([]runtime.Value, len(keys))
	for i, key := range keys {
		out[i], _ = object.Get(key)
	}

	return runtime.NewArray(out), nil
}

func lambdaEntries(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	object, err := objectArg("Lambda.entries", args, 0)
	if err != nil {
		return runtime.Undefined(), err
	}

	keys := object.Keys()
	out := make([]runtime.Value, len(keys))
	for i, key := range keys {
		value, _ := object.Get(key)
		out[i] = runtime.NewArray([]runtime.Value{runtime.String(key), value})
	}

	return runtime.NewArray(out), nil
}

// lambdaZip pairs elements up to the length of the shorter array.
func lambdaZip(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	left, err := arrayArg("Lambda.zip", args, 0)
	if err != nil {
		return runtime.Undefined(), err
	}

	right, err := arrayArg("Lambda.zip", args, 1)
	if err != nil {
		return runtime.Undefined(), err
	}

	n := min(left.Len(), right.Len())
	out := make([]runtime.Value, n)
	for i := 0; i < n; i++ {
		out[i] = runtime.NewArray([]runtime.Value{left.Get(i), right.Get(i)})
	}

	return runtime.NewArray(out), nil
}

// lambdaFlatMap flattens array results one level; other results are kept.
func lambdaFlatMap(ctx runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	out := make([]runtime.Value, 0)

	err := each("Lambda.flatMap", ctx, args, func(_, result runtime.Value) bool {
		if result.Kind() == runtime.KindArray {
			out = append(out, result.AsArray().Elements...)
		} else {
			out = append(out, result)
		}

		return true
	})
	if err != nil {
		return runtime.Undefined(), err
	}

	return runtime.NewArray(out), nil
}

// lambdaPipe threads a value through each function in turn.
func lambdaPipe(ctx runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	value := runtime.Arg(args, 0)

	for i := 1; i < len(args); i++ {
		fn, err := functionArg("Lambda.pipe", args, i)
		if err != nil {
			return runtime.Undefined(), err
		}

		value, err = ctx.Call(fn, []runtime.Value{value})
		if err != nil {
			return runtime.Undefined(), err
		}
	}

	return value, nil
}
