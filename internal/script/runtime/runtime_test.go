package runtime_test

import (
	"errors"
	"math"
	"testing"

	"github.com/artuross/funscript/internal/script/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func array(elements ...runtime.Value) runtime.Value {
	return runtime.NewArray(elements)
}

func object(t *testing.T, pairs ...any) runtime.Value {
	t.Helper()

	o := runtime.NewObject()
	for i := 0; i < len(pairs); i += 2 {
		require.NoError(t, o.Set(pairs[i].(string), pairs[i+1].(runtime.Value)))
	}

	return runtime.ObjectValue(o)
}

func TestTruthy(t *testing.T) {
	type testCase struct {
		name   string
		value  runtime.Value
		truthy bool
	}

	testCases := []testCase{
		{"undefined", runtime.Undefined(), false},
		{"null", runtime.Null(), false},
		{"false", runtime.Boolean(false), false},
		{"true", runtime.Boolean(true), true},
		{"zero", runtime.Number(0), false},
		{"negative zero", runtime.Number(math.Copysign(0, -1)), false},
		{"NaN", runtime.Number(math.NaN()), false},
		{"number", runtime.Number(-3), true},
		{"empty string", runtime.String(""), false},
		{"string", runtime.String("0"), true},
		{"empty array", array(), true},
		{"empty object", runtime.ObjectValue(runtime.NewObject()), true},
		{"native", runtime.NativeValue(&runtime.Native{Name: "f"}), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.truthy, runtime.Truthy(tc.value))
		})
	}
}

func TestEqual(t *testing.T) {
	fn := &runtime.Function{Name: "f"}

	type testCase struct {
		name  string
		left  runtime.Value
		right runtime.Value
		equal bool
	}

	testCases := []testCase{
		{"numbers", runtime.Number(2), runtime.Number(2), true},
		{"NaN", runtime.Number(math.NaN()), runtime.Number(math.NaN()), false},
		{"string and number", runtime.String("5"), runtime.Number(5), false},
		{"strings", runtime.String("a"), runtime.String("a"), true},
		{"null and undefined", runtime.Null(), runtime.Undefined(), false},
		{"null and null", runtime.Null(), runtime.Null(), true},
		{"booleans", runtime.Boolean(true), runtime.Boolean(false), false},
		{"arrays", array(runtime.Number(1), array(runtime.String("x"))), array(runtime.Number(1), array(runtime.String("x"))), true},
		{"arrays of different length", array(runtime.Number(1)), array(runtime.Number(1), runtime.Number(2)), false},
		{
			"objects ignore key order",
			object(t, "a", runtime.Number(1), "b", runtime.Number(2)),
			object(t, "b", runtime.Number(2), "a", runtime.Number(1)),
			true,
		},
		{"objects with different keys", object(t, "a", runtime.Number(1)), object(t, "b", runtime.Number(1)), false},
		{"same function", runtime.FunctionValue(fn), runtime.FunctionValue(fn), true},
		{"different functions", runtime.FunctionValue(fn), runtime.FunctionValue(&runtime.Function{Name: "f"}), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.equal, runtime.Equal(tc.left, tc.right))
			assert.Equal(t, tc.equal, runtime.Equal(tc.right, tc.left))
		})
	}

	t.Run("cyclic arrays", func(t *testing.T) {
		a := runtime.NewArray(nil)
		a.AsArray().Elements = append(a.AsArray().Elements, a)

		b := runtime.NewArray(nil)
		b.AsArray().Elements = append(b.AsArray().Elements, b)

		assert.True(t, runtime.Equal(a, b))
	})
}

func TestCompare(t *testing.T) {
	result, ordered, err := runtime.Compare(runtime.Number(1), runtime.Number(2))
	require.NoError(t, err)
	assert.True(t, ordered)
	assert.Equal(t, -1, result)

	result, ordered, err = runtime.Compare(runtime.String("b"), runtime.String("a"))
	require.NoError(t, err)
	assert.True(t, ordered)
	assert.Equal(t, 1, result)

	_, ordered, err = runtime.Compare(runtime.Number(math.NaN()), runtime.Number(1))
	require.NoError(t, err)
	assert.False(t, ordered)

	_, _, err = runtime.Compare(runtime.String("1"), runtime.Number(1))
	var fault *runtime.Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, runtime.FaultTypeError, fault.Kind)
}

func TestFormat(t *testing.T) {
	type testCase struct {
		name    string
		value   runtime.Value
		str     string
		inspect string
	}

	testCases := []testCase{
		{"integer", runtime.Number(42), "42", "42"},
		{"fraction", runtime.Number(0.5), "0.5", "0.5"},
		{"negative zero", runtime.Number(math.Copysign(0, -1)), "0", "0"},
		{"large", runtime.Number(1e21), "1e+21", "1e+21"},
		{"small", runtime.Number(1.5e-7), "1.5e-7", "1.5e-7"},
		{"just below exponent form", runtime.Number(123456789012345680000), "123456789012345680000", "123456789012345680000"},
		{"infinity", runtime.Number(math.Inf(1)), "Infinity", "Infinity"},
		{"negative infinity", runtime.Number(math.Inf(-1)), "-Infinity", "-Infinity"},
		{"NaN", runtime.Number(math.NaN()), "NaN", "NaN"},
		{"string", runtime.String("hi"), "hi", `"hi"`},
		{"undefined", runtime.Undefined(), "undefined", "undefined"},
		{"null", runtime.Null(), "null", "null"},
		{"array", array(runtime.Number(1), runtime.String("a")), `[1, "a"]`, `[1, "a"]`},
		{
			"object",
			object(t, "a", runtime.Number(1), "b c", array()),
			`{a: 1, "b c": []}`,
			`{a: 1, "b c": []}`,
		},
		{"function", runtime.FunctionValue(&runtime.Function{Name: "add"}), "<function add>", "<function add>"},
		{"anonymous function", runtime.FunctionValue(&runtime.Function{}), "<function>", "<function>"},
		{"native", runtime.NativeValue(&runtime.Native{Name: "Math.abs"}), "<native Math.abs>", "<native Math.abs>"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.str, runtime.ToString(tc.value))
			assert.Equal(t, tc.inspect, runtime.Inspect(tc.value))
		})
	}

	t.Run("circular", func(t *testing.T) {
		o := runtime.NewObject()
		self := runtime.ObjectValue(o)
		require.NoError(t, o.Set("self", self))

		assert.Equal(t, "{self: {Circular}}", runtime.Inspect(self))
	})
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, "undefined", runtime.Undefined().TypeOf())
	assert.Equal(t, "object", runtime.Null().TypeOf())
	assert.Equal(t, "object", array().TypeOf())
	assert.Equal(t, "number", runtime.Number(1).TypeOf())
	assert.Equal(t, "function", runtime.NativeValue(&runtime.Native{}).TypeOf())
}

func TestObject(t *testing.T) {
	o := runtime.NewObject()
	require.NoError(t, o.Set("b", runtime.Number(1)))
	require.NoError(t, o.Set("a", runtime.Number(2)))
	require.NoError(t, o.Set("b", runtime.Number(3)))

	assert.Equal(t, []string{"b", "a"}, o.Keys())

	value, ok := o.Get("b")
	require.True(t, ok)
	assert.Equal(t, runtime.Number(3), value)

	o.Freeze()

	err := o.Set("c", runtime.Null())
	var fault *runtime.Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, runtime.FaultTypeError, fault.Kind)
	assert.False(t, o.Has("c"))
}

func TestArray(t *testing.T) {
	a := runtime.NewArray(nil).AsArray()
	a.Set(2, runtime.Number(7))

	assert.Equal(t, 3, a.Len())
	assert.Equal(t, runtime.Undefined(), a.Get(0))
	assert.Equal(t, runtime.Number(7), a.Get(2))
	assert.Equal(t, runtime.Undefined(), a.Get(10))
}

func TestEnvironment(t *testing.T) {
	global := runtime.NewEnvironment(nil)
	global.Define("x", runtime.Number(1))
	global.DefineConst("limit", runtime.Number(10))

	inner := global.Extend()

	t.Run("get walks the chain", func(t *testing.T) {
		value, err := inner.Get("x")
		require.NoError(t, err)
		assert.Equal(t, runtime.Number(1), value)
	})

	t.Run("assign mutates the defining frame", func(t *testing.T) {
		require.NoError(t, inner.Assign("x", runtime.Number(2)))

		value, err := global.Get("x")
		require.NoError(t, err)
		assert.Equal(t, runtime.Number(2), value)
		assert.False(t, inner.HasOwn("x"))
	})

	t.Run("define shadows", func(t *testing.T) {
		inner.Define("x", runtime.String("inner"))

		value, _ := inner.Get("x")
		assert.Equal(t, runtime.String("inner"), value)

		value, _ = global.Get("x")
		assert.Equal(t, runtime.Number(2), value)
	})

	t.Run("undefined names", func(t *testing.T) {
		_, err := inner.Get("missing")

		var fault *runtime.Fault
		require.True(t, errors.As(err, &fault))
		assert.Equal(t, runtime.FaultReferenceError, fault.Kind)
		assert.Equal(t, "missing is not defined", fault.Message)

		err = inner.Assign("missing", runtime.Null())
		require.True(t, errors.As(err, &fault))
		assert.Equal(t, runtime.FaultReferenceError, fault.Kind)
	})

	t.Run("constants", func(t *testing.T) {
		err := inner.Assign("limit", runtime.Number(0))

		var fault *runtime.Fault
		require.True(t, errors.As(err, &fault))
		assert.Equal(t, runtime.FaultTypeError, fault.Kind)

		value, _ := inner.Get("limit")
		assert.Equal(t, runtime.Number(10), value)
	})

	t.Run("names", func(t *testing.T) {
		assert.Equal(t, []string{"limit", "x"}, inner.Names())
	})
}

func TestBuildGlobals(t *testing.T) {
	noop := func(ctx runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
		return runtime.Undefined(), nil
	}

	t.Run("namespaces and constants", func(t *testing.T) {
		env, err := runtime.BuildGlobals([]runtime.NativeDescriptor{
			{Name: "print", Fn: noop},
			{Namespace: "Math", Name: "abs", Fn: noop},
			{Namespace: "Math", Name: "PI", Value: runtime.Number(math.Pi)},
		})
		require.NoError(t, err)

		printValue, err := env.Get("print")
		require.NoError(t, err)
		assert.Equal(t, runtime.KindNative, printValue.Kind())
		assert.Equal(t, "print", printValue.AsNative().Name)

		mathValue, err := env.Get("Math")
		require.NoError(t, err)
		require.Equal(t, runtime.KindObject, mathValue.Kind())
		assert.True(t, mathValue.AsObject().Frozen())
		assert.Equal(t, []string{"abs", "PI"}, mathValue.AsObject().Keys())

		abs, _ := mathValue.AsObject().Get("abs")
		assert.Equal(t, "Math.abs", abs.AsNative().Name)

		require.Error(t, env.Assign("print", runtime.Null()))
		require.Error(t, mathValue.AsObject().Set("abs", runtime.Null()))
	})

	t.Run("duplicates", func(t *testing.T) {
		type testCase struct {
			name        string
			descriptors []runtime.NativeDescriptor
		}

		testCases := []testCase{
			{
				name: "top level",
				descriptors: []runtime.NativeDescriptor{
					{Name: "print", Fn: noop},
					{Name: "print", Fn: noop},
				},
			},
			{
				name: "namespace member",
				descriptors: []runtime.NativeDescriptor{
					{Namespace: "Math", Name: "abs", Fn: noop},
					{Namespace: "Math", Name: "abs", Fn: noop},
				},
			},
			{
				name: "namespace clashes with top level",
				descriptors: []runtime.NativeDescriptor{
					{Name: "Math", Value: runtime.Number(1)},
					{Namespace: "Math", Name: "abs", Fn: noop},
				},
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := runtime.BuildGlobals(tc.descriptors)
				assert.ErrorIs(t, err, runtime.ErrDuplicateGlobal)
			})
		}
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := runtime.BuildGlobals([]runtime.NativeDescriptor{{Namespace: "Math", Fn: noop}})
		assert.ErrorIs(t, err, runtime.ErrInvalidDescriptor)
	})
}
