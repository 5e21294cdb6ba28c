package evaluate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/artuross/funscript/internal/script/evaluate"
	"github.com/artuross/funscript/internal/script/lexer"
	"github.com/artuross/funscript/internal/script/parser"
	"github.com/artuross/funscript/internal/script/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string, options ...func(*evaluate.Evaluator)) (runtime.Value, *runtime.Environment, error) {
	t.Helper()

	program, err := parser.NewParser(lexer.NewLexer(src)).Parse()
	require.NoError(t, err)

	env := runtime.NewEnvironment(nil)
	value, err := evaluate.New(options...).Run(context.Background(), program, env)

	return value, env, err
}

func requireFault(t *testing.T, err error, kind runtime.FaultKind, message string) *runtime.Fault {
	t.Helper()

	var fault *runtime.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, kind, fault.Kind)
	assert.Equal(t, message, fault.Message)

	return fault
}

func TestEvaluator(t *testing.T) {
	type testCase struct {
		name   string
		src    string
		output string
	}

	testCases := []testCase{
		{
			name:   "arithmetic",
			src:    "1 + 2 * 3 - 4 / 2",
			output: "5",
		},
		{
			name:   "addition of numbers",
			src:    "5 + 3",
			output: "8",
		},
		{
			name:   "concatenation with a number",
			src:    `5 + "x"`,
			output: `"5x"`,
		},
		{
			name:   "no coercion in equality",
			src:    `"5" == 5`,
			output: "false",
		},
		{
			name:   "division by zero",
			src:    "1 / 0",
			output: "Infinity",
		},
		{
			name:   "power is right associative",
			src:    "2 ** 3 ** 2",
			output: "512",
		},
		{
			name:   "modulo keeps sign of dividend",
			src:    "-7 % 3",
			output: "-1",
		},
		{
			name:   "logical operators return operands",
			src:    `[0 || 5, 1 && "b", 0 ?? 5, null ?? "d", undefined ?? 1]`,
			output: `[5, "b", 0, "d", 1]`,
		},
		{
			name:   "conditional",
			src:    `let n = 3; n > 2 ? "big" : "small"`,
			output: `"big"`,
		},
		{
			name:   "typeof",
			src:    `[typeof nope, typeof [1], typeof null, typeof 1, typeof "", typeof (() => 1)]`,
			output: `["undefined", "object", "object", "number", "string", "function"]`,
		},
		{
			name:   "template literal",
			src:    "let n = 2; `n=${n + 1} ${[1]}`",
			output: `"n=3 [1]"`,
		},
		{
			name:   "string properties",
			src:    `["héllo".length, "abc"[1], "abc"[5]]`,
			output: `[5, "b", undefined]`,
		},
		{
			name:   "array spread copies",
			src:    "let a = [1, 2]; let b = [...a]; b[0] = 9; [a, b]",
			output: "[[1, 2], [9, 2]]",
		},
		{
			name:   "object spread with later keys winning",
			src:    "({...{a: 1, b: 2}, b: 3})",
			output: "{a: 1, b: 3}",
		},
		{
			name:   "computed and shorthand keys",
			src:    `let k = "x"; let v = 1; ({[k + "1"]: v, v, 2: true})`,
			output: `{x1: 1, v: 1, "2": true}`,
		},
		{
			name:   "array holes",
			src:    "[1, , 3]",
			output: "[1, undefined, 3]",
		},
		{
			name:   "array destructuring with rest",
			src:    "let [x, , ...rest] = [1, 2, 3, 4]; [x, rest]",
			output: "[1, [3, 4]]",
		},
		{
			name:   "array destructuring of a short array",
			src:    "let [p, q] = [1]; q",
			output: "undefined",
		},
		{
			name:   "object destructuring with rest",
			src:    "let {a, ...rest} = {a: 1, b: 2, c: 3}; [a, rest]",
			output: "[1, {b: 2, c: 3}]",
		},
		{
			name:   "nested destructuring with rename",
			src:    "const {p: [first], q: {r}} = {p: [7, 8], q: {r: 9}}; first + r",
			output: "16",
		},
		{
			name:   "destructuring assignment swaps",
			src:    "let a = 1; let b = 2; [a, b] = [b, a]; [a, b]",
			output: "[2, 1]",
		},
		{
			name:   "compound assignment to a property",
			src:    "let o = {n: 1}; o.n += 2; o[\"n\"] *= 2; o.n",
			output: "6",
		},
		{
			name:   "index assignment grows arrays",
			src:    "let a = []; a[2] = 1; a",
			output: "[undefined, undefined, 1]",
		},
		{
			name: "closures capture per iteration block scope",
			src: `
				let fs = [];
				for (let i = 0; i < 3; i += 1) {
					let j = i;
					fs[i] = () => j;
				}
				[fs[0](), fs[1](), fs[2]()]
			`,
			output: "[0, 1, 2]",
		},
		{
			name: "closures share captured variables",
			src: `
				let n = 0;
				let inc = () => { n = n + 1; return n; };
				inc();
				inc();
				n
			`,
			output: "2",
		},
		{
			name: "for loop",
			src: `
				let s = 0;
				for (let i = 0; i < 5; i += 1) {
					s += i;
				}
				s
			`,
			output: "10",
		},
		{
			name: "while with continue",
			src: `
				let i = 0;
				let s = 0;
				while (i < 5) {
					i += 1;
					if (i % 2 == 0) continue;
					s += i;
				}
				s
			`,
			output: "9",
		},
		{
			name: "switch falls through until break",
			src: `
				let out = [];
				switch (2) {
					case 1: out[out.length] = "one";
					case 2: out[out.length] = "two";
					case 3: out[out.length] = "three"; break;
					case 4: out[out.length] = "four";
				}
				out
			`,
			output: `["two", "three"]`,
		},
		{
			name: "switch default falls through",
			src: `
				let x = 0;
				switch (9) {
					case 1: x = 1;
					default: x = 2;
					case 3: x += 1;
				}
				x
			`,
			output: "3",
		},
		{
			name: "function declarations are hoisted",
			src: `
				let r = twice(4);
				function twice(x) { return x * 2; }
				r
			`,
			output: "8",
		},
		{
			name:   "named function expression recursion",
			src:    "let fact = function f(n) { return n <= 1 ? 1 : n * f(n - 1); }; fact(5)",
			output: "120",
		},
		{
			name:   "missing arguments are undefined",
			src:    "function f(a, b) { return b; } f(1)",
			output: "undefined",
		},
		{
			name:   "rest parameters",
			src:    "let f = (a, ...r) => r; [f(1, 2, 3), f()]",
			output: "[[2, 3], []]",
		},
		{
			name:   "spread arguments",
			src:    "let add = (a, b, c) => a + b + c; add(...[1, 2], 3)",
			output: "6",
		},
		{
			name:   "destructured parameters",
			src:    "let f = ({a}, [b]) => a + b; f({a: 1}, [2])",
			output: "3",
		},
		{
			name:   "function values take their binding name",
			src:    "let f = function () {}; const o = {m() {}}; [f, o.m]",
			output: "[<function f>, <function m>]",
		},
		{
			name: "catch binds the thrown value",
			src: `
				let r;
				try {
					throw {message: "bad"};
				} catch (e) {
					r = e.message;
				}
				r
			`,
			output: `"bad"`,
		},
		{
			name: "catch across function calls",
			src: `
				function fail() { throw "boom"; }
				let r;
				try { fail(); } catch (e) { r = e; }
				r
			`,
			output: `"boom"`,
		},
		{
			name: "finally runs after return",
			src: `
				let log = [];
				function f() {
					try {
						log[log.length] = "try";
						return "r";
					} finally {
						log[log.length] = "finally";
					}
				}
				let v = f();
				[v, log]
			`,
			output: `["r", ["try", "finally"]]`,
		},
		{
			name:   "abrupt finally overrides",
			src:    "function g() { try { return 1; } finally { return 2; } } g()",
			output: "2",
		},
		{
			name:   "top level return ends the program",
			src:    "let a = 1; return a + 1; a = 5",
			output: "2",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, _, err := run(t, tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.output, runtime.Inspect(value))
		})
	}
}

func TestEvaluatorFaults(t *testing.T) {
	type testCase struct {
		name    string
		src     string
		kind    runtime.FaultKind
		message string
	}

	testCases := []testCase{
		{"undefined variable", "y + 1", runtime.FaultReferenceError, "y is not defined"},
		{"assignment to undeclared", "y = 1", runtime.FaultReferenceError, "y is not defined"},
		{"const assignment", "const c = 1; c = 2", runtime.FaultTypeError, "assignment to constant variable 'c'"},
		{"const destructuring", "const [c] = [1]; [c] = [2]", runtime.FaultTypeError, "assignment to constant variable 'c'"},
		{"mixed arithmetic", `1 - "a"`, runtime.FaultTypeError, "cannot apply '-' to number and string"},
		{"mixed comparison", `1 < "a"`, runtime.FaultTypeError, "cannot compare number with string"},
		{"unary minus on string", `-"a"`, runtime.FaultTypeError, "cannot apply unary '-' to string"},
		{"not a function", "let x = 1; x()", runtime.FaultTypeError, "x is not a function"},
		{"method not a function", "let o = {}; o.run()", runtime.FaultTypeError, "o.run is not a function"},
		{"property of null", "null.x", runtime.FaultTypeError, "cannot read property 'x' of null"},
		{"spread of non array", "[...1]", runtime.FaultTypeError, "cannot spread number into an array"},
		{"destructure non array", "let [a] = {}", runtime.FaultTypeError, "cannot destructure object as an array"},
		{"destructure non object", "let {a} = 1", runtime.FaultTypeError, "cannot destructure number as an object"},
		{"break outside loop", "break", runtime.FaultTypeError, "illegal break statement"},
		{"continue escaping a function", "function f() { continue; } f()", runtime.FaultTypeError, "illegal continue statement"},
		{"array index out of range", "let a = []; a[100000000] = 1", runtime.FaultRangeError, "array index 100000000 out of range"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := run(t, tc.src)
			fault := requireFault(t, err, tc.kind, tc.message)
			assert.True(t, fault.HasPosition())
		})
	}

	t.Run("fault position", func(t *testing.T) {
		_, _, err := run(t, "let a = 1;\nlet b = a + nope;")

		fault := requireFault(t, err, runtime.FaultReferenceError, "nope is not defined")
		assert.Equal(t, lexer.Point{Line: 2, Column: 13}, fault.Position.Start)
	})

	t.Run("call depth", func(t *testing.T) {
		_, _, err := run(t, "function r(n) { return r(n + 1); } r(0)", evaluate.WithMaxCallDepth(50))
		requireFault(t, err, runtime.FaultRangeError, "maximum call depth exceeded")
	})

	t.Run("frozen globals", func(t *testing.T) {
		globals, err := runtime.BuildGlobals([]runtime.NativeDescriptor{
			{Namespace: "Math", Name: "PI", Value: runtime.Number(3.14)},
		})
		require.NoError(t, err)

		program, err := parser.NewParser(lexer.NewLexer("Math.PI = 3")).Parse()
		require.NoError(t, err)

		_, err = evaluate.New().Run(context.Background(), program, globals.Extend())
		requireFault(t, err, runtime.FaultTypeError, "cannot assign to property 'PI' of a frozen object")
	})
}

func TestEvaluatorThrow(t *testing.T) {
	t.Run("uncaught throw runs finally", func(t *testing.T) {
		_, env, err := run(t, `
			let log = [];
			try {
				throw "boom";
			} finally {
				log[log.length] = "finally";
			}
		`)

		var uncaught *evaluate.UncaughtError
		require.ErrorAs(t, err, &uncaught)
		assert.Equal(t, runtime.String("boom"), uncaught.Value)
		assert.Equal(t, 4, uncaught.Position.Start.Line)

		log, err := env.Get("log")
		require.NoError(t, err)
		assert.Equal(t, `["finally"]`, runtime.Inspect(log))
	})

	t.Run("uncaught error object message", func(t *testing.T) {
		_, _, err := run(t, `throw {name: "Oops", message: "it broke"}`)
		require.Error(t, err)
		assert.Equal(t, `1:1: uncaught Oops: it broke`, err.Error())
	})

	t.Run("runtime faults are not caught by default", func(t *testing.T) {
		_, env, err := run(t, `
			let cleaned = false;
			try { null.x; } catch (e) { cleaned = "caught"; } finally { cleaned = true; }
		`)
		requireFault(t, err, runtime.FaultTypeError, "cannot read property 'x' of null")

		cleaned, err := env.Get("cleaned")
		require.NoError(t, err)
		assert.Equal(t, runtime.Boolean(true), cleaned)
	})

	t.Run("runtime faults caught when enabled", func(t *testing.T) {
		value, _, err := run(t, `
			let r;
			try { null.x; } catch (e) { r = e.name + ": " + e.message; }
			r
		`, evaluate.WithCatchRuntimeFaults(true))
		require.NoError(t, err)
		assert.Equal(t, runtime.String("TypeError: cannot read property 'x' of null"), value)
	})
}

func TestEvaluatorNatives(t *testing.T) {
	var printed []string

	globals, err := runtime.BuildGlobals([]runtime.NativeDescriptor{
		{
			Name: "print",
			Fn: func(ctx runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
				printed = append(printed, runtime.ToString(runtime.Arg(args, 0)))
				return runtime.Undefined(), nil
			},
		},
		{
			Name: "apply",
			Fn: func(ctx runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
				return ctx.Call(runtime.Arg(args, 0), args[1:])
			},
		},
	})
	require.NoError(t, err)

	program, err := parser.NewParser(lexer.NewLexer(`
		print("hi " + apply((a, b) => a * b, 6, 7));
		let r;
		try { apply(() => { throw "inner"; }); } catch (e) { r = e; }
		r
	`)).Parse()
	require.NoError(t, err)

	value, err := evaluate.New().Run(context.Background(), program, globals.Extend())
	require.NoError(t, err)
	assert.Equal(t, runtime.String("inner"), value)
	assert.Equal(t, []string{"hi 42"}, printed)
}

func TestEvaluatorCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	program, err := parser.NewParser(lexer.NewLexer("while (true) {}")).Parse()
	require.NoError(t, err)

	_, err = evaluate.New().Run(ctx, program, runtime.NewEnvironment(nil))
	assert.True(t, errors.Is(err, context.Canceled))
}
