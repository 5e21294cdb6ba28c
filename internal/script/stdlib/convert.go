package stdlib

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/artuross/funscript/internal/script/runtime"
)

func convertNatives() []runtime.NativeDescriptor {
	return []runtime.NativeDescriptor{
		{Name: "len", Fn: length},
		{Name: "push", Fn: push},
		{Name: "pop", Fn: pop},
		{Name: "join", Fn: join},
		{Name: "str", Fn: str},
		{Name: "num", Fn: num},
		{Name: "format", Fn: format},
	}
}

func length(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	value := runtime.Arg(args, 0)

	switch value.Kind() {
	case runtime.KindArray:
		return runtime.Number(float64(value.AsArray().Len())), nil
	case runtime.KindString:
		return runtime.Number(float64(utf8.RuneCountInString(value.AsString()))), nil
	case runtime.KindObject:
		return runtime.Number(float64(value.AsObject().Len())), nil
	}

	return runtime.Undefined(), argumentError("len", 0, "an array, string or object", value)
}

// push appends in place and returns the new length.
func push(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	array, err := arrayArg("push", args, 0)
	if err != nil {
		return runtime.Undefined(), err
	}

	array.Elements = append(array.Elements, args[1:]...)

	return runtime.Number(float64(array.Len())), nil
}

func pop(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	array, err := arrayArg("pop", args, 0)
	if err != nil {
		return runtime.Undefined(), err
	}

	if array.Len() == 0 {
		return runtime.Undefined(), nil
	}

	last := array.Elements[array.Len()-1]
	array.Elements = array.Elements[:array.Len()-1]

	return last, nil
}

func join(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	array, err := arrayArg("join", args, 0)
	if err != nil {
		return runtime.Undefined(), err
	}

	separator := ","
	if len(args) > 1 {
		separator = runtime.ToString(args[1])
	}

	parts := make([]string, array.Len())
	for i, element := range array.Elements {
		parts[i] = runtime.ToString(element)
	}

	return runtime.String(strings.Join(parts, separator)), nil
}

func str(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	return runtime.String(runtime.ToString(runtime.Arg(args, 0))), nil
}

// num converts explicitly, since operators never coerce. Unparsable
// strings and undefined become NaN.
func num(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	value := runtime.Arg(args, 0)

	switch value.Kind() {
	case runtime.KindNumber:
		return value, nil

	case runtime.KindBoolean:
		if value.AsBoolean() {
			return runtime.Number(1), nil
		}

		return runtime.Number(0), nil

	case runtime.KindNull:
		return runtime.Number(0), nil

	case runtime.KindUndefined:
		return runtime.Number(math.NaN()), nil

	case runtime.KindString:
		s := strings.TrimSpace(value.AsString())
		if s == "" {
			return runtime.Number(0), nil
		}

		switch s {
		case "Infinity", "+Infinity":
			return runtime.Number(math.Inf(1)), nil
		case "-Infinity":
			return runtime.Number(math.Inf(-1)), nil
		}

		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return runtime.Number(math.NaN()), nil
		}

		return runtime.Number(f), nil
	}

	return runtime.Undefined(), argumentError("num", 0, "a primitive", value)
}

// format renders a number with the grouping and decimal separators of a
// BCP 47 locale, "en" by default.
func format(_ runtime.CallContext, args []runtime.Value) (runtime.Value, error) {
	value, err := numberArg("format", args, 0)
	if err != nil {
		return runtime.Undefined(), err
	}

	locale := "en"
	if len(args) > 1 {
		if args[1].Kind() != runtime.KindString {
			return runtime.Undefined(), argumentError("format", 1, "a string", args[1])
		}

		locale = args[1].AsString()
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return runtime.Undefined(), runtime.RangeErrorf("format: invalid locale '%s'", locale)
	}

	p := message.NewPrinter(tag)

	return runtime.String(p.Sprintf("%v", number.Decimal(value))), nil
}
