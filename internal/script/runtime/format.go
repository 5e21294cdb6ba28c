package runtime

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ToString converts a value to the string used by +, templates and print.
// Strings are returned as is; containers use the display form.
func ToString(v Value) string {
	if v.kind == KindString {
		return v.AsString()
	}

	return Inspect(v)
}

// Inspect renders the display form of a value; strings are quoted.
func Inspect(v Value) string {
	var sb strings.Builder
	inspect(&sb, v, make(map[any]bool))

	return sb.String()
}

func inspect(sb *strings.Builder, v Value, active map[any]bool) {
	switch v.kind {
	case KindUndefined:
		sb.WriteString("undefined")

	case KindNull:
		sb.WriteString("null")

	case KindBoolean:
		sb.WriteString(strconv.FormatBool(v.AsBoolean()))

	case KindNumber:
		sb.WriteString(FormatNumber(v.AsNumber()))

	case KindString:
		sb.WriteString(strconv.Quote(v.AsString()))

	case KindArray:
		array := v.AsArray()
		if active[array] {
			sb.WriteString("[Circular]")
			return
		}

		active[array] = true
		defer delete(active, array)

		sb.WriteByte('[')
		for i, element := range array.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}

			inspect(sb, element, active)
		}
		sb.WriteByte(']')

	case KindObject:
		object := v.AsObject()
		if active[object] {
			sb.WriteString("{Circular}")
			return
		}

		active[object] = true
		defer delete(active, object)

		sb.WriteByte('{')
		for i, key := range object.keys {
			if i > 0 {
				sb.WriteString(", ")
			}

			if isIdentifier(key) {
				sb.WriteString(key)
			} else {
				sb.WriteString(strconv.Quote(key))
			}

			sb.WriteString(": ")
			inspect(sb, object.values[key], active)
		}
		sb.WriteByte('}')

	case KindFunction:
		if name := v.AsFunction().Name; name != "" {
			sb.WriteString("<function " + name + ">")
			return
		}

		sb.WriteString("<function>")

	case KindNative:
		sb.WriteString("<native " + v.AsNative().Name + ">")
	}
}

// FormatNumber prints a float the way JavaScript does: integers without a
// fraction and exponent notation outside [1e-6, 1e21).
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		mantissa, exponent, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")

		sign, digits := exponent[:1], strings.TrimLeft(exponent[1:], "0")

		return mantissa + "e" + sign + digits
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}

		if i > 0 && unicode.IsDigit(r) {
			continue
		}

		return false
	}

	return true
}
