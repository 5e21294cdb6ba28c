package runtime

import (
	"math"
	"strings"
)

func Truthy(v Value) bool {
	switch v.kind {
	case KindUndefined, KindNull:
		return false
	case KindBoolean:
		return v.AsBoolean()
	case KindNumber:
		n := v.AsNumber()
		return n != 0 && !math.IsNaN(n)
	case KindString:
		return v.AsString() != ""
	}

	return true
}

// Equal implements ==. Values of different kinds are never equal; arrays and
// objects compare structurally, functions by identity.
func Equal(a, b Value) bool {
	return equal(a, b, make(map[[2]any]bool))
}

func equal(a, b Value, seen map[[2]any]bool) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindUndefined, KindNull:
		return true

	case KindBoolean:
		return a.AsBoolean() == b.AsBoolean()

	case KindNumber:
		return a.AsNumber() == b.AsNumber()

	case KindString:
		return a.AsString() == b.AsString()

	case KindArray:
		left, right := a.AsArray(), b.AsArray()
		if left == right {
			return true
		}

		// a pair already under comparison is assumed equal
		pair := [2]any{left, right}
		if seen[pair] {
			return true
		}
		seen[pair] = true

		if left.Len() != right.Len() {
			return false
		}

		for i := range left.Elements {
			if !equal(left.Elements[i], right.Elements[i], seen) {
				return false
			}
		}

		return true

	case KindObject:
		left, right := a.AsObject(), b.AsObject()
		if left == right {
			return true
		}

		pair := [2]any{left, right}
		if seen[pair] {
			return true
		}
		seen[pair] = true

		if left.Len() != right.Len() {
			return false
		}

		for _, key := range left.keys {
			other, ok := right.values[key]
			if !ok || !equal(left.values[key], other, seen) {
				return false
			}
		}

		return true

	case KindFunction:
		return a.AsFunction() == b.AsFunction()

	case KindNative:
		return a.AsNative() == b.AsNative()
	}

	return false
}

// Compare orders two numbers or two strings. ordered is false when a NaN is
// involved, in which case every relational operator yields false.
func Compare(a, b Value) (result int, ordered bool, err error) {
	switch {
	case a.kind == KindNumber && b.kind == KindNumber:
		x, y := a.AsNumber(), b.AsNumber()
		switch {
		case math.IsNaN(x) || math.IsNaN(y):
			return 0, false, nil
		case x < y:
			return -1, true, nil
		case x > y:
			return 1, true, nil
		}

		return 0, true, nil

	case a.kind == KindString && b.kind == KindString:
		return strings.Compare(a.AsString(), b.AsString()), true, nil
	}

	return 0, false, TypeErrorf("cannot compare %s with %s", a.kind, b.kind)
}
