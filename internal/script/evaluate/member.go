package evaluate

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/artuross/funscript/internal/script/runtime"
)

// maxArrayLength bounds how far an index assignment may grow an array.
const maxArrayLength = 1 << 24

// getProperty reads base[property]. Missing properties are undefined; only
// null and undefined bases are an error.
func getProperty(base, property runtime.Value) (runtime.Value, error) {
	switch base.Kind() {
	case runtime.KindUndefined, runtime.KindNull:
		return runtime.Undefined(), runtime.TypeErrorf("cannot read property '%s' of %s", runtime.ToString(property), base.Kind())

	case runtime.KindArray:
		array := base.AsArray()

		if index, ok := arrayIndex(property); ok {
			return array.Get(index), nil
		}

		if property.Kind() == runtime.KindString && property.AsString() == "length" {
			return runtime.Number(float64(array.Len())), nil
		}

		return runtime.Undefined(), nil

	case runtime.KindString:
		s := base.AsString()

		if index, ok := arrayIndex(property); ok {
			runes := []rune(s)
			if index >= len(runes) {
				return runtime.Undefined(), nil
			}

			return runtime.String(string(runes[index])), nil
		}

		if property.Kind() == runtime.KindString && property.AsString() == "length" {
			return runtime.Number(float64(utf8.RuneCountInString(s))), nil
		}

		return runtime.Undefined(), nil

	case runtime.KindObject:
		key, err := propertyKey(property)
		if err != nil {
			return runtime.Undefined(), err
		}

		value, _ := base.AsObject().Get(key)

		return value, nil
	}

	return runtime.Undefined(), nil
}

func setProperty(base, property, value runtime.Value) error {
	switch base.Kind() {
	case runtime.KindUndefined, runtime.KindNull:
		return runtime.TypeErrorf("cannot set property '%s' of %s", runtime.ToString(property), base.Kind())

	case runtime.KindArray:
		index, ok := arrayIndex(property)
		if !ok {
			return runtime.TypeErrorf("invalid array index %s", runtime.Inspect(property))
		}

		if index >= maxArrayLength {
			return runtime.RangeErrorf("array index %d out of range", index)
		}

		base.AsArray().Set(index, value)

		return nil

	case runtime.KindObject:
		key, err := propertyKey(property)
		if err != nil {
			return err
		}

		return base.AsObject().Set(key, value)
	}

	return runtime.TypeErrorf("cannot set property '%s' on %s", runtime.ToString(property), base.Kind())
}

// arrayIndex accepts non-negative integral numbers and their canonical
// string form.
func arrayIndex(property runtime.Value) (int, bool) {
	switch property.Kind() {
	case runtime.KindNumber:
		n := property.AsNumber()
		if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
			return 0, false
		}

		return int(n), true

	case runtime.KindString:
		s := property.AsString()

		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || strconv.Itoa(n) != s {
			return 0, false
		}

		return n, true
	}

	return 0, false
}

func propertyKey(property runtime.Value) (string, error) {
	switch property.Kind() {
	case runtime.KindString:
		return property.AsString(), nil
	case runtime.KindNumber, runtime.KindBoolean, runtime.KindNull, runtime.KindUndefined:
		return runtime.ToString(property), nil
	}

	return "", runtime.TypeErrorf("%s cannot be used as a property key", property.Kind())
}
