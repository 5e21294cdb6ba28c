package runtime

type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
	KindFunction
	KindNative
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindFunction, KindNative:
		return "function"
	}

	return "unknown"
}

// Value is a tagged union over the language's value kinds. The zero Value
// is undefined.
type Value struct {
	kind Kind
	data any
}

func Undefined() Value {
	return Value{kind: KindUndefined}
}

func Null() Value {
	return Value{kind: KindNull}
}

func Boolean(b bool) Value {
	return Value{kind: KindBoolean, data: b}
}

func Number(f float64) Value {
	return Value{kind: KindNumber, data: f}
}

func String(s string) Value {
	return Value{kind: KindString, data: s}
}

// NewArray wraps elements in a new array; the slice is not copied.
func NewArray(elements []Value) Value {
	if elements == nil {
		elements = make([]Value, 0)
	}

	return ArrayValue(&Array{Elements: elements})
}

func ArrayValue(array *Array) Value {
	return Value{kind: KindArray, data: array}
}

func ObjectValue(object *Object) Value {
	return Value{kind: KindObject, data: object}
}

func FunctionValue(fn *Function) Value {
	return Value{kind: KindFunction, data: fn}
}

func NativeValue(native *Native) Value {
	return Value{kind: KindNative, data: native}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) AsBoolean() bool {
	b, _ := v.data.(bool)
	return b
}

func (v Value) AsNumber() float64 {
	f, _ := v.data.(float64)
	return f
}

func (v Value) AsString() string {
	s, _ := v.data.(string)
	return s
}

func (v Value) AsArray() *Array {
	a, _ := v.data.(*Array)
	return a
}

func (v Value) AsObject() *Object {
	o, _ := v.data.(*Object)
	return o
}

func (v Value) AsFunction() *Function {
	fn, _ := v.data.(*Function)
	return fn
}

func (v Value) AsNative() *Native {
	n, _ := v.data.(*Native)
	return n
}

func (v Value) IsNullish() bool {
	return v.kind == KindUndefined || v.kind == KindNull
}

func (v Value) IsCallable() bool {
	return v.kind == KindFunction || v.kind == KindNative
}

// TypeOf returns the result of the typeof operator.
func (v Value) TypeOf() string {
	switch v.kind {
	case KindNull, KindArray, KindObject:
		return "object"
	}

	return v.kind.String()
}

// String implements fmt.Stringer with the display form.
func (v Value) String() string {
	return Inspect(v)
}

type Array struct {
	Elements []Value
}

func (a *Array) Len() int {
	return len(a.Elements)
}

// Get returns the element at index, or undefined when out of range.
func (a *Array) Get(index int) Value {
	if index < 0 || index >= len(a.Elements) {
		return Undefined()
	}

	return a.Elements[index]
}

// Set stores value at index, growing the array with undefined as needed.
func (a *Array) Set(index int, value Value) {
	for len(a.Elements) <= index {
		a.Elements = append(a.Elements, Undefined())
	}

	a.Elements[index] = value
}
