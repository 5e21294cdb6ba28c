package runtime

// Object is a string-keyed record that keeps insertion order.
type Object struct {
	keys   []string
	values map[string]Value
	frozen bool
}

func NewObject() *Object {
	return &Object{
		keys:   make([]string, 0),
		values: make(map[string]Value),
	}
}

func (o *Object) Len() int {
	return len(o.keys)
}

func (o *Object) Get(key string) (Value, bool) {
	value, ok := o.values[key]
	return value, ok
}

func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Set adds or replaces a property. Replacing keeps the original position.
func (o *Object) Set(key string, value Value) error {
	if o.frozen {
		return TypeErrorf("cannot assign to property '%s' of a frozen object", key)
	}

	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}

	o.values[key] = value

	return nil
}

// Keys returns the property names in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)

	return keys
}

func (o *Object) Freeze() {
	o.frozen = true
}

func (o *Object) Frozen() bool {
	return o.frozen
}
