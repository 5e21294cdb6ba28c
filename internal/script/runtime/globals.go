package runtime

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateGlobal   = errors.New("duplicate global")
	ErrInvalidDescriptor = errors.New("invalid native descriptor")
)

// NativeDescriptor declares one global binding. With a Namespace the binding
// becomes a property of the namespace object instead of a top-level name.
// Exactly one of Fn and Value is used: Fn when set, Value otherwise.
type NativeDescriptor struct {
	Namespace string
	Name      string
	Fn        NativeFunc
	Value     Value
}

func (d NativeDescriptor) qualifiedName() string {
	if d.Namespace == "" {
		return d.Name
	}

	return d.Namespace + "." + d.Name
}

// BuildGlobals returns a fully populated global frame. Every binding is
// constant and every namespace object is frozen, so scripts cannot change
// the globals; they can only shadow them.
func BuildGlobals(descriptors []NativeDescriptor) (*Environment, error) {
	env := NewEnvironment(nil)

	namespaces := make(map[string]*Object)
	namespaceOrder := make([]string, 0)

	for _, d := range descriptors {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: missing name in namespace '%s'", ErrInvalidDescriptor, d.Namespace)
		}

		value := d.Value
		if d.Fn != nil {
			value = NativeValue(&Native{Name: d.qualifiedName(), Fn: d.Fn})
		}

		if d.Namespace == "" {
			if env.HasOwn(d.Name) {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateGlobal, d.Name)
			}

			env.DefineConst(d.Name, value)

			continue
		}

		namespace, ok := namespaces[d.Namespace]
		if !ok {
			namespace = NewObject()
			namespaces[d.Namespace] = namespace
			namespaceOrder = append(namespaceOrder, d.Namespace)
		}

		if namespace.Has(d.Name) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateGlobal, d.qualifiedName())
		}

		if err := namespace.Set(d.Name, value); err != nil {
			return nil, fmt.Errorf("set %s: %w", d.qualifiedName(), err)
		}
	}

	for _, name := range namespaceOrder {
		if env.HasOwn(name) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateGlobal, name)
		}

		namespace := namespaces[name]
		namespace.Freeze()

		env.DefineConst(name, ObjectValue(namespace))
	}

	return env, nil
}
