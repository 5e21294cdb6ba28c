package runtime

import (
	"slices"
)

type binding struct {
	value    Value
	constant bool
}

// Environment is one frame of the lexical scope chain. Frames only point to
// their parent, so a closure keeps exactly the frames it was defined in.
type Environment struct {
	bindings map[string]*binding
	parent   *Environment
}

func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		bindings: make(map[string]*binding),
		parent:   parent,
	}
}

func (e *Environment) Parent() *Environment {
	return e.parent
}

// Extend returns a new child frame.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}

// Define creates or overwrites a mutable binding in this frame.
func (e *Environment) Define(name string, value Value) {
	e.bindings[name] = &binding{value: value}
}

// DefineConst creates or overwrites a binding in this frame that Assign refuses to change.
func (e *Environment) DefineConst(name string, value Value) {
	e.bindings[name] = &binding{value: value, constant: true}
}

// Assign updates the nearest frame that defines name.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		b, ok := env.bindings[name]
		if !ok {
			continue
		}

		if b.constant {
			return TypeErrorf("assignment to constant variable '%s'", name)
		}

		b.value = value

		return nil
	}

	return ReferenceErrorf("%s is not defined", name)
}

func (e *Environment) Get(name string) (Value, error) {
	value, ok := e.Lookup(name)
	if !ok {
		return Undefined(), ReferenceErrorf("%s is not defined", name)
	}

	return value, nil
}

func (e *Environment) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.bindings[name]; ok {
			return b.value, true
		}
	}

	return Undefined(), false
}

// HasOwn reports whether this frame itself binds name.
func (e *Environment) HasOwn(name string) bool {
	_, ok := e.bindings[name]
	return ok
}

// Names returns every name visible from this frame, sorted.
func (e *Environment) Names() []string {
	seen := make(map[string]bool)
	names := make([]string, 0)

	for env := e; env != nil; env = env.parent {
		for name := range env.bindings {
			if seen[name] {
				continue
			}

			seen[name] = true
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names
}
