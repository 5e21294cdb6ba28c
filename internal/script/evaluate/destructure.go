package evaluate

import (
	"context"
	"fmt"
	"slices"

	"github.com/artuross/funscript/internal/script/ast"
	"github.com/artuross/funscript/internal/script/runtime"
)

type bindMode int

const (
	bindLet bindMode = iota
	bindConst
	bindAssign
)

// bindPattern destructures value into pattern. Declarations define names in
// env; bindAssign updates existing bindings instead.
func (e *Evaluator) bindPattern(ctx context.Context, pattern ast.Pattern, value runtime.Value, env *runtime.Environment, mode bindMode) error {
	switch p := pattern.(type) {
	case *ast.Identifier:
		return bindName(p, value, env, mode)

	case *ast.ArrayPattern:
		if value.Kind() != runtime.KindArray {
			return runtime.TypeErrorf("cannot destructure %s as an array", value.Kind()).At(p.Range())
		}

		// snapshot, so assigning into the source array cannot shift elements
		elements := slices.Clone(value.AsArray().Elements)

		for i, element := range p.Elements {
			if element == nil {
				continue
			}

			item := runtime.Undefined()
			if i < len(elements) {
				item = elements[i]
			}

			if err := e.bindPattern(ctx, element, item, env, mode); err != nil {
				return err
			}
		}

		if p.Rest == nil {
			return nil
		}

		rest := make([]runtime.Value, 0)
		if len(elements) > len(p.Elements) {
			rest = elements[len(p.Elements):]
		}

		return bindName(p.Rest, runtime.NewArray(rest), env, mode)

	case *ast.ObjectPattern:
		if value.Kind() != runtime.KindObject {
			return runtime.TypeErrorf("cannot destructure %s as an object", value.Kind()).At(p.Range())
		}

		source := value.AsObject()
		keys := source.Keys()
		consumed := make(map[string]bool, len(p.Properties))

		for _, property := range p.Properties {
			consumed[property.Key] = true

			item, ok := source.Get(property.Key)
			if !ok {
				item = runtime.Undefined()
			}

			if err := e.bindPattern(ctx, property.Value, item, env, mode); err != nil {
				return err
			}
		}

		if p.Rest == nil {
			return nil
		}

		rest := runtime.NewObject()
		for _, key := range keys {
			if consumed[key] {
				continue
			}

			item, ok := source.Get(key)
			if !ok {
				continue
			}

			if err := rest.Set(key, item); err != nil {
				return err
			}
		}

		return bindName(p.Rest, runtime.ObjectValue(rest), env, mode)
	}

	return fmt.Errorf("unsupported pattern %T", pattern)
}

func bindName(identifier *ast.Identifier, value runtime.Value, env *runtime.Environment, mode bindMode) error {
	switch mode {
	case bindConst:
		env.DefineConst(identifier.Name, value)
	case bindAssign:
		return withPosition(env.Assign(identifier.Name, value), identifier.Range())
	default:
		env.Define(identifier.Name, value)
	}

	return nil
}
