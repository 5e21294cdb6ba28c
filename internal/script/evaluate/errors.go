package evaluate

import (
	"errors"
	"fmt"

	"github.com/artuross/funscript/internal/script/lexer"
	"github.com/artuross/funscript/internal/script/runtime"
)

// ThrownError carries a user-level throw out of expression evaluation,
// for example from inside a called function. Statement execution turns it
// back into a throw completion.
type ThrownError struct {
	Value    runtime.Value
	Position lexer.Position
}

func (e *ThrownError) Error() string {
	return "thrown: " + describeThrown(e.Value)
}

// UncaughtError is a throw that left the program without meeting a catch.
type UncaughtError struct {
	Value    runtime.Value
	Position lexer.Position
}

func (e *UncaughtError) Error() string {
	if e.Position.Start.Line == 0 {
		return "uncaught " + describeThrown(e.Value)
	}

	return fmt.Sprintf("%s: uncaught %s", e.Position.Start, describeThrown(e.Value))
}

// describeThrown prefers "name: message" for error-like objects.
func describeThrown(value runtime.Value) string {
	if value.Kind() != runtime.KindObject {
		return runtime.ToString(value)
	}

	object := value.AsObject()

	message, hasMessage := object.Get("message")
	if !hasMessage {
		return runtime.Inspect(value)
	}

	if name, hasName := object.Get("name"); hasName {
		return runtime.ToString(name) + ": " + runtime.ToString(message)
	}

	return runtime.ToString(message)
}

// faultValue converts a runtime fault into the object a catch clause binds
// when runtime faults are catchable.
func faultValue(fault *runtime.Fault) runtime.Value {
	object := runtime.NewObject()
	_ = object.Set("name", runtime.String(string(fault.Kind)))
	_ = object.Set("message", runtime.String(fault.Message))

	return runtime.ObjectValue(object)
}

// withPosition attaches position to a fault that does not carry one yet.
func withPosition(err error, position lexer.Position) error {
	var fault *runtime.Fault
	if errors.As(err, &fault) {
		fault.At(position)
	}

	return err
}
