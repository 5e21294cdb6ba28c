// Package stdlib provides the native functions every script can use.
package stdlib

import (
	"bufio"
	"io"
	"os"

	"github.com/artuross/funscript/internal/script/runtime"
)

// IO is where console natives read and write. Nil fields fall back to the
// process streams.
type IO struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// Natives returns the descriptors of the whole library, ready for
// runtime.BuildGlobals.
func Natives(streams IO) []runtime.NativeDescriptor {
	if streams.Stdout == nil {
		streams.Stdout = os.Stdout
	}

	if streams.Stderr == nil {
		streams.Stderr = os.Stderr
	}

	if streams.Stdin == nil {
		streams.Stdin = os.Stdin
	}

	descriptors := make([]runtime.NativeDescriptor, 0, 64)
	descriptors = append(descriptors, consoleNatives(streams.Stdout, streams.Stderr, bufio.NewReader(streams.Stdin))...)
	descriptors = append(descriptors, mathNatives()...)
	descriptors = append(descriptors, lambdaNatives()...)
	descriptors = append(descriptors, convertNatives()...)

	return descriptors
}

func arrayArg(name string, args []runtime.Value, index int) (*runtime.Array, error) {
	value := runtime.Arg(args, index)
	if value.Kind() != runtime.KindArray {
		return nil, argumentError(name, index, "an array", value)
	}

	return value.AsArray(), nil
}

func objectArg(name string, args []runtime.Value, index int) (*runtime.Object, error) {
	value := runtime.Arg(args, index)
	if value.Kind() != runtime.KindObject {
		return nil, argumentError(name, index, "an object", value)
	}

	return value.AsObject(), nil
}

func numberArg(name string, args []runtime.Value, index int) (float64, error) {
	value := runtime.Arg(args, index)
	if value.Kind() != runtime.KindNumber {
		return 0, argumentError(name, index, "a number", value)
	}

	return value.AsNumber(), nil
}

func functionArg(name string, args []runtime.Value, index int) (runtime.Value, error) {
	value := runtime.Arg(args, index)
	if !value.IsCallable() {
		return runtime.Undefined(), argumentError(name, index, "a function", value)
	}

	return value, nil
}

func argumentError(name string, index int, expected string, got runtime.Value) error {
	return runtime.TypeErrorf("%s expects %s as argument %d, got %s", name, expected, index+1, got.Kind())
}
