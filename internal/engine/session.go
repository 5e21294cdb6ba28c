package engine

import (
	"context"
	"fmt"

	"github.com/artuross/funscript/internal/log/semconv"
	"github.com/artuross/funscript/internal/script/runtime"
	"github.com/google/uuid"
)

const sessionScriptName = "<repl>"

// Session evaluates inputs one after another in a single top-level frame,
// so bindings made by one input are visible to the next.
type Session struct {
	engine *Engine
	id     uuid.UUID
	env    *runtime.Environment
	inputs int
}

func (e *Engine) NewSession() (*Session, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	return &Session{
		engine: e,
		id:     id,
		env:    e.globals.Extend(),
	}, nil
}

// Eval runs one input. A syntax fault discards the whole input; bindings
// made before a runtime fault are kept.
func (s *Session) Eval(ctx context.Context, source string) (runtime.Value, error) {
	s.inputs++

	logger := s.engine.loggerFrom(ctx).With().
		Str(semconv.RunID, s.id.String()).
		Int(semconv.InputNumber, s.inputs).
		Logger()
	ctx = logger.WithContext(ctx)

	program, err := s.engine.Parse(ctx, sessionScriptName, source)
	if err != nil {
		return runtime.Undefined(), err
	}

	return s.engine.evaluate(ctx, program, s.env)
}

// Names lists every name visible to the next input, globals included.
func (s *Session) Names() []string {
	return s.env.Names()
}
