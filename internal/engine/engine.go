// Package engine runs scripts end to end: it lexes, parses and evaluates
// source text against the standard library, with logging and tracing.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/artuross/funscript/internal/defaults"
	"github.com/artuross/funscript/internal/log/semconv"
	"github.com/artuross/funscript/internal/script/ast"
	"github.com/artuross/funscript/internal/script/evaluate"
	"github.com/artuross/funscript/internal/script/lexer"
	"github.com/artuross/funscript/internal/script/parser"
	"github.com/artuross/funscript/internal/script/runtime"
	"github.com/artuross/funscript/internal/script/stdlib"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/artuross/funscript/internal/engine"
)

type Engine struct {
	tracer             trace.Tracer
	logger             zerolog.Logger
	streams            stdlib.IO
	maxCallDepth       int
	catchRuntimeFaults bool
	globals            *runtime.Environment
}

func New(options ...func(*Engine)) (*Engine, error) {
	engine := Engine{
		tracer:       defaults.TracerProvider.Tracer(tracerName),
		logger:       defaults.Logger,
		maxCallDepth: evaluate.DefaultMaxCallDepth,
	}

	for _, apply := range options {
		apply(&engine)
	}

	globals, err := runtime.BuildGlobals(stdlib.Natives(engine.streams))
	if err != nil {
		return nil, fmt.Errorf("build globals: %w", err)
	}

	engine.globals = globals

	return &engine, nil
}

func WithTracerProvider(tp trace.TracerProvider) func(*Engine) {
	return func(e *Engine) {
		e.tracer = tp.Tracer(tracerName)
	}
}

// WithLogger sets the logger used when the context does not carry one.
func WithLogger(logger zerolog.Logger) func(*Engine) {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMaxCallDepth(depth int) func(*Engine) {
	return func(e *Engine) {
		if depth > 0 {
			e.maxCallDepth = depth
		}
	}
}

func WithCatchRuntimeFaults(enabled bool) func(*Engine) {
	return func(e *Engine) {
		e.catchRuntimeFaults = enabled
	}
}

func WithIO(streams stdlib.IO) func(*Engine) {
	return func(e *Engine) {
		e.streams = streams
	}
}

// Parse returns the program even when it has syntax faults, so callers can
// inspect what was recovered.
func (e *Engine) Parse(ctx context.Context, name, source string) (*ast.Program, error) {
	ctx, span := e.tracer.Start(ctx, "Parse", trace.WithAttributes(attribute.String(semconv.ScriptName, name)))
	defer span.End()

	logger := e.loggerFrom(ctx)

	program, err := parser.NewParser(lexer.NewLexer(source)).Parse()
	if err != nil {
		faults := faultCount(err)

		span.SetAttributes(attribute.Int(semconv.FaultCount, faults))
		span.SetStatus(codes.Error, "syntax error")

		logger.Debug().Str(semconv.ScriptName, name).Int(semconv.FaultCount, faults).Msg("parse failed")

		return program, err
	}

	span.SetAttributes(attribute.Int(semconv.StatementCount, len(program.Body)))
	logger.Debug().Str(semconv.ScriptName, name).Int(semconv.StatementCount, len(program.Body)).Msg("parsed")

	return program, nil
}

// Run parses and evaluates source in a fresh top-level frame and returns the
// value of the last statement executed.
func (e *Engine) Run(ctx context.Context, name, source string) (runtime.Value, error) {
	runID, err := uuid.NewV7()
	if err != nil {
		return runtime.Undefined(), fmt.Errorf("generate run ID: %w", err)
	}

	logger := e.loggerFrom(ctx).With().Str(semconv.RunID, runID.String()).Str(semconv.ScriptName, name).Logger()
	ctx = logger.WithContext(ctx)

	ctx, span := e.tracer.Start(ctx, "Run", trace.WithAttributes(
		attribute.String(semconv.RunID, runID.String()),
		attribute.String(semconv.ScriptName, name),
	))
	defer span.End()

	program, err := e.Parse(ctx, name, source)
	if err != nil {
		span.SetStatus(codes.Error, "parse failed")
		return runtime.Undefined(), err
	}

	return e.evaluate(ctx, program, e.globals.Extend())
}

func (e *Engine) evaluate(ctx context.Context, program *ast.Program, env *runtime.Environment) (runtime.Value, error) {
	ctx, span := e.tracer.Start(ctx, "Evaluate")
	defer span.End()

	logger := zerolog.Ctx(ctx)
	started := time.Now()

	evaluator := evaluate.New(
		evaluate.WithMaxCallDepth(e.maxCallDepth),
		evaluate.WithCatchRuntimeFaults(e.catchRuntimeFaults),
	)

	value, err := evaluator.Run(ctx, program, env)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")

		logger.Debug().Err(err).Dur("elapsed", time.Since(started)).Msg("evaluation failed")

		return runtime.Undefined(), err
	}

	logger.Debug().Dur("elapsed", time.Since(started)).Msg("evaluated")

	return value, nil
}

// Globals returns the frame holding the standard library.
func (e *Engine) Globals() *runtime.Environment {
	return e.globals
}

func (e *Engine) loggerFrom(ctx context.Context) zerolog.Logger {
	if logger := zerolog.Ctx(ctx); logger.GetLevel() != zerolog.Disabled {
		return *logger
	}

	return e.logger
}

func faultCount(err error) int {
	if list, ok := err.(parser.ErrorList); ok {
		return len(list)
	}

	return 1
}
