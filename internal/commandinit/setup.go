package commandinit

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/artuross/funscript/internal/config"
	"github.com/artuross/funscript/internal/engine"
	"github.com/artuross/funscript/internal/script/stdlib"
	"github.com/rs/zerolog"
	cli "github.com/urfave/cli/v2"
)

// Setup is what every command needs before it can touch a script.
type Setup struct {
	Context  context.Context
	Config   *config.Config
	Logger   zerolog.Logger
	Engine   *engine.Engine
	Shutdown ShutdownFunc
}

// New reads the config and builds the logger, the tracer provider and the
// engine for command. Callers must call Shutdown when done.
func New(cliCtx *cli.Context, command string) (*Setup, error) {
	cfg, err := config.Read(cliCtx, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	stdout, stderr, stdin := streams(cliCtx.App)

	if cliCtx.Bool("verbose") {
		config.Print(stderr, cfg)
	}

	logger := NewLogger(stderr, cfg.Level()).With().Str("command", command).Logger()
	ctx := logger.WithContext(cliCtx.Context)

	tracerProvider, shutdown, err := NewTracerProvider(ctx, cfg.Trace)
	if err != nil {
		return nil, fmt.Errorf("init OTEL provider: %w", err)
	}

	eng, err := engine.New(
		engine.WithTracerProvider(tracerProvider),
		engine.WithLogger(logger),
		engine.WithMaxCallDepth(cfg.MaxCallDepth),
		engine.WithCatchRuntimeFaults(cfg.CatchRuntimeFaults),
		engine.WithIO(stdlib.IO{Stdout: stdout, Stderr: stderr, Stdin: stdin}),
	)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("create engine: %w", err)
	}

	setup := Setup{
		Context:  ctx,
		Config:   cfg,
		Logger:   logger,
		Engine:   eng,
		Shutdown: shutdown,
	}

	return &setup, nil
}

func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
		cw.Out = w
	})

	return zerolog.New(output).With().Timestamp().Logger().Level(level)
}

func streams(app *cli.App) (io.Writer, io.Writer, io.Reader) {
	var (
		stdout io.Writer = os.Stdout
		stderr io.Writer = os.Stderr
		stdin  io.Reader = os.Stdin
	)

	if app.Writer != nil {
		stdout = app.Writer
	}

	if app.ErrWriter != nil {
		stderr = app.ErrWriter
	}

	if app.Reader != nil {
		stdin = app.Reader
	}

	return stdout, stderr, stdin
}
