package defaults

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	Logger         = zerolog.Nop()
	TracerProvider = noop.NewTracerProvider()
)
