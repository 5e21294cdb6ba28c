package commandinit_test

import (
	"context"
	"testing"
	"time"

	"github.com/artuross/funscript/internal/commandinit"
	"github.com/artuross/funscript/internal/defaults"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewTracerProvider(t *testing.T) {
	t.Run("disabled drops spans", func(t *testing.T) {
		provider, shutdown, err := commandinit.NewTracerProvider(context.Background(), false)
		require.NoError(t, err)

		assert.Equal(t, defaults.TracerProvider, provider)
		assert.NoError(t, shutdown(context.Background()))

		_, span := provider.Tracer("test").Start(context.Background(), "Run")
		assert.False(t, span.IsRecording())
	})

	t.Run("enabled records spans", func(t *testing.T) {
		t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://127.0.0.1:4317")

		provider, shutdown, err := commandinit.NewTracerProvider(context.Background(), true)
		require.NoError(t, err)

		assert.IsType(t, &sdktrace.TracerProvider{}, provider)

		_, span := provider.Tracer("test").Start(context.Background(), "Run")
		assert.True(t, span.IsRecording())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		// nothing listens on the endpoint; only the provider lifecycle matters
		_ = shutdown(ctx)
	})
}
