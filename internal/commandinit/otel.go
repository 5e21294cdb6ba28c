package commandinit

import (
	"context"
	"fmt"

	"github.com/artuross/funscript/internal/defaults"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "funscript"

// scripts are short lived, so spans are flushed in small batches
const exportBatchSize = 256

type ShutdownFunc func(ctx context.Context) error

func noopShutdown(_ context.Context) error {
	return nil
}

// NewTracerProvider exports spans over OTLP/gRPC when enabled; otherwise
// spans are dropped. The exporter reads its endpoint from the standard
// OTEL_EXPORTER_OTLP_* variables.
func NewTracerProvider(ctx context.Context, enabled bool) (trace.TracerProvider, ShutdownFunc, error) {
	if !enabled {
		return defaults.TracerProvider, noopShutdown, nil
	}

	resource, err := scriptResource(ctx)
	if err != nil {
		return nil, noopShutdown, err
	}

	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithCompressor("gzip"))
	if err != nil {
		return nil, noopShutdown, fmt.Errorf("create trace exporter: %w", err)
	}

	batcher := sdktrace.NewBatchSpanProcessor(
		exporter,
		sdktrace.WithBlocking(),
		sdktrace.WithMaxExportBatchSize(exportBatchSize),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(batcher),
		sdktrace.WithResource(resource),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	return provider, provider.Shutdown, nil
}

// scriptResource describes the interpreter process spans come from.
func scriptResource(ctx context.Context) (*sdkresource.Resource, error) {
	resource, err := sdkresource.New(
		ctx,
		sdkresource.WithTelemetrySDK(),
		sdkresource.WithProcessRuntimeName(),
		sdkresource.WithProcessRuntimeVersion(),
		sdkresource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("describe trace resource: %w", err)
	}

	return resource, nil
}
