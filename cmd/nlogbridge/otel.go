package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.40.0"
	"go.uber.org/multierr"
)

// setupOTelSDK routes OpenTelemetry's own logging through h and, when
// OTEL_EXPORTER_OTLP_ENDPOINT is set, installs an OTLP log exporter as
// the global logger provider. Call shutdown to flush.
func setupOTelSDK(ctx context.Context, h slog.Handler) (shutdown func(context.Context) error, err error) {
	otel.SetLogger(logr.FromSlogHandler(h))

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("nlogbridge"),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, err
	}

	exporter, err := otlploggrpc.New(ctx)
	if err != nil {
		return nil, err
	}

	provider := log.NewLoggerProvider(
		log.WithProcessor(log.NewBatchProcessor(exporter)),
		log.WithResource(res),
	)
	global.SetLoggerProvider(provider)

	return func(ctx context.Context) error {
		return multierr.Append(provider.ForceFlush(ctx), provider.Shutdown(ctx))
	}, nil
}
