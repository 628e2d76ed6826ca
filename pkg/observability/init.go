// Package observability wires structured logging, run tracing and scan
// metrics for depotstat commands.
package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/Sumatoshi-tech/depotstat"

// Providers holds the initialized observability providers for one run.
type Providers struct {
	// Tracer starts the run span whose IDs are stamped on every log line.
	Tracer trace.Tracer

	// Meter is the named meter for creating instruments.
	Meter metric.Meter

	// Logger is the context-aware structured logger.
	Logger *slog.Logger

	// Registry is the private Prometheus registry the meter exports to.
	Registry *prometheus.Registry

	// Shutdown releases provider resources.
	Shutdown func(ctx context.Context) error
}

// Init builds the logger, an in-process tracer provider and a meter provider
// backed by the OTel Prometheus exporter. Logs are written to logOut.
func Init(cfg Config, logOut io.Writer) (Providers, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	res, err := buildResource(cfg)
	if err != nil {
		return Providers{}, err
	}

	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return Providers{}, fmt.Errorf("create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)

	tp := sdktrace.NewTracerProvider(sdktrace.WithResource(res))

	shutdown := func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}

	return Providers{
		Tracer:   tp.Tracer(instrumentationName),
		Meter:    mp.Meter(instrumentationName),
		Logger:   NewLogger(logOut, cfg),
		Registry: registry,
		Shutdown: shutdown,
	}, nil
}

// WriteMetrics writes the registry to path in the Prometheus text format,
// suitable for the node_exporter textfile collector.
func (p Providers) WriteMetrics(path string) error {
	if p.Registry == nil {
		return nil
	}

	err := prometheus.WriteToTextfile(path, p.Registry)
	if err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}

	return nil
}

func buildResource(cfg Config) (*resource.Resource, error) {
	attrs := []resource.Option{
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	}

	if cfg.ServiceVersion != "" {
		attrs = append(attrs, resource.WithAttributes(semconv.ServiceVersion(cfg.ServiceVersion)))
	}

	res, err := resource.New(context.Background(), attrs...)
	if err != nil {
		return nil, fmt.Errorf("build otel resource: %w", err)
	}

	return res, nil
}
