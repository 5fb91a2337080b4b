// Package otel installs the process-wide OpenTelemetry tracer provider.
package otel

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/louisbranch/invoicing/internal/platform/config"
)

// ServiceNamePrefix is prepended to every reported service name.
const ServiceNamePrefix = "invoicing-"

// Settings controls trace export. Fields are read from INVOICING_OTEL_*.
type Settings struct {
	Endpoint string  `env:"OTEL_ENDPOINT"`
	Enabled  bool    `env:"OTEL_ENABLED" envDefault:"true"`
	Ratio    float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Active reports whether spans should be exported.
func (s Settings) Active() bool {
	return s.Enabled && strings.TrimSpace(s.Endpoint) != ""
}

// Setup reads Settings from the environment and installs a batching OTLP/HTTP
// tracer provider for serviceName. Without an endpoint, or with
// INVOICING_OTEL_ENABLED=false, it installs nothing and returns a shutdown
// that does nothing.
func Setup(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	var settings Settings
	if err := config.ParseEnvPrefixed(&settings); err != nil {
		return noopShutdown, fmt.Errorf("otel settings: %w", err)
	}
	return SetupWith(ctx, serviceName, settings)
}

// SetupWith is Setup with explicit settings.
func SetupWith(ctx context.Context, serviceName string, settings Settings) (func(context.Context) error, error) {
	if !settings.Active() {
		return noopShutdown, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(strings.TrimSpace(settings.Endpoint)))
	if err != nil {
		return noopShutdown, fmt.Errorf("otlp exporter: %w", err)
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(ServiceNamePrefix+serviceName),
	))
	if err != nil {
		return noopShutdown, fmt.Errorf("otel resource: %w", err)
	}

	sampler := sdktrace.AlwaysSample()
	if settings.Ratio < 1 {
		sampler = sdktrace.TraceIDRatioBased(settings.Ratio)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Shutdown, nil
}

func noopShutdown(context.Context) error { return nil }
