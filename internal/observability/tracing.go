package observability

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/signalsfoundry/slant-range/internal/logging"
	"github.com/signalsfoundry/slant-range/model"
)

const tracerName = "github.com/signalsfoundry/slant-range"

// Span attribute keys shared by every range span.
const (
	AttrRangeMeters        = attribute.Key("range.meters")
	AttrEllipsoidSemiMajor = attribute.Key("range.ellipsoid.semi_major_m")
	AttrEllipsoidSemiMinor = attribute.Key("range.ellipsoid.semi_minor_m")
	AttrStrictInputs       = attribute.Key("range.strict_inputs")
)

// TracingConfig governs how tracing is initialised.
type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Exporter    string // stdout | otlp
	Endpoint    string // otlp only
	SampleRatio float64

	// ResourceAttributes describe this deployment, e.g. the ellipsoid in use.
	ResourceAttributes []attribute.KeyValue
	// Writer receives stdout exporter output; defaults to os.Stdout.
	Writer             io.Writer
}

// TracingConfigFromEnv reads RANGE_TRACING_ENABLED, RANGE_TRACING_EXPORTER,
// RANGE_TRACING_SERVICE_NAME, RANGE_OTLP_ENDPOINT and
// RANGE_TRACING_SAMPLE_RATIO. A malformed flag, an unknown exporter or a ratio
// outside [0, 1] is an error.
func TracingConfigFromEnv() (TracingConfig, error) {
	cfg := TracingConfig{
		ServiceName: "slant-range",
		Exporter:    "stdout",
		Endpoint:    strings.TrimSpace(os.Getenv("RANGE_OTLP_ENDPOINT")),
		SampleRatio: 1,
	}

	if raw := strings.TrimSpace(os.Getenv("RANGE_TRACING_ENABLED")); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return TracingConfig{}, fmt.Errorf("parse RANGE_TRACING_ENABLED %q: %w", raw, err)
		}
		cfg.Enabled = enabled
	}
	if name := strings.TrimSpace(os.Getenv("RANGE_TRACING_SERVICE_NAME")); name != "" {
		cfg.ServiceName = name
	}
	if exp := strings.ToLower(strings.TrimSpace(os.Getenv("RANGE_TRACING_EXPORTER"))); exp != "" {
		switch exp {
		case "stdout", "otlp", "otlpgrpc":
			cfg.Exporter = exp
		default:
			return TracingConfig{}, fmt.Errorf("unsupported RANGE_TRACING_EXPORTER %q", exp)
		}
	}
	if raw := strings.TrimSpace(os.Getenv("RANGE_TRACING_SAMPLE_RATIO")); raw != "" {
		ratio, err := strconv.ParseFloat(raw, 64)
		if err != nil || ratio < 0 || ratio > 1 {
			return TracingConfig{}, fmt.Errorf("parse RANGE_TRACING_SAMPLE_RATIO %q: want a number in [0, 1]", raw)
		}
		cfg.SampleRatio = ratio
	}
	return cfg, nil
}

// InitTracing installs the global tracer provider and propagators described by
// cfg. The returned function flushes and stops the provider.
func InitTracing(ctx context.Context, cfg TracingConfig, log logging.Logger) (func(context.Context) error, error) {
	if log == nil {
		log = logging.Noop()
	}

	if !cfg.Enabled {
		otel.SetTracerProvider(noop.NewTracerProvider())
		otel.SetTextMapPropagator(propagation.TraceContext{})
		log.Debug(ctx, "tracing disabled")
		return func(context.Context) error { return nil }, nil
	}

	exp, err := exporterFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	attrs := append([]attribute.KeyValue{
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.namespace", "slant-range"),
	}, cfg.ResourceAttributes...)
	res, err := resource.New(ctx, resource.WithAttributes(attrs...))
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(Sampler(cfg.SampleRatio)),
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info(ctx, "tracing enabled",
		logging.String("exporter", cfg.Exporter),
		logging.String("service_name", cfg.ServiceName),
		logging.Float64("sample_ratio", cfg.SampleRatio),
	)
	return tp.Shutdown, nil
}

// Sampler honours the caller's sampling decision and otherwise samples root
// spans at ratio. Ratios at or beyond the ends of [0, 1] use the constant
// samplers.
func Sampler(ratio float64) sdktrace.Sampler {
	var root sdktrace.Sampler
	switch {
	case ratio >= 1:
		root = sdktrace.AlwaysSample()
	case ratio <= 0:
		root = sdktrace.NeverSample()
	default:
		root = sdktrace.TraceIDRatioBased(ratio)
	}
	return sdktrace.ParentBased(root)
}

func exporterFromConfig(ctx context.Context, cfg TracingConfig) (sdktrace.SpanExporter, error) {
	switch strings.ToLower(cfg.Exporter) {
	case "stdout", "":
		w := cfg.Writer
		if w == nil {
			w = os.Stdout
		}
		return stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithoutTimestamps())
	case "otlp", "otlpgrpc":
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = "localhost:4317"
		}
		return otlptrace.New(ctx, otlptracegrpc.NewClient(
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		))
	default:
		return nil, fmt.Errorf("unsupported tracing exporter: %s", cfg.Exporter)
	}
}

// StartSpan starts an internal span on the package tracer.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// GeodeticAttributes names p's coordinates under role, e.g. "observer.latitude".
func GeodeticAttributes(role string, p model.GeodeticPosition) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Float64(role+".latitude", p.Latitude),
		attribute.Float64(role+".longitude", p.Longitude),
		attribute.Float64(role+".elevation", p.Elevation),
	}
}

// CartesianAttributes names p's components under role, e.g. "target.x".
func CartesianAttributes(role string, p model.CartesianPosition) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Float64(role+".x", p.X),
		attribute.Float64(role+".y", p.Y),
		attribute.Float64(role+".z", p.Z),
	}
}

// DeploymentAttributes describes the ellipsoid and validation mode of a
// server, for use as resource attributes.
func DeploymentAttributes(semiMajor, semiMinor float64, strict bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrEllipsoidSemiMajor.Float64(semiMajor),
		AttrEllipsoidSemiMinor.Float64(semiMinor),
		AttrStrictInputs.Bool(strict),
	}
}

// ShutdownWithTimeout runs shutdown with a five second bound, logging failures.
func ShutdownWithTimeout(ctx context.Context, shutdown func(context.Context) error, log logging.Logger) {
	if shutdown == nil {
		return
	}
	if log == nil {
		log = logging.Noop()
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Warn(ctx, "tracing shutdown failed", logging.Err(err))
	}
}
