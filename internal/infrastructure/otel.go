package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// ServiceName identifies this service in traces and metrics.
	ServiceName    = "emdata-converter"
	ServiceVersion = "1.0.0"
	meterName      = "emcli"
	tracerName     = "emcli"
)

// OTelConfig holds OpenTelemetry configuration.
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string // "stdout" or "none"
	EnableMetrics  bool
	EnableTracing  bool
}

// OTelProviders holds the initialized providers and instruments.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Metrics        *ConverterMetrics
}

// ConverterMetrics are the conversion-pipeline instruments.
type ConverterMetrics struct {
	FilesParsed      metric.Int64Counter
	ParseFailures    metric.Int64Counter
	DatasetsProduced metric.Int64Counter
	RowsDropped      metric.Int64Counter
}

// DefaultOTelConfig returns a development-friendly configuration.
func DefaultOTelConfig() *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: ServiceVersion,
		Environment:    env,
		TraceExporter:  "stdout",
		EnableMetrics:  true,
		EnableTracing:  true,
	}
}

// InitializeOTel sets up tracing and metrics and returns the providers.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}
	ctx := context.Background()

	logger.InfoContext(ctx, "Initializing OpenTelemetry",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion),
		slog.Bool("tracing_enabled", cfg.EnableTracing),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
	)

	providers := &OTelProviders{}

	if cfg.EnableTracing && cfg.TraceExporter != "none" {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		providers.TracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(providers.TracerProvider)
		providers.Tracer = providers.TracerProvider.Tracer(tracerName)
	} else {
		providers.Tracer = otel.Tracer(tracerName)
	}

	if cfg.EnableMetrics {
		exporter, err := otelprom.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		providers.MeterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(exporter),
			sdkmetric.WithResource(res),
		)
		otel.SetMeterProvider(providers.MeterProvider)
		providers.Meter = providers.MeterProvider.Meter(meterName)
		providers.PrometheusHTTP = promhttp.Handler()

		metrics, err := newConverterMetrics(providers.Meter)
		if err != nil {
			return nil, fmt.Errorf("failed to create instruments: %w", err)
		}
		providers.Metrics = metrics
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return providers, nil
}

func newConverterMetrics(meter metric.Meter) (*ConverterMetrics, error) {
	filesParsed, err := meter.Int64Counter("emdata.files.parsed",
		metric.WithDescription("Export files parsed successfully"))
	if err != nil {
		return nil, err
	}
	parseFailures, err := meter.Int64Counter("emdata.files.failed",
		metric.WithDescription("Export files that failed to parse"))
	if err != nil {
		return nil, err
	}
	datasets, err := meter.Int64Counter("emdata.datasets.produced",
		metric.WithDescription("Datasets produced across all parses"))
	if err != nil {
		return nil, err
	}
	dropped, err := meter.Int64Counter("emdata.rows.dropped",
		metric.WithDescription("Data rows dropped for column-count mismatch"))
	if err != nil {
		return nil, err
	}
	return &ConverterMetrics{
		FilesParsed:      filesParsed,
		ParseFailures:    parseFailures,
		DatasetsProduced: datasets,
		RowsDropped:      dropped,
	}, nil
}

// RecordParse updates the conversion counters after one file parse.
func (m *ConverterMetrics) RecordParse(ctx context.Context, filetype string, datasets, droppedRows int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("filetype", filetype))
	m.FilesParsed.Add(ctx, 1, attrs)
	m.DatasetsProduced.Add(ctx, int64(datasets), attrs)
	m.RowsDropped.Add(ctx, int64(droppedRows), attrs)
}

// RecordParseFailure counts one failed file parse.
func (m *ConverterMetrics) RecordParseFailure(ctx context.Context, filetype string) {
	if m == nil {
		return
	}
	m.ParseFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("filetype", filetype)))
}

// Shutdown flushes and stops the providers.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var firstErr error
	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
