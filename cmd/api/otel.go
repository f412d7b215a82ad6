package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"relay-server/internal/infra/node"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

type ShutdownFunc func() error

const (
	_serviceName     = "relay-server"
	_endpointEnv     = "RELAY_SERVER_OTELCOL_ENDPOINT"
	_defaultEndpoint = "localhost:4317"
	_collectPeriod   = 30 * time.Second
	_collectTimeout  = 35 * time.Second
	_minimumInterval = time.Minute
)

// applied to histograms whose name ends in .seconds
var _histogramBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

func startOTel(nodeInfo *node.Node) ShutdownFunc {
	slog.Info("starting OTel providers", slog.String("endpoint", otelEndpoint()))
	shutdown, err := otelStart(context.Background(), otelResource(nodeInfo))
	if err != nil {
		panic(err)
	}

	return shutdown
}

func otelEndpoint() string {
	if value, ok := os.LookupEnv(_endpointEnv); ok && value != "" {
		return value
	}
	return _defaultEndpoint
}

func otelResource(nodeInfo *node.Node) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(_serviceName),
		semconv.ServiceVersionKey.String(nodeInfo.Version),
		semconv.ServiceInstanceIDKey.String(nodeInfo.ID),
		semconv.HostNameKey.String(nodeInfo.Hostname),
	)
}

func otelStart(ctx context.Context, res *resource.Resource) (ShutdownFunc, error) {
	metricsShutdownFunc, err := startMetricsProvider(ctx, res)
	if err != nil {
		return nil, err
	}

	traceShutdownFunc, err := startTraceProvider(ctx, res)
	if err != nil {
		return nil, errors.Join(err, metricsShutdownFunc())
	}

	otel.SetTextMapPropagator(propagation.TraceContext{})

	return func() error {
		return errors.Join(metricsShutdownFunc(), traceShutdownFunc())
	}, nil
}

func startTraceProvider(ctx context.Context, res *resource.Resource) (ShutdownFunc, error) {
	exp, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(otelEndpoint()),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return func() error {
		return tp.Shutdown(ctx)
	}, nil
}

func startMetricsProvider(ctx context.Context, res *resource.Resource) (ShutdownFunc, error) {
	exp, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(otelEndpoint()),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	mp := newMeterProvider(exp, res)
	otel.SetMeterProvider(mp)

	err = runtime.Start(runtime.WithMinimumReadMemStatsInterval(_minimumInterval))
	if err != nil {
		return nil, err
	}

	return func() error {
		return mp.Shutdown(ctx)
	}, nil
}

func newMeterProvider(metricExporter metric.Exporter, res *resource.Resource) *metric.MeterProvider {
	return metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(
			metric.NewPeriodicReader(
				metricExporter,
				metric.WithTimeout(_collectTimeout),
				metric.WithInterval(_collectPeriod))),
		metric.WithView(metric.NewView(
			metric.Instrument{
				Name: "*.seconds",
				Kind: metric.InstrumentKindHistogram,
			},
			metric.Stream{
				Aggregation: metric.AggregationExplicitBucketHistogram{
					Boundaries: _histogramBuckets,
				},
			},
		)),
	)
}
