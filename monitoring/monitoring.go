package monitoring

import (
	"context"

	otelprom "go.opentelemetry.io/otel/exporters/prometheus"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"checkout-service/logging"
)

var (
	// OpenTelemetry metrics
	OrderCounter        metric.Int64Counter
	OrderAmount         metric.Int64Histogram
	VerificationCounter metric.Int64Counter
	ProcessorDuration   metric.Float64Histogram
	HTTPServerDuration  metric.Float64Histogram
)

// InitTracer initializes OpenTelemetry tracing
func InitTracer(serviceName, endpoint string) (*sdktrace.TracerProvider, trace.Tracer, error) {
	ctx := context.Background()

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	tracer := tp.Tracer(serviceName)

	logging.Info("Tracing initialized", zap.String("service_name", serviceName))

	return tp, tracer, nil
}

// InitMeter initializes OpenTelemetry metrics with a Prometheus exporter.
// The returned reader is registered on the default Prometheus registry so
// the metrics are served by promhttp.
func InitMeter(serviceName string) (*sdkmetric.MeterProvider, metric.Meter, error) {
	ctx := context.Background()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	promExporter, err := otelprom.New()
	if err != nil {
		return nil, nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(promExporter),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)
	meter := mp.Meter(serviceName)

	// Initialize metric instruments
	OrderCounter, err = meter.Int64Counter(
		"orders_created_total",
		metric.WithDescription("Total number of order-creation requests"),
	)
	if err != nil {
		return nil, nil, err
	}

	OrderAmount, err = meter.Int64Histogram(
		"order_amount_minor_units",
		metric.WithDescription("Order amounts forwarded to the processor, in minor units"),
	)
	if err != nil {
		return nil, nil, err
	}

	VerificationCounter, err = meter.Int64Counter(
		"payment_verifications_total",
		metric.WithDescription("Total number of payment signature verifications"),
	)
	if err != nil {
		return nil, nil, err
	}

	ProcessorDuration, err = meter.Float64Histogram(
		"payment_processor_duration_seconds",
		metric.WithDescription("Duration of external payment processor calls"),
	)
	if err != nil {
		return nil, nil, err
	}

	HTTPServerDuration, err = meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP server request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, nil, err
	}

	logging.Info("Metrics initialized with Prometheus exporter")

	return mp, meter, nil
}
