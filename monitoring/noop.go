package monitoring

import "go.opentelemetry.io/otel/metric/noop"

// InitNoop wires the metric instruments to a no-op meter so code that
// records metrics can run without a metrics pipeline. Intended for tests.
func InitNoop() {
	meter := noop.NewMeterProvider().Meter("noop")
	OrderCounter, _ = meter.Int64Counter("orders_created_total")
	OrderAmount, _ = meter.Int64Histogram("order_amount_minor_units")
	VerificationCounter, _ = meter.Int64Counter("payment_verifications_total")
	ProcessorDuration, _ = meter.Float64Histogram("payment_processor_duration_seconds")
	HTTPServerDuration, _ = meter.Float64Histogram("http_server_duration_milliseconds")
}
