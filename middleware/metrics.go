package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name for geodata metrics.
const meterName = "github.com/minff/geodata"

// Metrics returns middleware recording per-fetch metrics through the
// global OTel MeterProvider:
//
//   - geodata.fetch.duration (Float64Histogram, seconds)
//   - geodata.fetch.requests (Int64Counter)
//
// both attributed with operation, fetch_option, and status ("ok" or
// "error"). Without a configured provider the instruments are noops and
// the middleware costs nothing.
func Metrics() Middleware {
	return MetricsWithMeter(otel.Meter(meterName))
}

// MetricsWithMeter is Metrics with an explicit meter, for tests or
// multi-provider setups.
func MetricsWithMeter(meter metric.Meter) Middleware {
	// Built once per chain. A failed build leaves OTel's noop instrument
	// behind, so the record calls below need no error handling.
	duration, _ := meter.Float64Histogram(
		"geodata.fetch.duration",
		metric.WithDescription("Duration of fetch execution in seconds"),
		metric.WithUnit("s"),
	)
	requests, _ := meter.Int64Counter(
		"geodata.fetch.requests",
		metric.WithDescription("Total number of fetch executions"),
		metric.WithUnit("{request}"),
	)

	return func(ctx context.Context, op Operation, next Handler) error {
		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start).Seconds()

		status := "ok"
		if err != nil {
			status = "error"
		}

		attrs := metric.WithAttributes(
			attribute.String("operation", op.Name),
			attribute.String("fetch_option", op.FetchOption),
			attribute.String("status", status),
		)
		duration.Record(ctx, elapsed, attrs)
		requests.Add(ctx, 1, attrs)

		return err
	}
}
