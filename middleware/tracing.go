package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope name for geodata tracing.
const tracerName = "github.com/minff/geodata"

// Tracing returns middleware wrapping every fetch in a "geodata.fetch"
// client span, attributed with geodata.operation, geodata.catalog,
// geodata.layer, and geodata.fetch_option. An error outcome marks the
// span status Error. Without a globally configured TracerProvider the
// spans are noops.
func Tracing() Middleware {
	return TracingWithTracer(otel.Tracer(tracerName))
}

// TracingWithTracer is Tracing with an explicit tracer, for tests or
// multi-provider setups.
func TracingWithTracer(tracer trace.Tracer) Middleware {
	return func(ctx context.Context, op Operation, next Handler) error {
		ctx, span := tracer.Start(ctx, "geodata.fetch",
			trace.WithAttributes(
				attribute.String("geodata.operation", op.Name),
				attribute.String("geodata.catalog", op.Catalog),
				attribute.String("geodata.layer", op.Layer),
				attribute.String("geodata.fetch_option", op.FetchOption),
			),
			trace.WithSpanKind(trace.SpanKindClient),
		)
		defer span.End()

		err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	}
}
