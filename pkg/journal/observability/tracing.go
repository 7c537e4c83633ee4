package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the journal tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("journal")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartDispatchSpan starts a span covering one event's fan-out.
	// Returns the context with span and the span itself.
	StartDispatchSpan(ctx context.Context, eventID, path string) (context.Context, trace.Span)

	// StartDeliverySpan starts a span for a single delivery attempt.
	// The delivery span should be a child of the dispatch span.
	StartDeliverySpan(ctx context.Context, listenerPath string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartDispatchSpan starts a span covering one event's fan-out.
func (m *otelSpanManager) StartDispatchSpan(ctx context.Context, eventID, path string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "journal.dispatch",
		trace.WithAttributes(
			attribute.String("event.id", eventID),
			attribute.String("event.path", path),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartDeliverySpan starts a span for a single delivery attempt.
func (m *otelSpanManager) StartDeliverySpan(ctx context.Context, listenerPath string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "journal.deliver",
		trace.WithAttributes(
			attribute.String("listener.path", listenerPath),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// Convenience functions that operate on the global tracer.
// These are useful for simple cases where you don't need the interface.

// StartDispatchSpan starts a span covering one event's fan-out.
// Uses the global OTel tracer.
func StartDispatchSpan(ctx context.Context, eventID, path string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "journal.dispatch",
		trace.WithAttributes(
			attribute.String("event.id", eventID),
			attribute.String("event.path", path),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartDeliverySpan starts a span for a single delivery attempt.
// Uses the global OTel tracer.
func StartDeliverySpan(ctx context.Context, listenerPath string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "journal.deliver",
		trace.WithAttributes(
			attribute.String("listener.path", listenerPath),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
