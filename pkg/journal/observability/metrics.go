package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records routing metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordPublish records an event accepted into the pending queue,
	// along with the queue depth observed at enqueue time.
	RecordPublish(ctx context.Context, path string, queueDepth int64)

	// RecordDrop records an event the router refused to enqueue.
	RecordDrop(ctx context.Context, path, reason string)

	// RecordDispatch records one event's complete fan-out: how many
	// listeners matched and how long the whole fan-out took.
	RecordDispatch(ctx context.Context, path string, matched int, duration time.Duration)

	// RecordDelivery records a single delivery attempt with its duration
	// and error status.
	RecordDelivery(ctx context.Context, path string, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	eventsPublished metric.Int64Counter
	eventsDropped   metric.Int64Counter
	queueDepth      metric.Int64Histogram
	dispatchLatency metric.Float64Histogram
	dispatchMatched metric.Int64Histogram
	deliveries      metric.Int64Counter
	deliveryErrors  metric.Int64Counter
	deliveryLatency metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("journal")

	eventsPublished, err := meter.Int64Counter("journal.events.published",
		metric.WithDescription("Number of events accepted for dispatch"),
	)
	if err != nil {
		return nil, err
	}

	eventsDropped, err := meter.Int64Counter("journal.events.dropped",
		metric.WithDescription("Number of events refused at enqueue time"),
	)
	if err != nil {
		return nil, err
	}

	queueDepth, err := meter.Int64Histogram("journal.queue.depth",
		metric.WithDescription("Pending queue depth observed at enqueue time"),
	)
	if err != nil {
		return nil, err
	}

	dispatchLatency, err := meter.Float64Histogram("journal.dispatch.latency_ms",
		metric.WithDescription("Per-event fan-out latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	dispatchMatched, err := meter.Int64Histogram("journal.dispatch.matched",
		metric.WithDescription("Number of listeners matched per event"),
	)
	if err != nil {
		return nil, err
	}

	deliveries, err := meter.Int64Counter("journal.deliveries",
		metric.WithDescription("Number of delivery attempts"),
	)
	if err != nil {
		return nil, err
	}

	deliveryErrors, err := meter.Int64Counter("journal.delivery.errors",
		metric.WithDescription("Number of failed delivery attempts"),
	)
	if err != nil {
		return nil, err
	}

	deliveryLatency, err := meter.Float64Histogram("journal.delivery.latency_ms",
		metric.WithDescription("Single delivery latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		eventsPublished: eventsPublished,
		eventsDropped:   eventsDropped,
		queueDepth:      queueDepth,
		dispatchLatency: dispatchLatency,
		dispatchMatched: dispatchMatched,
		deliveries:      deliveries,
		deliveryErrors:  deliveryErrors,
		deliveryLatency: deliveryLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordPublish records an accepted event.
func (m *otelMetrics) RecordPublish(ctx context.Context, path string, queueDepth int64) {
	attrs := []attribute.KeyValue{
		attribute.String("path", path),
	}
	m.eventsPublished.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.queueDepth.Record(ctx, queueDepth)
}

// RecordDrop records a refused event.
func (m *otelMetrics) RecordDrop(ctx context.Context, path, reason string) {
	m.eventsDropped.Add(ctx, 1, metric.WithAttributes(
		attribute.String("path", path),
		attribute.String("reason", reason),
	))
}

// RecordDispatch records one event's fan-out.
func (m *otelMetrics) RecordDispatch(ctx context.Context, path string, matched int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("path", path),
	}
	m.dispatchMatched.Record(ctx, int64(matched), metric.WithAttributes(attrs...))
	m.dispatchLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordDelivery records a delivery attempt.
func (m *otelMetrics) RecordDelivery(ctx context.Context, path string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("path", path),
	}
	m.deliveries.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.deliveryLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.deliveryErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
