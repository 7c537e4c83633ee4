// Package observability provides production-grade observability features
// for the journal engine: structured logging, metrics, and distributed
// tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds routing context to a logger.
// Returns a new logger carrying the router_id field.
//
// Example:
//
//	enriched := EnrichLogger(logger, "rtr-1a2b3c4d")
//	enriched.Info("doing work") // includes router_id
func EnrichLogger(logger *slog.Logger, routerID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("router_id", routerID),
	)
}

// LogRouterStart logs the dispatch task starting.
func LogRouterStart(logger *slog.Logger, routerID string, queueSize int) {
	if logger == nil {
		return
	}
	logger.Info("router starting",
		slog.String("router_id", routerID),
		slog.Int("queue_size", queueSize),
	)
}

// LogRouterStop logs the dispatch task stopping after drain.
func LogRouterStop(logger *slog.Logger, routerID string, drained int) {
	if logger == nil {
		return
	}
	logger.Info("router stopped",
		slog.String("router_id", routerID),
		slog.Int("drained", drained),
	)
}

// LogEventPublished logs an event entering the pending queue.
func LogEventPublished(logger *slog.Logger, eventID, path, scope string) {
	if logger == nil {
		return
	}
	logger.Debug("event enqueued",
		slog.String("event_id", eventID),
		slog.String("path", path),
		slog.String("scope", scope),
	)
}

// LogEventDropped logs an event the router could not enqueue.
func LogEventDropped(logger *slog.Logger, path, reason string) {
	if logger == nil {
		return
	}
	logger.Warn("event dropped",
		slog.String("path", path),
		slog.String("reason", reason),
	)
}

// LogDispatch logs completion of one event's fan-out.
func LogDispatch(logger *slog.Logger, eventID, path string, matched int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("event dispatched",
		slog.String("event_id", eventID),
		slog.String("path", path),
		slog.Int("matched", matched),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogDeliveryError logs a failed delivery attempt (non-fatal).
func LogDeliveryError(logger *slog.Logger, eventPath, listenerPath string, err error) {
	if logger == nil {
		return
	}
	logger.Error("delivery failed",
		slog.String("event_path", eventPath),
		slog.String("listener_path", listenerPath),
		slog.String("error", err.Error()),
	)
}

// LogListenerRegistered logs a listener joining the registry.
func LogListenerRegistered(logger *slog.Logger, path string, recursive, updated bool) {
	if logger == nil {
		return
	}
	logger.Info("listener registered",
		slog.String("path", path),
		slog.Bool("recursive", recursive),
		slog.Bool("updated", updated),
	)
}

// LogListenerUnregistered logs a listener leaving the registry.
func LogListenerUnregistered(logger *slog.Logger, path string) {
	if logger == nil {
		return
	}
	logger.Info("listener unregistered",
		slog.String("path", path),
	)
}

// LogRegistryLoaded logs a startup rebuild from the persistence store.
func LogRegistryLoaded(logger *slog.Logger, scope string, count int) {
	if logger == nil {
		return
	}
	logger.Info("listener registry loaded",
		slog.String("scope", scope),
		slog.Int("listeners", count),
	)
}

// LogResolveError logs a destination reference that could not be resolved
// during a registry load (the record is skipped).
func LogResolveError(logger *slog.Logger, ref, path string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("destination resolve failed",
		slog.String("destination", ref),
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
}

// LogRecordSkipped logs a persisted listener record that could not be
// turned into a live registration during a registry load.
func LogRecordSkipped(logger *slog.Logger, path, ref string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("listener record skipped",
		slog.String("path", path),
		slog.String("destination", ref),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
