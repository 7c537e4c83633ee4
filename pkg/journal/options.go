package journal

import (
	"log/slog"
	"time"

	"github.com/randalmurphal/journal/pkg/journal/config"
	"github.com/randalmurphal/journal/pkg/journal/observability"
)

// DeliveryMode selects the fan-out discipline within one event.
type DeliveryMode int

const (
	// DeliverySequential delivers to matching listeners one at a time.
	// This is the default; listeners never race each other.
	DeliverySequential DeliveryMode = iota

	// DeliveryConcurrent delivers to all matching listeners at once and
	// waits for every attempt to finish before the next event. Event
	// ordering per listener is unchanged; only deliveries within one
	// event overlap.
	DeliveryConcurrent
)

// Defaults for router construction.
const (
	// DefaultQueueSize is the pending-event queue bound.
	DefaultQueueSize = 256

	// DefaultDrainTimeout bounds the shutdown drain.
	DefaultDrainTimeout = 5 * time.Second
)

// routerConfig holds configuration for a Router.
type routerConfig struct {
	queueSize       int
	historyCapacity int
	delivery        DeliveryMode
	drainTimeout    time.Duration

	logger         *slog.Logger
	metrics        observability.MetricsRecorder
	metricsEnabled bool
	spans          observability.SpanManager
	tracingEnabled bool
}

// defaultRouterConfig returns the default router configuration.
func defaultRouterConfig() routerConfig {
	return routerConfig{
		queueSize:    DefaultQueueSize,
		drainTimeout: DefaultDrainTimeout,
		metrics:      observability.NoopMetrics{},
		spans:        observability.NoopSpanManager{},
	}
}

// Option configures router construction.
type Option func(*routerConfig)

// WithQueueSize sets the pending-event queue bound.
// Default: DefaultQueueSize
//
// Send never blocks: when the queue is full, events are dropped with
// ErrQueueFull (they still land in history).
func WithQueueSize(n int) Option {
	return func(c *routerConfig) {
		if n > 0 {
			c.queueSize = n
		}
	}
}

// WithHistoryCapacity bounds the in-memory history buffer. The oldest
// events are evicted first.
// Default: 0 (unbounded)
func WithHistoryCapacity(n int) Option {
	return func(c *routerConfig) {
		c.historyCapacity = n
	}
}

// WithDelivery sets the fan-out discipline within one event.
// Default: DeliverySequential
func WithDelivery(mode DeliveryMode) Option {
	return func(c *routerConfig) {
		c.delivery = mode
	}
}

// WithDrainTimeout bounds the best-effort queue drain during Stop.
// Default: DefaultDrainTimeout
func WithDrainTimeout(d time.Duration) Option {
	return func(c *routerConfig) {
		if d > 0 {
			c.drainTimeout = d
		}
	}
}

// WithLogger sets the structured logger for routing lifecycle and
// delivery failures. A nil logger (the default) disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *routerConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics collection.
// Default: disabled (no-op recorder)
//
// Uses the global OTel meter provider; configure it before Start.
func WithMetrics(enabled bool) Option {
	return func(c *routerConfig) {
		c.metricsEnabled = enabled
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry spans around dispatch and delivery.
// Default: disabled
//
// Uses the global OTel tracer provider; configure it before Start.
func WithTracing(enabled bool) Option {
	return func(c *routerConfig) {
		c.tracingEnabled = enabled
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// FromConfig builds router options from loaded configuration.
//
// Recognized keys:
//
//	router:
//	  queue_size: 512        # pending queue bound
//	  delivery: concurrent   # "sequential" (default) or "concurrent"
//	  drain_timeout: 10s     # shutdown drain grace
//	history:
//	  capacity: 1000         # 0 = unbounded
//
// Keys that are absent keep their defaults, so FromConfig composes with
// further explicit options.
func FromConfig(cfg config.Config) []Option {
	var opts []Option

	router := cfg.Section("router")
	if router.Has("queue_size") {
		opts = append(opts, WithQueueSize(router.Int("queue_size", DefaultQueueSize)))
	}
	if router.String("delivery", "sequential") == "concurrent" {
		opts = append(opts, WithDelivery(DeliveryConcurrent))
	}
	if router.Has("drain_timeout") {
		opts = append(opts, WithDrainTimeout(router.Duration("drain_timeout", DefaultDrainTimeout)))
	}

	hist := cfg.Section("history")
	if hist.Has("capacity") {
		opts = append(opts, WithHistoryCapacity(hist.Int("capacity", 0)))
	}

	return opts
}
