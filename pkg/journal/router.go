package journal

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/journal/pkg/journal/event"
	"github.com/randalmurphal/journal/pkg/journal/history"
	"github.com/randalmurphal/journal/pkg/journal/observability"
	"github.com/randalmurphal/journal/pkg/journal/store"
)

// DestinationResolver turns a persisted destination reference (e.g.
// "webhook:https://...") into a live Destination during a registry load.
type DestinationResolver func(ref string) (Destination, error)

// Router owns the listener registry, the event history, and the pending
// queue, and runs the single dispatch task that drains the queue in FIFO
// order. Create one explicit Router and hand it to every component that
// publishes or administers; there is no process-wide instance.
//
// Registration may happen concurrently with dispatch. The matching set is
// snapshotted once per event, so registry changes become visible at event
// boundaries: a listener added while event N is in flight starts receiving
// at event N+1, never retroactively.
type Router struct {
	id  string
	cfg routerConfig

	mu           sync.RWMutex
	listeners    map[string][]*Listener
	broadcasters map[string]*Broadcaster

	history *history.History
	queue   chan *event.Event

	started atomic.Bool
	closed  atomic.Bool
	stopCh  chan struct{} // signals the dispatch task to drain and exit
	doneCh  chan struct{} // closed when the dispatch task has exited
}

// New creates a router. The dispatch task does not run until Start.
func New(opts ...Option) *Router {
	cfg := defaultRouterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Router{
		id:           "rtr-" + uuid.New().String()[:8],
		cfg:          cfg,
		listeners:    make(map[string][]*Listener),
		broadcasters: make(map[string]*Broadcaster),
		history:      history.New(cfg.historyCapacity),
		queue:        make(chan *event.Event, cfg.queueSize),
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// ID returns the router's log-correlation identifier.
func (r *Router) ID() string {
	return r.id
}

// History returns the router's event buffer. The router is the only
// writer; callers read it with Events and Search.
func (r *Router) History() *history.History {
	return r.history
}

// Start launches the dispatch task. The context bounds the task's
// lifetime: cancelling it halts dispatch immediately without draining
// (use Stop for a graceful drain).
//
// Start is idempotent-once: the second call on a running router returns
// ErrAlreadyStarted. A stopped router cannot be restarted.
func (r *Router) Start(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	if r.closed.Load() {
		return ErrRouterClosed
	}
	if !r.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	observability.LogRouterStart(r.cfg.logger, r.id, cap(r.queue))
	go r.dispatchLoop(ctx)
	return nil
}

// Stop closes the router to new events and waits for the dispatch task to
// drain the pending queue, best-effort, within the drain timeout. The
// context bounds only how long Stop itself waits. Stop after Stop is a
// no-op; Stop before Start returns ErrNotStarted.
func (r *Router) Stop(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	if !r.started.Load() {
		return ErrNotStarted
	}
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	close(r.stopCh)

	select {
	case <-r.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// publish records the event in history and enqueues it for dispatch.
// Never blocks: when the queue is full the event is dropped with
// ErrQueueFull, though it has already been appended to history.
func (r *Router) publish(e *event.Event) error {
	if r.closed.Load() {
		return ErrRouterClosed
	}

	r.history.Append(e)

	select {
	case r.queue <- e:
		r.cfg.metrics.RecordPublish(context.Background(), e.Path(), int64(len(r.queue)))
		observability.LogEventPublished(r.cfg.logger, e.ID(), e.Path(), e.Scope())
		return nil
	default:
		r.cfg.metrics.RecordDrop(context.Background(), e.Path(), "queue_full")
		observability.LogEventDropped(r.cfg.logger, e.Path(), "queue full")
		return ErrQueueFull
	}
}

// dispatchLoop is the single dispatch task. It drains the pending queue
// strictly in FIFO order and completes all deliveries for event N before
// starting event N+1.
func (r *Router) dispatchLoop(ctx context.Context) {
	defer close(r.doneCh)

	for {
		select {
		case <-ctx.Done():
			observability.LogRouterStop(r.cfg.logger, r.id, 0)
			return
		case <-r.stopCh:
			r.drainQueue(ctx)
			return
		case e := <-r.queue:
			r.dispatch(ctx, e)
		}
	}
}

// drainQueue delivers already-queued events until the queue is empty or
// the drain timeout elapses. Events still queued afterwards are lost to
// dispatch but remain in history.
func (r *Router) drainQueue(ctx context.Context) {
	drainCtx, cancel := context.WithTimeout(ctx, r.cfg.drainTimeout)
	defer cancel()

	drained := 0
	for {
		select {
		case e := <-r.queue:
			r.dispatch(drainCtx, e)
			drained++
			if drainCtx.Err() != nil {
				observability.LogRouterStop(r.cfg.logger, r.id, drained)
				return
			}
		default:
			observability.LogRouterStop(r.cfg.logger, r.id, drained)
			return
		}
	}
}

// dispatch fans one event out to every listener whose path matches.
func (r *Router) dispatch(ctx context.Context, e *event.Event) {
	matched := r.matchSnapshot(e.Path())

	dispatchCtx := ctx
	var dispatchSpan trace.Span
	if r.cfg.tracingEnabled {
		dispatchCtx, dispatchSpan = r.cfg.spans.StartDispatchSpan(ctx, e.ID(), e.Path())
	}

	start := time.Now()

	switch r.cfg.delivery {
	case DeliveryConcurrent:
		r.fanOutConcurrent(dispatchCtx, e, matched)
	default:
		r.fanOutSequential(dispatchCtx, e, matched)
	}

	duration := time.Since(start)

	if r.cfg.tracingEnabled {
		r.cfg.spans.EndSpanWithError(dispatchSpan, nil)
	}
	r.cfg.metrics.RecordDispatch(dispatchCtx, e.Path(), len(matched), duration)
	observability.LogDispatch(r.cfg.logger, e.ID(), e.Path(), len(matched), float64(duration.Milliseconds()))
}

// matchSnapshot returns the listeners matching path. Taken under the read
// lock once per event, so concurrent registry changes land at event
// boundaries and an unregistered listener's in-flight delivery completes
// normally.
func (r *Router) matchSnapshot(path string) []*Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Listener
	for _, ls := range r.listeners {
		for _, l := range ls {
			if l.Matches(path) {
				matched = append(matched, l)
			}
		}
	}
	return matched
}

// fanOutSequential delivers to matching listeners one at a time.
func (r *Router) fanOutSequential(ctx context.Context, e *event.Event, matched []*Listener) {
	for _, l := range matched {
		r.deliverTo(ctx, e, l)
	}
}

// fanOutConcurrent delivers to all matching listeners at once and waits
// for every attempt, so the next event still starts only after this one
// is fully processed.
func (r *Router) fanOutConcurrent(ctx context.Context, e *event.Event, matched []*Listener) {
	var wg sync.WaitGroup
	for _, l := range matched {
		wg.Add(1)
		go func(l *Listener) {
			defer wg.Done()
			r.deliverTo(ctx, e, l)
		}(l)
	}
	wg.Wait()
}

// deliverTo attempts one delivery. Failures are logged and recorded,
// never propagated: a broken destination cannot stall the queue or
// affect another listener's delivery.
func (r *Router) deliverTo(ctx context.Context, e *event.Event, l *Listener) {
	if !l.accepts(e) {
		return
	}

	deliverCtx := ctx
	var span trace.Span
	if r.cfg.tracingEnabled {
		deliverCtx, span = r.cfg.spans.StartDeliverySpan(ctx, l.Path())
	}

	start := time.Now()
	err := l.deliver(deliverCtx, e)
	duration := time.Since(start)

	if r.cfg.tracingEnabled {
		r.cfg.spans.EndSpanWithError(span, err)
	}
	r.cfg.metrics.RecordDelivery(ctx, e.Path(), duration, err)

	if err != nil {
		observability.LogDeliveryError(r.cfg.logger, e.Path(), l.Path(), err)
	}
}

// Register adds a listener to the registry, effective for events
// dispatched after this call; events already queued are matched against
// the registry as it stands when their dispatch begins.
//
// Registering a (path, destination) pair that is already present updates
// the existing registration in place (recursive flag, scope, formatter)
// instead of duplicating it; the previously registered listener remains
// the live one.
func (r *Router) Register(l *Listener) error {
	if l == nil {
		return ErrNilListener
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.listeners[l.path] {
		if existing.Destination() == l.Destination() {
			existing.update(l)
			observability.LogListenerRegistered(r.cfg.logger, l.path, existing.Recursive(), true)
			return nil
		}
	}

	r.listeners[l.path] = append(r.listeners[l.path], l)
	observability.LogListenerRegistered(r.cfg.logger, l.path, l.Recursive(), false)
	return nil
}

// Unregister removes the listener's (path, destination) registration.
// Idempotent: removing an unknown or nil listener is a no-op. A delivery
// already begun for the listener completes normally.
func (r *Router) Unregister(l *Listener) {
	if l == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ls := r.listeners[l.path]
	for i, existing := range ls {
		if existing == l || existing.Destination() == l.Destination() {
			r.listeners[l.path] = append(ls[:i], ls[i+1:]...)
			if len(r.listeners[l.path]) == 0 {
				delete(r.listeners, l.path)
			}
			observability.LogListenerUnregistered(r.cfg.logger, l.path)
			return
		}
	}
}

// Get returns the listener registered for the (path, destination) pair,
// or nil when none exists. A miss is not an error.
func (r *Router) Get(path string, dest Destination) *Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.listeners[path] {
		if l.Destination() == dest {
			return l
		}
	}
	return nil
}

// Listeners returns the listeners registered at exactly path, in
// registration order. The slice is a copy.
func (r *Router) Listeners(path string) []*Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ls := r.listeners[path]
	out := make([]*Listener, len(ls))
	copy(out, ls)
	return out
}

// ListenersFor returns every listener currently bound to dest across all
// paths, for cleaning up subscriptions when a destination disappears.
func (r *Router) ListenersFor(dest Destination) []*Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Listener
	for _, ls := range r.listeners {
		for _, l := range ls {
			if l.Destination() == dest {
				out = append(out, l)
			}
		}
	}
	return out
}

// Broadcaster returns the producer handle bound to root, creating it on
// first use; the same root always yields the same handle. The root must
// be a valid path. "/" is a legal handle root even though sends addressed
// to "/" itself are rejected.
func (r *Router) Broadcaster(root string) (*Broadcaster, error) {
	if err := event.ValidatePath(root); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.broadcasters[root]; ok {
		return b, nil
	}
	b := &Broadcaster{router: r, root: root}
	r.broadcasters[root] = b
	return b, nil
}

// Load rebuilds the registry from persisted records, resolving each
// opaque destination reference to a live sink. Records that cannot be
// resolved or rebuilt are logged and skipped so one stale destination
// does not block startup. Returns the number of listeners registered.
func (r *Router) Load(ctx context.Context, st store.Store, scope string, resolve DestinationResolver) (int, error) {
	recs, err := st.ListListeners(ctx, scope)
	if err != nil {
		return 0, fmt.Errorf("list listeners: %w", err)
	}

	count := 0
	for _, rec := range recs {
		dest, err := resolve(rec.Destination)
		if err != nil {
			observability.LogResolveError(r.cfg.logger, rec.Destination, rec.Path, err)
			continue
		}

		l, err := NewListener(rec.Path, rec.Recursive, dest, WithListenerScope(rec.Scope))
		if err != nil {
			observability.LogRecordSkipped(r.cfg.logger, rec.Path, rec.Destination, err)
			continue
		}
		if err := r.Register(l); err != nil {
			return count, err
		}
		count++
	}

	observability.LogRegistryLoaded(r.cfg.logger, scope, count)
	return count, nil
}
