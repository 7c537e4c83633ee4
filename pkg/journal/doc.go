/*
Package journal provides hierarchical publish/subscribe event routing
with history, pluggable destinations, and persistent subscriptions.

# Overview

journal routes immutable events published under slash-delimited paths
(such as "/journal/channel/add") to listeners subscribed at those paths.
A listener subscribes exactly or recursively: a recursive listener at
"/journal" also receives every event under "/journal/...", while an
exact listener receives only events at its own path. Every routed event
is retained in an in-memory history for administrative search.

One Router owns the registry, the history, and the pending queue. A
single dispatch task drains the queue strictly in FIFO order and
finishes all deliveries for one event before starting the next, so no
listener ever observes events out of send order. Producers publish
through Broadcaster handles and are never blocked by slow destinations.

# Basic Usage

Create a router, register a listener, and send:

	router := journal.New()
	if err := router.Start(context.Background()); err != nil {
	    log.Fatal(err)
	}
	defer router.Stop(context.Background())

	rec := sink.NewRecorder()
	l, err := journal.NewListener("/journal", true, rec)
	if err != nil {
	    log.Fatal(err)
	}
	router.Register(l)

	b, err := router.Broadcaster("/journal")
	if err != nil {
	    log.Fatal(err)
	}
	b.Send("/journal/channel/add", "guild-1", "channel #general created",
	    event.WithIcon("📥"),
	    event.WithAttribute("channel_id", "1138"))

Send validates the path eagerly, appends the event to history, enqueues
it, and returns immediately. Delivery failures are logged and swallowed;
they never reach the producer.

# Matching

A listener L matches an event E when L's path equals E's path exactly
(regardless of the recursive flag), or when L is recursive and E's path
is a strict descendant of L's path at a segment boundary. "/journal"
recursive matches "/journal/channel/add" but never "/journalx"; an
exact listener at "/journal/channel" does not match
"/journal/channel/add". A recursive listener at "/" receives everything.

# History

Every sent event lands in history, newest first, whether or not any
listener matched. Administrative search combines a scope filter, a
result cap (default 20), and composable predicates:

	events := router.History().Search(history.Query{
	    Scope: "guild-1",
	    Where: search.All(
	        search.PathPrefix("/journal"),
	        search.AttrEquals("actor", "mod-7"),
	    ),
	})

# Destinations

Anything with Send(ctx, content) error is a destination: chat-style
webhooks, files, io.Writers, and test recorders ship in the sink
package. Destinations own their timeout policy. A destination that
fails or panics only loses its own delivery; other listeners and the
dispatch loop are unaffected.

# Persistence

Subscriptions survive restarts through a store.Store. Each
administrative change is persisted as a (path, destination, recursive)
record; at startup the registry is rebuilt by resolving the stored
destination references back to live sinks:

	st, _ := store.NewSQLiteStore("./listeners.db")
	defer st.Close()

	reg := sink.NewRegistry()
	n, err := router.Load(ctx, st, "guild-1", reg.Resolve)

Records whose destination cannot be resolved are logged and skipped so
one stale reference does not block startup.

# Observability

Enable logging, metrics, and tracing:

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	router := journal.New(
	    journal.WithLogger(logger),
	    journal.WithMetrics(true),
	    journal.WithTracing(true))

Logs include structured fields: router_id, event_id, path, matched,
duration_ms. OpenTelemetry metrics: journal.events.published,
journal.dispatch.latency_ms, journal.delivery.errors, etc.
OpenTelemetry tracing: journal.dispatch > journal.deliver spans.

# Error Handling

Faults are rejected eagerly where possible and tolerated at delivery
time. Malformed paths fail Send and NewListener with *event.PathError;
re-registering an existing (path, destination) pair is an update, not
an error; lookups for unknown pairs return nil, never an error. A full
pending queue drops the event with ErrQueueFull (the event is still in
history). Delivery failures are wrapped in *DeliveryError and panics in
*PanicError, both logged and swallowed by the dispatch loop.

# Thread Safety

  - Router IS safe for concurrent use (registration during dispatch
    becomes visible at event boundaries)
  - Broadcaster IS safe for concurrent use
  - Listener IS safe for concurrent use; destination swaps apply to
    subsequent deliveries
  - History IS safe for concurrent reads during dispatch

# Subpackages

  - event: immutable event model and path validation
  - history: append-only buffer with bounded retention and search
  - search: fixed, safe predicate constructors for history queries
  - sink: destination implementations (recorder, file, webhook) and the
    reference-resolving registry
  - render: ${var} template formatters for destination output
  - store: listener persistence (memory, SQLite)
  - config: YAML/JSON configuration loading
  - observability: logging, metrics, and tracing helpers
*/
package journal
