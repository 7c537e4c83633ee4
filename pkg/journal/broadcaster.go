package journal

import (
	"github.com/randalmurphal/journal/pkg/journal/event"
)

// Broadcaster is a producer-facing handle bound to a root path on a
// shared Router. Distinct broadcasters (one per root path) are
// independent handles onto the same router; obtain them with
// Router.Broadcaster.
type Broadcaster struct {
	router *Router
	root   string
}

// Root returns the root path the handle is bound to.
func (b *Broadcaster) Root() string {
	return b.root
}

// Send constructs an event, appends it to history, and enqueues it for
// dispatch, returning immediately. It never waits on delivery or I/O, so
// slow destinations cannot backpressure producers.
//
// The path is used verbatim, never rewritten relative to the
// broadcaster's root, and is validated eagerly: a malformed path is
// rejected with a *event.PathError, and a send addressed to the root
// path itself is refused with ErrRootBroadcast. After the router stops,
// Send returns ErrRouterClosed. When the pending queue is full the event
// is dropped with ErrQueueFull but remains searchable in history.
func (b *Broadcaster) Send(path, scope, content string, opts ...event.Option) error {
	if path == event.RootPath {
		return ErrRootBroadcast
	}

	e, err := event.New(path, scope, content, opts...)
	if err != nil {
		return err
	}

	return b.router.publish(e)
}
