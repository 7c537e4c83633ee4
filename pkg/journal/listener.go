package journal

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"
	"sync"

	"github.com/randalmurphal/journal/pkg/journal/event"
)

// Destination is anywhere a formatted event can land: a chat channel, a
// file, a webhook, a test recorder. Implementations report failure through
// the returned error, own their own timeout policy, and must be safe for
// concurrent use.
//
// The router identifies registrations by destination identity (interface
// equality), so implementations should be pointer types.
type Destination interface {
	// Send delivers one rendered event.
	Send(ctx context.Context, content string) error
}

// Formatter renders an event into the text handed to a destination.
type Formatter func(*event.Event) string

// DefaultFormat renders an event as "icon content" followed by a sorted
// (key=value, ...) attribute summary when attributes exist. It is the
// formatter applied when a listener has none of its own.
func DefaultFormat(e *event.Event) string {
	var b strings.Builder
	if e.Icon() != "" {
		b.WriteString(e.Icon())
		b.WriteString(" ")
	}
	b.WriteString(e.Content())

	attrs := e.Attributes()
	if len(attrs) > 0 {
		keys := make([]string, 0, len(attrs))
		for k := range attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, attrs[k])
		}
		b.WriteString(")")
	}
	return b.String()
}

// Listener binds a path subscription to a destination. The path is fixed
// for the listener's lifetime; the recursive flag, destination, scope, and
// formatter may change through the router (re-registering an equal
// (path, destination) pair updates them in place).
type Listener struct {
	path string

	mu        sync.RWMutex
	recursive bool
	dest      Destination
	scope     string
	formatter Formatter
}

// ListenerOption configures listener creation.
type ListenerOption func(*Listener)

// WithListenerScope restricts delivery to events carrying the given tenant
// scope. Matching stays purely path-based; events from other scopes are
// skipped at the delivery boundary. "" (the default) accepts every scope.
func WithListenerScope(scope string) ListenerOption {
	return func(l *Listener) {
		l.scope = scope
	}
}

// WithFormatter sets the render function applied before Send.
// Default: DefaultFormat.
func WithFormatter(f Formatter) ListenerOption {
	return func(l *Listener) {
		l.formatter = f
	}
}

// NewListener creates a listener subscribed at path. A recursive listener
// also receives events published at strict descendants of its path.
// The path is validated eagerly; malformed paths are rejected with a
// *event.PathError and never normalized.
func NewListener(path string, recursive bool, dest Destination, opts ...ListenerOption) (*Listener, error) {
	if err := event.ValidatePath(path); err != nil {
		return nil, err
	}
	if dest == nil {
		return nil, ErrNilDestination
	}

	l := &Listener{
		path:      path,
		recursive: recursive,
		dest:      dest,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Path returns the subscribed path.
func (l *Listener) Path() string {
	return l.path
}

// Recursive reports whether the listener also receives descendant events.
func (l *Listener) Recursive() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.recursive
}

// Destination returns the currently bound sink.
func (l *Listener) Destination() Destination {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dest
}

// SetDestination relocates the subscription to a new sink, keeping the
// registration. A nil destination is ignored.
func (l *Listener) SetDestination(dest Destination) {
	if dest == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dest = dest
}

// Scope returns the listener's tenant scope filter, "" for all scopes.
func (l *Listener) Scope() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.scope
}

// Matches reports whether the listener should receive an event published
// at path: exact path equality always matches, and a recursive listener
// also matches strict descendants at segment boundaries. A recursive
// listener at the root matches everything.
func (l *Listener) Matches(path string) bool {
	if l.path == path {
		return true
	}
	l.mu.RLock()
	recursive := l.recursive
	l.mu.RUnlock()
	return recursive && event.Descends(path, l.path)
}

// accepts applies the scope filter at the delivery boundary: a scoped
// listener skips events carrying a different non-empty scope. Global
// events (empty scope) reach every listener.
func (l *Listener) accepts(e *event.Event) bool {
	l.mu.RLock()
	scope := l.scope
	l.mu.RUnlock()
	return scope == "" || e.Scope() == "" || scope == e.Scope()
}

// update copies the mutable fields from an equal registration.
// Caller guarantees src has the same path and destination.
func (l *Listener) update(src *Listener) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.recursive = src.recursive
	l.scope = src.scope
	if src.formatter != nil {
		l.formatter = src.formatter
	}
}

// deliver renders the event and sends it to the bound destination with
// panic recovery. Returns any error (including wrapped panics); the
// dispatch loop logs and swallows it.
func (l *Listener) deliver(ctx context.Context, e *event.Event) (err error) {
	l.mu.RLock()
	dest := l.dest
	format := l.formatter
	l.mu.RUnlock()

	if format == nil {
		format = DefaultFormat
	}

	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{
				ListenerPath: l.path,
				Value:        r,
				Stack:        string(debug.Stack()),
			}
		}
	}()

	if sendErr := dest.Send(ctx, format(e)); sendErr != nil {
		return &DeliveryError{
			EventPath:    e.Path(),
			ListenerPath: l.path,
			Err:          sendErr,
		}
	}
	return nil
}
