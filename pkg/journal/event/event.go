// Package event defines the immutable event record routed by the journal
// engine, along with path validation for the hierarchical names events are
// published under.
//
// Events are value-like: once constructed they never change. Attribute maps
// are copied on the way in and on the way out.
//
// Design Influences:
//   - AWS EventBridge (immutable event envelopes)
//   - syslog facilities (hierarchical source naming)
package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is one routed occurrence: something happened at a path, within a
// scope, with a text payload and optional structured attributes.
// Events are immutable once created.
type Event struct {
	id         string
	path       string
	scope      string
	content    string
	attributes map[string]any
	icon       string
	timestamp  time.Time
}

// Option configures event creation.
type Option func(*Event)

// WithEventID sets a specific event ID (default: auto-generated UUID).
func WithEventID(id string) Option {
	return func(e *Event) {
		e.id = id
	}
}

// WithIcon sets the symbolic icon tag for the event.
func WithIcon(icon string) Option {
	return func(e *Event) {
		e.icon = icon
	}
}

// WithTimestamp sets a specific timestamp (default: time.Now().UTC()).
func WithTimestamp(t time.Time) Option {
	return func(e *Event) {
		e.timestamp = t
	}
}

// WithAttribute adds a single attribute. Later writes to the same key win.
func WithAttribute(key string, value any) Option {
	return func(e *Event) {
		if e.attributes == nil {
			e.attributes = make(map[string]any)
		}
		e.attributes[key] = value
	}
}

// WithAttributes merges the given attributes into the event.
func WithAttributes(attrs map[string]any) Option {
	return func(e *Event) {
		if len(attrs) == 0 {
			return
		}
		if e.attributes == nil {
			e.attributes = make(map[string]any, len(attrs))
		}
		for k, v := range attrs {
			e.attributes[k] = v
		}
	}
}

// New constructs an event published under path within scope.
// The path is validated eagerly; malformed paths are rejected with a
// *PathError and never normalized. An empty scope marks a global event.
func New(path, scope, content string, opts ...Option) (*Event, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}

	e := &Event{
		id:        uuid.New().String(),
		path:      path,
		scope:     scope,
		content:   content,
		timestamp: time.Now().UTC(),
	}

	for _, opt := range opts {
		opt(e)
	}

	// Detach from any caller-held map so the event stays immutable.
	if len(e.attributes) > 0 {
		attrs := make(map[string]any, len(e.attributes))
		for k, v := range e.attributes {
			attrs[k] = v
		}
		e.attributes = attrs
	}

	return e, nil
}

// ID returns the unique event identifier.
func (e *Event) ID() string {
	return e.id
}

// Path returns the hierarchical path the event was published under.
func (e *Event) Path() string {
	return e.path
}

// Scope returns the tenant scope, or "" for global events.
func (e *Event) Scope() string {
	return e.scope
}

// Content returns the text payload.
func (e *Event) Content() string {
	return e.content
}

// Icon returns the symbolic icon tag, or "" when unset.
func (e *Event) Icon() string {
	return e.icon
}

// Timestamp returns when the event was constructed.
func (e *Event) Timestamp() time.Time {
	return e.timestamp
}

// Attributes returns a copy of the event's attributes.
func (e *Event) Attributes() map[string]any {
	if len(e.attributes) == 0 {
		return nil
	}
	attrs := make(map[string]any, len(e.attributes))
	for k, v := range e.attributes {
		attrs[k] = v
	}
	return attrs
}

// Attribute returns a single attribute value and whether it is present.
func (e *Event) Attribute(key string) (any, bool) {
	v, ok := e.attributes[key]
	return v, ok
}
