package journal

import (
	"errors"
	"fmt"
)

// Sentinel errors for router lifecycle.
var (
	// ErrAlreadyStarted indicates Start() was called on a running router.
	ErrAlreadyStarted = errors.New("router already started")

	// ErrNotStarted indicates Stop() was called before Start().
	ErrNotStarted = errors.New("router not started")

	// ErrRouterClosed indicates an operation on a stopped router.
	ErrRouterClosed = errors.New("router closed")

	// ErrNilContext indicates Start() or Stop() was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")
)

// Sentinel errors for publishing.
var (
	// ErrQueueFull indicates the pending queue refused an event.
	// The event is still recorded in history.
	ErrQueueFull = errors.New("pending queue full")

	// ErrRootBroadcast indicates a send addressed to the root path itself.
	ErrRootBroadcast = errors.New("cannot send to the root path")
)

// Sentinel errors for registration.
var (
	// ErrNilListener indicates Register() was called with a nil listener.
	ErrNilListener = errors.New("listener cannot be nil")

	// ErrNilDestination indicates a listener was built without a destination.
	ErrNilDestination = errors.New("destination cannot be nil")
)

// DeliveryError wraps a destination failure with routing context.
// Deliveries are best-effort: the dispatch loop logs these and moves on,
// and they never reach the producer whose send already returned.
type DeliveryError struct {
	// EventPath is the path the event was published under.
	EventPath string
	// ListenerPath is the subscription path the delivery was for.
	ListenerPath string
	// Err is the underlying error from the destination.
	Err error
}

// Error implements the error interface.
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver %s to listener %s: %v", e.EventPath, e.ListenerPath, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// PanicError captures panic information from a destination's Send.
// It includes the stack trace for debugging.
type PanicError struct {
	// ListenerPath is the subscription whose destination panicked.
	ListenerPath string
	// Value is the value passed to panic().
	Value any
	// Stack is the full stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("destination for %s panicked: %v", e.ListenerPath, e.Value)
}
