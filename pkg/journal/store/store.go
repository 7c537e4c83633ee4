// Package store persists listener configuration so the registry can be
// rebuilt at startup. It is plain CRUD over (destination, path, recursive)
// tuples; transaction boundaries belong to the caller.
package store

import (
	"context"
	"errors"
	"time"
)

// Record is one persisted listener subscription. Destination is an opaque
// reference (e.g. "webhook:https://..." or "file:/var/log/journal.log")
// resolved to a live sink when the registry is rebuilt.
type Record struct {
	// Scope is the tenant the subscription belongs to; "" is the global scope.
	Scope string

	// Path is the subscribed hierarchical path, stored verbatim.
	Path string

	// Destination is the opaque sink reference.
	Destination string

	// Recursive marks a subtree subscription.
	Recursive bool

	// UpdatedAt is set by the store on Put; caller-supplied values are ignored.
	UpdatedAt time.Time
}

// Store persists listener records.
// Implementations must be safe for concurrent use.
type Store interface {
	// ListListeners returns all records for a scope, ordered by path then
	// destination. Returns an empty slice (not an error) when the scope has
	// none. The "" scope holds global subscriptions.
	ListListeners(ctx context.Context, scope string) ([]Record, error)

	// Get retrieves one record by its (path, destination) pair.
	// Returns ErrNotFound if the pair isn't stored.
	Get(ctx context.Context, path, destination string) (Record, error)

	// Put stores a record, overwriting any existing (path, destination) pair.
	Put(ctx context.Context, rec Record) error

	// Delete removes a record.
	// Returns nil if the pair doesn't exist.
	Delete(ctx context.Context, path, destination string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a listener record doesn't exist.
	ErrNotFound = errors.New("listener record not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("listener store closed")
)
