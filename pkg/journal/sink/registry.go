package sink

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/randalmurphal/journal/pkg/journal"
)

// ErrUnknownKind indicates a reference naming an unregistered kind.
var ErrUnknownKind = errors.New("unknown destination kind")

// Factory builds a destination from the argument part of a reference.
type Factory func(arg string) (journal.Destination, error)

// Registry maps destination kinds to factories and resolves persisted
// references of the form "kind" or "kind:argument" into live
// destinations.
//
// Resolution is cached per full reference, so the same reference always
// yields the same instance. The router identifies registrations by
// destination identity, which makes stable resolution necessary for
// reload round-trips.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	resolved  map[string]journal.Destination
}

// NewRegistry creates a registry with the built-in kinds:
//
//	recorder[:name]   in-memory Recorder, one instance per name
//	file:<path>       line-oriented file sink
//	webhook:<url>     JSON POST sink
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		resolved:  make(map[string]journal.Destination),
	}
	r.Register("recorder", func(string) (journal.Destination, error) {
		return NewRecorder(), nil
	})
	r.Register("file", func(path string) (journal.Destination, error) {
		if path == "" {
			return nil, errors.New("file sink needs a path")
		}
		return NewFile(path)
	})
	r.Register("webhook", func(url string) (journal.Destination, error) {
		if url == "" {
			return nil, errors.New("webhook sink needs a url")
		}
		return NewWebhook(url), nil
	})
	return r
}

// Register adds or replaces the factory for kind.
func (r *Registry) Register(kind string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = factory
}

// Kinds returns the registered kinds. The order is not guaranteed.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	return kinds
}

// Resolve turns a persisted reference into a live destination, building
// it on first use and returning the cached instance afterwards.
// The signature matches journal.DestinationResolver.
func (r *Registry) Resolve(ref string) (journal.Destination, error) {
	// Fast path: already resolved.
	r.mu.RLock()
	d, ok := r.resolved[ref]
	r.mu.RUnlock()
	if ok {
		return d, nil
	}

	kind, arg, _ := strings.Cut(ref, ":")

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring the write lock.
	if d, ok := r.resolved[ref]; ok {
		return d, nil
	}

	factory, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	d, err := factory(arg)
	if err != nil {
		return nil, fmt.Errorf("build %s destination: %w", kind, err)
	}
	r.resolved[ref] = d
	return d, nil
}
