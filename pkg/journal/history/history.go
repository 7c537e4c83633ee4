// Package history keeps an in-memory, append-only buffer of dispatched
// events for best-effort replay and administrative search.
//
// Iteration is always most-recent-first. A bounded history evicts the oldest
// entries first; an unbounded one grows until the process exits. Nothing in
// this package survives a restart.
package history

import (
	"sync"

	"github.com/randalmurphal/journal/pkg/journal/event"
)

// History is a concurrency-safe event buffer ordered by insertion.
type History struct {
	mu       sync.RWMutex
	capacity int // 0 = unbounded
	buf      []*event.Event
	next     int // ring write cursor, meaningful once the bounded buffer is full
	full     bool
}

// New creates a history. A capacity of 0 (or less) means unbounded; a
// positive capacity bounds the buffer with FIFO eviction by insertion age.
func New(capacity int) *History {
	if capacity < 0 {
		capacity = 0
	}
	h := &History{capacity: capacity}
	if capacity > 0 {
		h.buf = make([]*event.Event, 0, capacity)
	}
	return h
}

// Append records an event. O(1) amortized; when the history is bounded and
// full, the oldest entry is evicted.
func (h *History) Append(e *event.Event) {
	if e == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.capacity == 0 || len(h.buf) < h.capacity {
		h.buf = append(h.buf, e)
		if h.capacity > 0 && len(h.buf) == h.capacity {
			h.full = true
		}
		return
	}

	h.buf[h.next] = e
	h.next = (h.next + 1) % h.capacity
}

// Len returns the number of retained events.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.buf)
}

// Capacity returns the configured bound, 0 for unbounded.
func (h *History) Capacity() int {
	return h.capacity
}

// Events returns a snapshot of all retained events, most recent first.
func (h *History) Events() []*event.Event {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*event.Event, 0, len(h.buf))
	h.eachNewestFirst(func(e *event.Event) bool {
		out = append(out, e)
		return true
	})
	return out
}

// eachNewestFirst walks retained events newest to oldest while fn returns
// true. Callers must hold at least a read lock.
func (h *History) eachNewestFirst(fn func(*event.Event) bool) {
	if h.full {
		// Newest is just behind the write cursor; walk backwards, wrapping.
		for i := 0; i < h.capacity; i++ {
			idx := (h.next - 1 - i + h.capacity) % h.capacity
			if !fn(h.buf[idx]) {
				return
			}
		}
		return
	}
	for i := len(h.buf) - 1; i >= 0; i-- {
		if !fn(h.buf[i]) {
			return
		}
	}
}
