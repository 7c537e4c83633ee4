package journal

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// Test destinations used across tests.

// recorder captures delivered content in order.
type recorder struct {
	mu       sync.Mutex
	contents []string
}

func newRecorder() *recorder { return &recorder{} }

func (r *recorder) Send(ctx context.Context, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contents = append(r.contents, content)
	return nil
}

// Contents returns a copy of everything delivered so far.
func (r *recorder) Contents() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.contents))
	copy(out, r.contents)
	return out
}

// Count returns how many deliveries have landed.
func (r *recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.contents)
}

// failingDest rejects every delivery with err.
type failingDest struct {
	err   error
	calls atomic.Int32
}

func (d *failingDest) Send(ctx context.Context, content string) error {
	d.calls.Add(1)
	return d.err
}

// panicDest panics on every delivery.
type panicDest struct {
	value any
}

func (d *panicDest) Send(ctx context.Context, content string) error {
	panic(d.value)
}

// slowDest sleeps before recording, to exercise drain behavior.
type slowDest struct {
	recorder
	delay time.Duration
}

func (d *slowDest) Send(ctx context.Context, content string) error {
	time.Sleep(d.delay)
	return d.recorder.Send(ctx, content)
}

// sharedGauge tracks the peak number of in-flight deliveries across the
// gaugeDest instances pointing at it.
type sharedGauge struct {
	current atomic.Int32
	peak    atomic.Int32
}

// gaugeDest reports delivery overlap to a shared gauge.
type gaugeDest struct {
	g     *sharedGauge
	delay time.Duration
}

func (d *gaugeDest) Send(ctx context.Context, content string) error {
	cur := d.g.current.Add(1)
	for {
		peak := d.g.peak.Load()
		if cur <= peak || d.g.peak.CompareAndSwap(peak, cur) {
			break
		}
	}
	time.Sleep(d.delay)
	d.g.current.Add(-1)
	return nil
}

// mustListener builds a listener or fails the test.
func mustListener(t *testing.T, path string, recursive bool, dest Destination, opts ...ListenerOption) *Listener {
	t.Helper()
	l, err := NewListener(path, recursive, dest, opts...)
	if err != nil {
		t.Fatalf("NewListener(%q): %v", path, err)
	}
	return l
}

// startedRouter creates and starts a router, stopping it on test cleanup.
func startedRouter(t *testing.T, opts ...Option) *Router {
	t.Helper()
	r := New(opts...)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		r.Stop(ctx)
	})
	return r
}

// send publishes through a broadcaster rooted at the event path itself,
// failing the test on any eager error.
func send(t *testing.T, r *Router, path, scope, content string) {
	t.Helper()
	b, err := r.Broadcaster(path)
	if err != nil {
		t.Fatalf("Broadcaster(%q): %v", path, err)
	}
	if err := b.Send(path, scope, content); err != nil {
		t.Fatalf("Send(%q): %v", path, err)
	}
}
