package sink

import (
	"context"
	"sync"
)

// Recorder is an in-memory destination that records every delivered
// line. It is intended for tests and local inspection.
//
// The zero value is ready to use.
type Recorder struct {
	mu       sync.Mutex
	contents []string
	failWith error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Send records the content. When a failure has been forced with
// FailWith, it returns that error and records nothing.
func (r *Recorder) Send(ctx context.Context, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.contents = append(r.contents, content)
	return nil
}

// Contents returns a copy of everything recorded so far, oldest first.
func (r *Recorder) Contents() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.contents))
	copy(out, r.contents)
	return out
}

// Len returns the number of recorded deliveries.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.contents)
}

// Last returns the most recent delivery, or false when nothing has been
// recorded yet.
func (r *Recorder) Last() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.contents) == 0 {
		return "", false
	}
	return r.contents[len(r.contents)-1], true
}

// FailWith forces subsequent sends to fail with err. Passing nil
// restores normal recording.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWith = err
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contents = nil
}
