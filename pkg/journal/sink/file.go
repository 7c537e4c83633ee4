package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// File is a destination that appends one line per delivery to a file or
// an arbitrary writer. Writes are serialized, so concurrent deliveries
// never interleave.
type File struct {
	mu sync.Mutex
	w  io.Writer
	f  *os.File // owned handle when opened by NewFile, nil for NewWriter
}

// NewFile opens (or creates) path in append mode. Close releases the
// handle.
func NewFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open sink file: %w", err)
	}
	return &File{w: f, f: f}, nil
}

// NewWriter wraps an existing writer. The caller keeps ownership of w;
// Close is a no-op.
func NewWriter(w io.Writer) *File {
	return &File{w: w}
}

// Send appends content plus a trailing newline.
func (s *File) Send(ctx context.Context, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintln(s.w, content); err != nil {
		return fmt.Errorf("write sink file: %w", err)
	}
	return nil
}

// Close releases the file handle when the destination owns one.
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}
