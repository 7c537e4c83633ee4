package event

import "fmt"

// PathError reports a malformed hierarchical path. Paths are rejected
// eagerly at construction and registration time, never silently repaired.
type PathError struct {
	// Path is the offending path, verbatim.
	Path string
	// Reason describes which rule the path broke.
	Reason string
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
}
