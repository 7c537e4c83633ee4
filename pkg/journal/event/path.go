package event

import "strings"

// RootPath is the top of the path hierarchy. Listeners may subscribe to it
// (a recursive root listener sees every event) but events are never
// published directly on it.
const RootPath = "/"

// ValidatePath checks a hierarchical path and returns a *PathError when it
// is malformed. Paths are never normalized: a path that would only be valid
// after cleanup is rejected as-is.
//
// Rules: a path starts with "/", contains no empty segments ("//"), has no
// trailing "/" (the bare root "/" excepted), and no segment is blank
// whitespace.
func ValidatePath(path string) error {
	if path == "" {
		return &PathError{Path: path, Reason: "path is empty"}
	}
	if !strings.HasPrefix(path, "/") {
		return &PathError{Path: path, Reason: "path must start with /"}
	}
	if path == RootPath {
		return nil
	}
	if strings.HasSuffix(path, "/") {
		return &PathError{Path: path, Reason: "path has a trailing /"}
	}
	for _, seg := range strings.Split(path[1:], "/") {
		if seg == "" {
			return &PathError{Path: path, Reason: "path has an empty segment"}
		}
		if strings.TrimSpace(seg) == "" {
			return &PathError{Path: path, Reason: "path has a blank segment"}
		}
	}
	return nil
}

// SplitPath returns the segments of a path. The root path has no segments.
func SplitPath(path string) []string {
	if path == RootPath || path == "" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}

// Descends reports whether path is a strict descendant of ancestor under
// segment-boundary semantics: "/journal/channel" descends from "/journal"
// but "/journalx" does not. A path never descends from itself. Every
// non-root path descends from the root.
func Descends(path, ancestor string) bool {
	if path == ancestor {
		return false
	}
	prefix := ancestor
	if prefix != RootPath {
		prefix += "/"
	}
	return strings.HasPrefix(path, prefix)
}
