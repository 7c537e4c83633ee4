package history

import "github.com/randalmurphal/journal/pkg/journal/event"

// DefaultSearchLimit caps query results when no explicit limit is given.
const DefaultSearchLimit = 20

// Predicate decides whether an event belongs in a query result.
// Predicates must be pure: no mutation, no I/O.
type Predicate func(*event.Event) bool

// Query describes a read-only history search. The zero value returns the
// most recent DefaultSearchLimit events across all scopes.
type Query struct {
	// Scope restricts results to one tenant scope. "" matches every scope.
	Scope string

	// Limit caps the result count. 0 applies DefaultSearchLimit; a negative
	// limit disables the cap.
	Limit int

	// Where filters events after the scope check. nil accepts everything.
	Where Predicate
}

// Search walks the history most-recent-first and returns events matching
// the query. The result is a snapshot; entries are immutable.
func (h *History) Search(q Query) []*event.Event {
	limit := q.Limit
	if limit == 0 {
		limit = DefaultSearchLimit
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []*event.Event
	h.eachNewestFirst(func(e *event.Event) bool {
		if q.Scope != "" && e.Scope() != q.Scope {
			return true
		}
		if q.Where != nil && !q.Where(e) {
			return true
		}
		out = append(out, e)
		return limit < 0 || len(out) < limit
	})
	return out
}
