// Package search provides a fixed, safe predicate model for filtering
// history queries. Predicates are composed from a closed set of checks over
// an event's path, scope, content, and attributes; there is deliberately no
// way to evaluate arbitrary caller-supplied expressions.
package search

import (
	"fmt"
	"strings"

	"github.com/randalmurphal/journal/pkg/journal/event"
	"github.com/randalmurphal/journal/pkg/journal/history"
)

// PathIs matches events published exactly at path.
func PathIs(path string) history.Predicate {
	return func(e *event.Event) bool {
		return e.Path() == path
	}
}

// PathPrefix matches events at prefix or at any descendant path under
// segment-boundary semantics: "/journal" matches "/journal/channel/add"
// but never "/journalx".
func PathPrefix(prefix string) history.Predicate {
	return func(e *event.Event) bool {
		return e.Path() == prefix || event.Descends(e.Path(), prefix)
	}
}

// ScopeIs matches events belonging to one tenant scope.
func ScopeIs(scope string) history.Predicate {
	return func(e *event.Event) bool {
		return e.Scope() == scope
	}
}

// IconIs matches events tagged with the given icon.
func IconIs(icon string) history.Predicate {
	return func(e *event.Event) bool {
		return e.Icon() == icon
	}
}

// ContentContains matches events whose content includes the substring.
func ContentContains(substr string) history.Predicate {
	return func(e *event.Event) bool {
		return strings.Contains(e.Content(), substr)
	}
}

// HasAttr matches events carrying the attribute key, whatever its value.
func HasAttr(key string) history.Predicate {
	return func(e *event.Event) bool {
		_, ok := e.Attribute(key)
		return ok
	}
}

// AttrEquals matches events whose attribute equals the given value.
// Comparison is loose: both sides are rendered with %v first, so the
// stored value 3 matches both 3 and "3".
func AttrEquals(key string, value any) history.Predicate {
	want := fmt.Sprintf("%v", value)
	return func(e *event.Event) bool {
		v, ok := e.Attribute(key)
		return ok && fmt.Sprintf("%v", v) == want
	}
}

// AttrContains matches events whose attribute, rendered with %v, includes
// the substring.
func AttrContains(key, substr string) history.Predicate {
	return func(e *event.Event) bool {
		v, ok := e.Attribute(key)
		return ok && strings.Contains(fmt.Sprintf("%v", v), substr)
	}
}

// All combines predicates conjunctively. With no arguments it matches
// everything.
func All(preds ...history.Predicate) history.Predicate {
	return func(e *event.Event) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

// Any combines predicates disjunctively. With no arguments it matches
// nothing.
func Any(preds ...history.Predicate) history.Predicate {
	return func(e *event.Event) bool {
		for _, p := range preds {
			if p(e) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate.
func Not(p history.Predicate) history.Predicate {
	return func(e *event.Event) bool {
		return !p(e)
	}
}
