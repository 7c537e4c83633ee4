package render

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/randalmurphal/journal/pkg/journal/event"
)

// fieldPattern matches ${name} where name is a field or dotted
// attribute key like attr.channel_id.
var fieldPattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*(?:\.[a-zA-Z0-9_]+)*)\}`)

// Renderer expands ${field} patterns against events.
//
// Create with NewRenderer and configure with Option functions.
// Renderer is safe for concurrent use after construction.
type Renderer struct {
	missingAction MissingAction
	timeLayout    string
}

// NewRenderer creates a renderer with the given options.
//
// Default configuration:
//   - MissingAction: MissingKeep (keep placeholders as-is)
//   - TimeLayout: time.RFC3339
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		missingAction: MissingKeep,
		timeLayout:    time.RFC3339,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render expands the pattern's placeholders from e.
//
// Errors are only returned when MissingAction is MissingError and a
// placeholder cannot be resolved; the partially expanded line is
// returned alongside the error.
func (r *Renderer) Render(pattern string, e *event.Event) (string, error) {
	if pattern == "" {
		return "", nil
	}

	vars := r.eventVars(e)
	var missing []string

	result := fieldPattern.ReplaceAllStringFunc(pattern, func(match string) string {
		// Extract the field name from ${name}.
		name := match[2 : len(match)-1]
		if val, ok := vars[name]; ok {
			return fmt.Sprintf("%v", val)
		}
		switch r.missingAction {
		case MissingEmpty:
			return ""
		case MissingError:
			missing = append(missing, name)
			return match
		default: // MissingKeep
			return match
		}
	})

	if len(missing) > 0 {
		return result, &UndefinedFieldError{Names: missing}
	}
	return result, nil
}

// Formatter binds a pattern into a per-event formatting function,
// suitable for journal.WithFormatter.
//
// Rendering errors are swallowed and the partially expanded line is
// used as-is, so prefer MissingKeep or MissingEmpty for formatter
// patterns.
func (r *Renderer) Formatter(pattern string) func(*event.Event) string {
	return func(e *event.Event) string {
		line, _ := r.Render(pattern, e)
		return line
	}
}

// eventVars flattens an event into the placeholder namespace.
func (r *Renderer) eventVars(e *event.Event) map[string]any {
	vars := map[string]any{
		"id":      e.ID(),
		"path":    e.Path(),
		"scope":   e.Scope(),
		"content": e.Content(),
		"icon":    e.Icon(),
		"time":    e.Timestamp().Format(r.timeLayout),
	}
	for k, v := range e.Attributes() {
		vars["attr."+k] = v
	}
	return vars
}

// UndefinedFieldError is returned when MissingError is set and one or
// more placeholders cannot be resolved.
type UndefinedFieldError struct {
	// Names is the list of unresolved placeholder names.
	Names []string
}

// Error implements the error interface.
func (e *UndefinedFieldError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("undefined field: %s", e.Names[0])
	}
	return fmt.Sprintf("undefined fields: %s", strings.Join(e.Names, ", "))
}

// defaultRenderer is the package-level renderer with default settings.
var defaultRenderer = NewRenderer()

// Render expands the pattern for e using the default renderer.
//
// Uses MissingKeep behavior (unresolved placeholders stay as-is).
func Render(pattern string, e *event.Event) string {
	line, _ := defaultRenderer.Render(pattern, e)
	return line
}

// Formatter binds a pattern using the default renderer.
func Formatter(pattern string) func(*event.Event) string {
	return defaultRenderer.Formatter(pattern)
}
