package render

// MissingAction specifies how unresolved placeholders are handled.
type MissingAction int

const (
	// MissingKeep keeps the placeholder as-is when the field is not found.
	// This is the default behavior.
	MissingKeep MissingAction = iota

	// MissingEmpty replaces the placeholder with an empty string when
	// the field is not found.
	MissingEmpty

	// MissingError returns an error when a field is not found.
	MissingError
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithMissingAction sets how unresolved placeholders are handled.
//
// Default: MissingKeep (keep placeholder as-is)
func WithMissingAction(action MissingAction) Option {
	return func(r *Renderer) {
		r.missingAction = action
	}
}

// WithTimeLayout sets the layout for ${time} expansion.
//
// Default: time.RFC3339
func WithTimeLayout(layout string) Option {
	return func(r *Renderer) {
		if layout != "" {
			r.timeLayout = layout
		}
	}
}
