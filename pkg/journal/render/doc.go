/*
Package render turns events into text lines from ${field} patterns.

# Overview

render expands ${field} placeholders in a pattern using an event's
fields, producing the line a destination receives. It backs custom
listener formatters and destination-specific line layouts.

# Basic Usage

Render a single event with the package-level function:

	line := render.Render("${icon} ${content}", e)
	// line: "📥 channel created"

Bind a pattern into a formatter for a listener:

	l, err := journal.NewListener("/journal", true, dest,
	    journal.WithFormatter(render.Formatter("[${time}] ${path}: ${content}")))

# Fields

The following placeholders resolve against the event:

  - ${id} - unique event identifier
  - ${path} - hierarchical path
  - ${scope} - tenant scope ("" for global events)
  - ${content} - text payload
  - ${icon} - symbolic icon tag ("" when unset)
  - ${time} - timestamp, formatted with the renderer's layout
  - ${attr.<key>} - one structured attribute

Fields that exist but are empty (an unset icon, a global scope) expand
to the empty string. Only ${attr.<key>} placeholders can be genuinely
missing.

# Missing Fields

By default, unresolved placeholders are kept as-is:

	line := render.Render("${attr.channel_id}", e)
	// line: "${attr.channel_id}" when the event has no channel_id

Configure the behavior with options:

	r := render.NewRenderer(render.WithMissingAction(render.MissingEmpty))
	line, _ := r.Render("${attr.channel_id}", e)
	// line: ""

	r = render.NewRenderer(render.WithMissingAction(render.MissingError))
	_, err := r.Render("${attr.channel_id}", e)
	// err: "undefined field: attr.channel_id"

# Thread Safety

Renderer is safe for concurrent use after construction. Package-level
functions use a shared default renderer.
*/
package render
