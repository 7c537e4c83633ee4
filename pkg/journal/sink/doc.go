// Package sink provides ready-made destinations for journal listeners:
// an in-memory recorder, a line-oriented file writer, and an HTTP
// webhook poster.
//
// # Destinations
//
// Every sink satisfies journal.Destination with a single Send method:
//
//	rec := sink.NewRecorder()
//	l, err := journal.NewListener("/journal", true, rec)
//
// # Resolving Persisted References
//
// Registry turns the destination references a store persists back into
// live destinations. References are keyed "kind" or "kind:argument":
//
//	sinks := sink.NewRegistry()
//	n, err := router.Load(ctx, st, "guild-1", sinks.Resolve)
//
// Resolution is cached per reference: loading the same reference twice
// reuses the destination instance, so a reload updates existing
// registrations instead of duplicating them.
//
// # Custom Kinds
//
// Register adds project-specific kinds alongside the built-ins:
//
//	sinks.Register("channel", func(id string) (journal.Destination, error) {
//	    return bot.ChannelSink(id)
//	})
package sink
