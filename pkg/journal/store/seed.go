package store

import (
	"fmt"

	"github.com/randalmurphal/journal/pkg/journal/config"
)

// RecordsFromConfig parses the "listeners" section of a configuration into
// records, one per entry:
//
//	listeners:
//	  - path: /journal
//	    destination: "webhook:https://hooks.example.com/T1"
//	    recursive: true
//	    scope: guild-1
//
// Entries missing a path or destination are rejected; recursive defaults to
// false and scope to the global scope.
func RecordsFromConfig(cfg config.Config) ([]Record, error) {
	sections := cfg.Sections("listeners")
	recs := make([]Record, 0, len(sections))

	for i, sec := range sections {
		rec := Record{
			Scope:       sec.String("scope", ""),
			Path:        sec.String("path", ""),
			Destination: sec.String("destination", ""),
			Recursive:   sec.Bool("recursive", false),
		}
		if rec.Path == "" {
			return nil, fmt.Errorf("listener %d: path is required", i)
		}
		if rec.Destination == "" {
			return nil, fmt.Errorf("listener %d: destination is required", i)
		}
		recs = append(recs, rec)
	}

	return recs, nil
}
