package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/journal/pkg/journal/config"
	"github.com/randalmurphal/journal/pkg/journal/store"
)

func TestRecordsFromConfig(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
listeners:
  - path: /journal
    destination: "webhook:https://hooks.example.com/T1"
    recursive: true
    scope: guild-1
  - path: /system/audit
    destination: "file:/var/log/audit.log"
`))
	require.NoError(t, err)

	recs, err := store.RecordsFromConfig(cfg)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, store.Record{
		Scope:       "guild-1",
		Path:        "/journal",
		Destination: "webhook:https://hooks.example.com/T1",
		Recursive:   true,
	}, recs[0])

	assert.Equal(t, "", recs[1].Scope)
	assert.False(t, recs[1].Recursive)
}

func TestRecordsFromConfig_MissingFields(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
listeners:
  - destination: "recorder:x"
`))
	require.NoError(t, err)
	_, err = store.RecordsFromConfig(cfg)
	assert.ErrorContains(t, err, "path is required")

	cfg, err = config.FromYAML([]byte(`
listeners:
  - path: /journal
`))
	require.NoError(t, err)
	_, err = store.RecordsFromConfig(cfg)
	assert.ErrorContains(t, err, "destination is required")
}

func TestRecordsFromConfig_NoSection(t *testing.T) {
	recs, err := store.RecordsFromConfig(config.New(nil))
	require.NoError(t, err)
	assert.Empty(t, recs)
}
