package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/journal/pkg/journal/config"
)

func TestNew_NilMap(t *testing.T) {
	cfg := config.New(nil)
	assert.Equal(t, "fallback", cfg.String("missing", "fallback"))
	assert.False(t, cfg.Has("missing"))
}

func TestAccessors(t *testing.T) {
	cfg := config.New(map[string]any{
		"name":     "journal",
		"size":     256,
		"ratio":    0.5,
		"enabled":  true,
		"timeout":  "5s",
		"seconds":  30,
		"scopes":   []any{"guild-1", "guild-2"},
		"whatever": struct{}{},
	})

	assert.Equal(t, "journal", cfg.String("name", ""))
	assert.Equal(t, "", cfg.String("size", ""))

	assert.Equal(t, 256, cfg.Int("size", 0))
	assert.Equal(t, 7, cfg.Int("missing", 7))

	assert.Equal(t, 0.5, cfg.Float("ratio", 0))
	assert.Equal(t, 256.0, cfg.Float("size", 0))

	assert.True(t, cfg.Bool("enabled", false))
	assert.False(t, cfg.Bool("missing", false))

	assert.Equal(t, 5*time.Second, cfg.Duration("timeout", 0))
	assert.Equal(t, 30*time.Second, cfg.Duration("seconds", 0))
	assert.Equal(t, time.Minute, cfg.Duration("missing", time.Minute))

	assert.Equal(t, []string{"guild-1", "guild-2"}, cfg.StringSlice("scopes", nil))
	assert.Nil(t, cfg.StringSlice("missing", nil))

	assert.True(t, cfg.Has("whatever"))
	assert.NotNil(t, cfg.Any("whatever", nil))
	assert.Equal(t, "d", cfg.Any("missing", "d"))
}

func TestSection(t *testing.T) {
	cfg := config.New(map[string]any{
		"router": map[string]any{
			"queue_size": 512,
			"delivery":   "concurrent",
		},
	})

	router := cfg.Section("router")
	assert.Equal(t, 512, router.Int("queue_size", 0))
	assert.Equal(t, "concurrent", router.String("delivery", "sequential"))

	// Missing sections behave like empty ones.
	missing := cfg.Section("history")
	assert.Equal(t, 1024, missing.Int("capacity", 1024))
}

func TestSections(t *testing.T) {
	cfg := config.New(map[string]any{
		"listeners": []any{
			map[string]any{"path": "/journal", "recursive": true},
			map[string]any{"path": "/journal/channel", "recursive": false},
		},
	})

	listeners := cfg.Sections("listeners")
	require.Len(t, listeners, 2)
	assert.Equal(t, "/journal", listeners[0].String("path", ""))
	assert.True(t, listeners[0].Bool("recursive", false))
	assert.False(t, listeners[1].Bool("recursive", true))

	assert.Empty(t, cfg.Sections("missing"))
}

func TestFromYAML(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
router:
  queue_size: 128
  drain_timeout: 2s
history:
  capacity: 500
listeners:
  - path: /journal
    recursive: true
    destination: "recorder:audit"
`))
	require.NoError(t, err)

	assert.Equal(t, 128, cfg.Section("router").Int("queue_size", 0))
	assert.Equal(t, 2*time.Second, cfg.Section("router").Duration("drain_timeout", 0))
	assert.Equal(t, 500, cfg.Section("history").Int("capacity", 0))

	listeners := cfg.Sections("listeners")
	require.Len(t, listeners, 1)
	assert.Equal(t, "recorder:audit", listeners[0].String("destination", ""))
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := config.FromYAML([]byte("::: not yaml"))
	assert.Error(t, err)
}

func TestFromJSON(t *testing.T) {
	cfg, err := config.FromJSON([]byte(`{"router": {"queue_size": 64}}`))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Section("router").Int("queue_size", 0))
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "journal.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("router:\n  queue_size: 32\n"), 0o644))

	cfg, err := config.FromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Section("router").Int("queue_size", 0))

	t.Run("unsupported extension", func(t *testing.T) {
		badPath := filepath.Join(dir, "journal.toml")
		require.NoError(t, os.WriteFile(badPath, []byte(""), 0o644))
		_, err := config.FromFile(badPath)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.FromFile(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}
