package sink_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/journal/pkg/journal"
	"github.com/randalmurphal/journal/pkg/journal/sink"
	"github.com/randalmurphal/journal/pkg/journal/store"
)

func TestRegistryResolveRecorder(t *testing.T) {
	reg := sink.NewRegistry()

	d, err := reg.Resolve("recorder:moderation")
	require.NoError(t, err)
	require.IsType(t, &sink.Recorder{}, d)

	// Same reference, same instance.
	again, err := reg.Resolve("recorder:moderation")
	require.NoError(t, err)
	assert.Same(t, d, again)

	// Different name, different instance.
	other, err := reg.Resolve("recorder:filter")
	require.NoError(t, err)
	assert.NotSame(t, d, other)
}

func TestRegistryResolveFile(t *testing.T) {
	reg := sink.NewRegistry()
	path := filepath.Join(t.TempDir(), "journal.log")

	d, err := reg.Resolve("file:" + path)
	require.NoError(t, err)
	require.IsType(t, &sink.File{}, d)
	require.NoError(t, d.Send(context.Background(), "line"))
}

func TestRegistryResolveWebhook(t *testing.T) {
	reg := sink.NewRegistry()

	d, err := reg.Resolve("webhook:https://hooks.example.com/journal")
	require.NoError(t, err)

	wh, ok := d.(*sink.Webhook)
	require.True(t, ok)
	assert.Equal(t, "https://hooks.example.com/journal", wh.URL())
}

func TestRegistryUnknownKind(t *testing.T) {
	reg := sink.NewRegistry()

	_, err := reg.Resolve("carrier-pigeon:coop-7")
	assert.ErrorIs(t, err, sink.ErrUnknownKind)
}

func TestRegistryFactoryError(t *testing.T) {
	reg := sink.NewRegistry()

	for _, ref := range []string{"file", "file:", "webhook", "webhook:"} {
		_, err := reg.Resolve(ref)
		assert.Error(t, err, "ref %q", ref)
	}
}

func TestRegistryCustomKind(t *testing.T) {
	reg := sink.NewRegistry()
	reg.Register("null", func(string) (journal.Destination, error) {
		return sink.NewRecorder(), nil
	})

	d, err := reg.Resolve("null")
	require.NoError(t, err)
	assert.NotNil(t, d)
	assert.Contains(t, reg.Kinds(), "null")
}

func TestRegistryKinds(t *testing.T) {
	reg := sink.NewRegistry()
	assert.ElementsMatch(t, []string{"recorder", "file", "webhook"}, reg.Kinds())
}

func TestRegistryFactoryErrorNotCached(t *testing.T) {
	reg := sink.NewRegistry()
	attempts := 0
	reg.Register("flaky", func(string) (journal.Destination, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("transient")
		}
		return sink.NewRecorder(), nil
	})

	_, err := reg.Resolve("flaky")
	require.Error(t, err)

	d, err := reg.Resolve("flaky")
	require.NoError(t, err)
	assert.NotNil(t, d)
}

func TestRegistryLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	defer st.Close()

	require.NoError(t, st.Put(ctx, store.Record{
		Scope:       "guild-1",
		Path:        "/journal",
		Destination: "recorder:audit",
		Recursive:   true,
	}))
	require.NoError(t, st.Put(ctx, store.Record{
		Scope:       "guild-1",
		Path:        "/journal/member/join",
		Destination: "file:" + filepath.Join(t.TempDir(), "joins.log"),
	}))

	reg := sink.NewRegistry()
	r := journal.New()

	n, err := r.Load(ctx, st, "guild-1", reg.Resolve)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// A second load resolves the same destinations, so existing
	// registrations are updated rather than duplicated.
	n, err = r.Load(ctx, st, "guild-1", reg.Resolve)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, r.Listeners("/journal"), 1)
	assert.Len(t, r.Listeners("/journal/member/join"), 1)
}
