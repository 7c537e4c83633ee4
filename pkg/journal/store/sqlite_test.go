package store_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/randalmurphal/journal/pkg/journal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_Persistence(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	// First store instance
	st1, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)

	require.NoError(t, st1.Put(ctx, store.Record{
		Scope:       "guild-1",
		Path:        "/journal",
		Destination: "webhook:https://hooks.example.com/T1",
		Recursive:   true,
	}))
	require.NoError(t, st1.Close())

	// Second store instance (reopening the database)
	st2, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer st2.Close()

	// The subscription survives the restart.
	recs, err := st2.ListListeners(ctx, "guild-1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "/journal", recs[0].Path)
	assert.True(t, recs[0].Recursive)
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := store.NewSQLiteStore("/nonexistent/path/journal.db")
	assert.Error(t, err)
}

func TestSQLiteStore_CloseIdempotent(t *testing.T) {
	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	assert.NoError(t, st.Close())
	assert.NoError(t, st.Close())
}

func TestSQLiteStore_ConcurrentPut(t *testing.T) {
	ctx := context.Background()
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer st.Close()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := store.Record{
				Scope:       "guild-1",
				Path:        "/journal",
				Destination: string(rune('a' + i)),
			}
			assert.NoError(t, st.Put(ctx, rec))
		}(i)
	}
	wg.Wait()

	recs, err := st.ListListeners(ctx, "guild-1")
	require.NoError(t, err)
	assert.Len(t, recs, 4)
}
