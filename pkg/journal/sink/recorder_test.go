package sink_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/journal/pkg/journal/sink"
)

func TestRecorderRecords(t *testing.T) {
	rec := sink.NewRecorder()
	ctx := context.Background()

	_, ok := rec.Last()
	assert.False(t, ok)

	require.NoError(t, rec.Send(ctx, "first"))
	require.NoError(t, rec.Send(ctx, "second"))

	assert.Equal(t, []string{"first", "second"}, rec.Contents())
	assert.Equal(t, 2, rec.Len())

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "second", last)
}

func TestRecorderContentsIsCopy(t *testing.T) {
	rec := sink.NewRecorder()
	require.NoError(t, rec.Send(context.Background(), "original"))

	contents := rec.Contents()
	contents[0] = "mutated"

	assert.Equal(t, []string{"original"}, rec.Contents())
}

func TestRecorderFailWith(t *testing.T) {
	rec := sink.NewRecorder()
	ctx := context.Background()
	boom := errors.New("boom")

	rec.FailWith(boom)
	assert.ErrorIs(t, rec.Send(ctx, "dropped"), boom)
	assert.Equal(t, 0, rec.Len())

	rec.FailWith(nil)
	require.NoError(t, rec.Send(ctx, "kept"))
	assert.Equal(t, []string{"kept"}, rec.Contents())
}

func TestRecorderReset(t *testing.T) {
	rec := sink.NewRecorder()
	require.NoError(t, rec.Send(context.Background(), "gone"))

	rec.Reset()
	assert.Equal(t, 0, rec.Len())
	assert.Empty(t, rec.Contents())
}

func TestRecorderConcurrentSends(t *testing.T) {
	rec := sink.NewRecorder()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = rec.Send(ctx, "msg")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, rec.Len())
}
