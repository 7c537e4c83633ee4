package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics_ImplementsInterface(t *testing.T) {
	var _ MetricsRecorder = NoopMetrics{}
}

func TestNoopMetrics_DoesNotPanic(t *testing.T) {
	m := NoopMetrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordPublish(ctx, "/journal", 5)
		m.RecordDrop(ctx, "/journal", "queue full")
		m.RecordDispatch(ctx, "/journal", 3, 100*time.Millisecond)
		m.RecordDelivery(ctx, "/journal", 10*time.Millisecond, nil)
		m.RecordDelivery(ctx, "/journal", 10*time.Millisecond, errors.New("test"))
	})

	t.Run("nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordPublish(nil, "", 0)
			m.RecordDrop(nil, "", "")
		})
	})
}

func TestNoopSpanManager_DoesNotPanic(t *testing.T) {
	m := NoopSpanManager{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		ctx, span := m.StartDispatchSpan(ctx, "ev-1", "/journal")
		_, deliver := m.StartDeliverySpan(ctx, "/journal")
		m.AddSpanEvent(ctx, "matched", attribute.Int("listeners", 1))
		m.EndSpanWithError(deliver, errors.New("x"))
		m.EndSpanWithError(span, nil)
	})
}

func TestNoopSpanManager_ReturnsContextUnchanged(t *testing.T) {
	m := NoopSpanManager{}
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "value")

	out, _ := m.StartDispatchSpan(ctx, "ev-1", "/journal")
	assert.Equal(t, "value", out.Value(key{}))

	out, _ = m.StartDeliverySpan(ctx, "/journal")
	assert.Equal(t, "value", out.Value(key{}))
}
