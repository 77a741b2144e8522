package memqueue

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/inferd-2025.net/internal/domain"
)

func TestQueuePair_RequestFIFO(t *testing.T) {
	q := NewQueuePair(8)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := q.PushRequest(ctx, &domain.Request{ID: strconv.Itoa(i), Sentence: "s"})
		require.NoError(t, err)
	}

	for i := 0; i < 5; i++ {
		req, ok, err := q.PopRequest(ctx, 50*time.Millisecond)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, strconv.Itoa(i), req.ID)
	}
}

func TestQueuePair_PopTimesOutEmpty(t *testing.T) {
	q := NewQueuePair(8)

	start := time.Now()
	req, ok, err := q.PopRequest(context.Background(), 30*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, req)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestQueuePair_ResponseRoundTrip(t *testing.T) {
	q := NewQueuePair(8)
	ctx := context.Background()

	want := &domain.Response{
		RequestID: "req-1",
		Result:    &domain.Prediction{Class: domain.ClassProduct, Confidence: 0.9},
		WorkerID:  3,
	}
	require.NoError(t, q.PushResponse(ctx, want))

	got, ok, err := q.PopResponse(ctx, 50*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.RequestID, got.RequestID)
	assert.Equal(t, domain.ClassProduct, got.Result.Class)
	assert.Equal(t, 3, got.WorkerID)
}

func TestQueuePair_ClosedRejectsPush(t *testing.T) {
	q := NewQueuePair(8)
	ctx := context.Background()

	require.NoError(t, q.PushRequest(ctx, &domain.Request{ID: "a"}))
	q.Close()

	err := q.PushRequest(ctx, &domain.Request{ID: "b"})
	assert.ErrorIs(t, err, domain.ErrQueueClosed)

	// Buffered items stay poppable after close.
	req, ok, err := q.PopRequest(ctx, 50*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", req.ID)
}

func TestQueuePair_PopHonorsContext(t *testing.T) {
	q := NewQueuePair(8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok, err := q.PopRequest(ctx, time.Second)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}
