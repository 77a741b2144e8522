package queueport

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/inferd-2025.net/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func newTestPair(t *testing.T) *QueuePair {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewQueuePair(client, "test:requests", "test:responses", nopLogger{})
}

func TestQueuePair_RequestRoundTrip(t *testing.T) {
	q := newTestPair(t)
	ctx := context.Background()

	want := &domain.Request{ID: "1700000000-1", Sentence: "Hello", IssuedAt: time.Now().UTC()}
	require.NoError(t, q.PushRequest(ctx, want))

	got, ok, err := q.PopRequest(ctx, 100*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, "Hello", got.Sentence)
}

func TestQueuePair_RequestFIFOAcrossClients(t *testing.T) {
	srv := miniredis.RunT(t)

	producer := NewQueuePair(redis.NewClient(&redis.Options{Addr: srv.Addr()}), "q:req", "q:resp", nopLogger{})
	consumer := NewQueuePair(redis.NewClient(&redis.Options{Addr: srv.Addr()}), "q:req", "q:resp", nopLogger{})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, producer.PushRequest(ctx, &domain.Request{ID: strconv.Itoa(i)}))
	}

	// A separate connection observes the same FIFO, which is what makes the
	// queue usable across processes.
	for i := 0; i < 10; i++ {
		req, ok, err := consumer.PopRequest(ctx, 100*time.Millisecond)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, strconv.Itoa(i), req.ID)
	}
}

func TestQueuePair_PopEmptyReturnsNotFound(t *testing.T) {
	q := newTestPair(t)

	req, ok, err := q.PopRequest(context.Background(), 50*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, req)
}

func TestQueuePair_ResponseCarriesError(t *testing.T) {
	q := newTestPair(t)
	ctx := context.Background()

	require.NoError(t, q.PushResponse(ctx, &domain.Response{
		RequestID: "req-9",
		Error:     "model exploded",
		WorkerID:  1,
	}))

	resp, ok, err := q.PopResponse(ctx, 100*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, resp.Failed())
	assert.Equal(t, "model exploded", resp.Error)
	assert.Nil(t, resp.Result)
}
