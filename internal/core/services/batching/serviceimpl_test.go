package batching

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/inferd-2025.net/internal/adapter/memqueue"
	"gitlab.com/inferd-2025.net/internal/config"
	"gitlab.com/inferd-2025.net/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

// recordingPredictor remembers the size and contents of every batch it sees.
type recordingPredictor struct {
	mu      sync.Mutex
	batches [][]string
	fail    error
}

func (p *recordingPredictor) Predict(_ context.Context, sentences []string) ([]domain.Prediction, error) {
	p.mu.Lock()
	batch := make([]string, len(sentences))
	copy(batch, sentences)
	p.batches = append(p.batches, batch)
	p.mu.Unlock()

	if p.fail != nil {
		return nil, p.fail
	}
	out := make([]domain.Prediction, len(sentences))
	for i := range sentences {
		out[i] = domain.Prediction{Class: domain.ClassProduct, Confidence: 0.8}
	}
	return out, nil
}

func (p *recordingPredictor) batchSizes() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	sizes := make([]int, len(p.batches))
	for i, b := range p.batches {
		sizes[i] = len(b)
	}
	return sizes
}

func testConfig() *config.BatchingConfig {
	return &config.BatchingConfig{
		MaxBatchSize:         32,
		FlushAge:             50 * time.Millisecond,
		WorkerPollInterval:   2 * time.Millisecond,
		DispatchPollInterval: 5 * time.Millisecond,
		WaitBudget:           5 * time.Second,
	}
}

func startLoop(t *testing.T, queues *memqueue.QueuePair, pred *recordingPredictor, cfg *config.BatchingConfig) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	svc := NewBatchingService(7, queues, pred, cfg, nopLogger{})
	done := make(chan struct{})
	go func() {
		_ = svc.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return cancel
}

func drainResponses(t *testing.T, queues *memqueue.QueuePair, want int) []*domain.Response {
	t.Helper()
	responses := make([]*domain.Response, 0, want)
	deadline := time.Now().Add(3 * time.Second)
	for len(responses) < want && time.Now().Before(deadline) {
		resp, ok, err := queues.PopResponse(context.Background(), 20*time.Millisecond)
		require.NoError(t, err)
		if ok {
			responses = append(responses, resp)
		}
	}
	require.Len(t, responses, want)
	return responses
}

// 40 requests against a 32-cap batch must flush twice: once on fill and once
// on age for the remaining 8.
func TestRun_FillThenAgeFlush(t *testing.T) {
	queues := memqueue.NewQueuePair(64)
	pred := &recordingPredictor{}
	cfg := testConfig()

	ctx := context.Background()
	ids := make(map[string]struct{}, 40)
	for i := 0; i < 40; i++ {
		id := "req-" + strconv.Itoa(i)
		ids[id] = struct{}{}
		require.NoError(t, queues.PushRequest(ctx, &domain.Request{ID: id, Sentence: "s" + strconv.Itoa(i)}))
	}

	startLoop(t, queues, pred, cfg)

	responses := drainResponses(t, queues, 40)

	// Every request gets exactly one response, ids matching.
	for _, resp := range responses {
		_, known := ids[resp.RequestID]
		assert.True(t, known, "unexpected response id %s", resp.RequestID)
		delete(ids, resp.RequestID)
		assert.Equal(t, 7, resp.WorkerID)
	}
	assert.Empty(t, ids)

	sizes := pred.batchSizes()
	require.Len(t, sizes, 2)
	assert.Equal(t, 32, sizes[0], "first flush must be fill-triggered at the cap")
	assert.Equal(t, 8, sizes[1], "second flush must carry the remainder")
}

// A small batch must not wait for the cap: the age threshold flushes it.
func TestRun_AgeTriggeredFlush(t *testing.T) {
	queues := memqueue.NewQueuePair(64)
	pred := &recordingPredictor{}
	cfg := testConfig()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, queues.PushRequest(ctx, &domain.Request{ID: strconv.Itoa(i)}))
	}

	start := time.Now()
	startLoop(t, queues, pred, cfg)

	responses := drainResponses(t, queues, 3)
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, cfg.FlushAge, "flush must wait out the age threshold")
	assert.Less(t, elapsed, 10*cfg.FlushAge, "flush must not stall far past the threshold")
	for _, resp := range responses {
		assert.False(t, resp.Failed())
	}
	assert.Equal(t, []int{3}, pred.batchSizes())
}

// Within one batch, responses come out in the order the requests went in.
func TestRun_PreservesBatchOrder(t *testing.T) {
	queues := memqueue.NewQueuePair(64)
	pred := &recordingPredictor{}
	cfg := testConfig()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, queues.PushRequest(ctx, &domain.Request{ID: strconv.Itoa(i), Sentence: "s" + strconv.Itoa(i)}))
	}

	startLoop(t, queues, pred, cfg)
	responses := drainResponses(t, queues, 5)

	for i, resp := range responses {
		assert.Equal(t, strconv.Itoa(i), resp.RequestID)
	}
}

// A predictor failure turns into one error response per batch member, none
// dropped, and the loop keeps serving afterwards.
func TestRun_PredictorFailureEmitsErrorPerMember(t *testing.T) {
	queues := memqueue.NewQueuePair(64)
	pred := &recordingPredictor{fail: errors.New("CUDA out of memory")}
	cfg := testConfig()

	ctx := context.Background()
	ids := make(map[string]struct{}, 5)
	for i := 0; i < 5; i++ {
		id := "fail-" + strconv.Itoa(i)
		ids[id] = struct{}{}
		require.NoError(t, queues.PushRequest(ctx, &domain.Request{ID: id}))
	}

	startLoop(t, queues, pred, cfg)
	responses := drainResponses(t, queues, 5)

	for _, resp := range responses {
		assert.True(t, resp.Failed())
		assert.Equal(t, "CUDA out of memory", resp.Error)
		assert.Nil(t, resp.Result)
		delete(ids, resp.RequestID)
	}
	assert.Empty(t, ids, "every failed request must still get its error response")

	// The loop survives the failure: a healthy predictor would now serve new
	// requests; here we just verify more errors flow rather than a wedge.
	require.NoError(t, queues.PushRequest(ctx, &domain.Request{ID: "after"}))
	after := drainResponses(t, queues, 1)
	assert.Equal(t, "after", after[0].RequestID)
}

// A predictor that breaks the one-result-per-input contract is treated as a
// whole-batch failure.
func TestRun_PredictionCountMismatch(t *testing.T) {
	queues := memqueue.NewQueuePair(64)
	pred := &shortPredictor{}
	cfg := testConfig()

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		require.NoError(t, queues.PushRequest(ctx, &domain.Request{ID: strconv.Itoa(i)}))
	}

	ctxLoop, cancel := context.WithCancel(context.Background())
	svc := NewBatchingService(0, queues, pred, cfg, nopLogger{})
	go func() { _ = svc.Run(ctxLoop) }()
	defer cancel()

	responses := drainResponses(t, queues, 4)
	for _, resp := range responses {
		assert.True(t, resp.Failed())
	}
}

// shortPredictor always returns one result fewer than asked.
type shortPredictor struct{}

func (shortPredictor) Predict(_ context.Context, sentences []string) ([]domain.Prediction, error) {
	if len(sentences) == 0 {
		return nil, nil
	}
	return make([]domain.Prediction, len(sentences)-1), nil
}
