package memqueue

import (
	"context"
	"sync/atomic"
	"time"

	"gitlab.com/inferd-2025.net/internal/core/ports/secondary"
	"gitlab.com/inferd-2025.net/internal/domain"
)

var _ secondary.QueuePair = &QueuePair{}

const defaultCapacity = 1024

// QueuePair implements the shared queues on buffered channels for
// single-process deployments and tests. A blocking pop with timeout is a
// select against the channel, so waiters park instead of spinning.
type QueuePair struct {
	requests  chan *domain.Request
	responses chan *domain.Response
	closed    int32
}

// NewQueuePair creates an in-memory queue pair. capacity <= 0 uses a default.
func NewQueuePair(capacity int) *QueuePair {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &QueuePair{
		requests:  make(chan *domain.Request, capacity),
		responses: make(chan *domain.Response, capacity),
	}
}

// PushRequest appends a request, blocking while the queue is full.
func (q *QueuePair) PushRequest(ctx context.Context, req *domain.Request) error {
	if atomic.LoadInt32(&q.closed) == 1 {
		return domain.ErrQueueClosed
	}
	select {
	case q.requests <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PopRequest removes the oldest request, blocking up to wait.
func (q *QueuePair) PopRequest(ctx context.Context, wait time.Duration) (*domain.Request, bool, error) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case req := <-q.requests:
		return req, true, nil
	case <-timer.C:
		return nil, false, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// PushResponse appends a response, blocking while the queue is full.
func (q *QueuePair) PushResponse(ctx context.Context, resp *domain.Response) error {
	if atomic.LoadInt32(&q.closed) == 1 {
		return domain.ErrQueueClosed
	}
	select {
	case q.responses <- resp:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PopResponse removes the oldest response, blocking up to wait.
func (q *QueuePair) PopResponse(ctx context.Context, wait time.Duration) (*domain.Response, bool, error) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case resp := <-q.responses:
		return resp, true, nil
	case <-timer.C:
		return nil, false, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// Close marks the pair closed to new pushes. Buffered items stay poppable so
// in-flight work can drain. A push already parked on a full channel when Close
// is called may still land; callers cancel their contexts on shutdown, which
// unblocks those pushes.
func (q *QueuePair) Close() {
	atomic.StoreInt32(&q.closed, 1)
}
