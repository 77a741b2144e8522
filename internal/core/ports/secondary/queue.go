package secondary

import (
	"context"
	"time"

	"gitlab.com/inferd-2025.net/internal/domain"
)

// RequestQueue is the inbound shared FIFO between dispatchers and workers.
// Implementations must be safe for concurrent use from multiple processes
// (redis adapter) or at least multiple goroutines (memory adapter).
type RequestQueue interface {
	// PushRequest appends a request to the tail of the queue.
	PushRequest(ctx context.Context, req *domain.Request) error

	// PopRequest removes the head of the queue, blocking up to wait.
	// Returns (nil, false, nil) when the wait elapses with nothing queued.
	PopRequest(ctx context.Context, wait time.Duration) (*domain.Request, bool, error)
}

// ResponseQueue is the outbound shared FIFO between workers and the
// dispatcher's response collector.
type ResponseQueue interface {
	// PushResponse appends a response to the tail of the queue.
	PushResponse(ctx context.Context, resp *domain.Response) error

	// PopResponse removes the head of the queue, blocking up to wait.
	// Returns (nil, false, nil) when the wait elapses with nothing queued.
	PopResponse(ctx context.Context, wait time.Duration) (*domain.Response, bool, error)
}

// QueuePair bundles the two shared queues one deployment operates on.
type QueuePair interface {
	RequestQueue
	ResponseQueue
}
