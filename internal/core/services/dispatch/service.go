package dispatch

import (
	"context"

	"gitlab.com/inferd-2025.net/internal/domain"
)

// IDispatcherService defines the interface for the request-facing dispatcher
type IDispatcherService interface {
	// Submit enqueues one sentence for classification and blocks until its
	// response arrives or the wait budget elapses (domain.ErrTimeout).
	// The returned response always belongs to this submission; it may carry
	// an inference error instead of a prediction.
	Submit(ctx context.Context, sentence string) (*domain.Response, error)

	// Start launches the response collector.
	Start(ctx context.Context)

	// Stop terminates the collector and fails all in-flight waits.
	Stop()

	// InFlight reports how many submissions are currently awaiting a response.
	InFlight() int
}
