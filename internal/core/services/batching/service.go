package batching

import "context"

// IBatchingService defines the interface for the per-worker batching loop
type IBatchingService interface {
	// Run drains the request queue, flushing batches to the predictor until
	// the context is cancelled. It always emits one response per request that
	// entered a batch, error responses included.
	Run(ctx context.Context) error
}
