package workerpool

import (
	"context"
	"errors"
	"fmt"

	"gitlab.com/inferd-2025.net/internal/config"
	"gitlab.com/inferd-2025.net/internal/core/ports/primary"
	"gitlab.com/inferd-2025.net/internal/core/ports/secondary"
	"gitlab.com/inferd-2025.net/internal/core/services/batching"
)

// NewInlinePool creates a pool whose workers are batching loops running as
// goroutines inside this process, over whatever queue pair is supplied. Used
// for single-process deployments and tests; no core pinning, no child
// processes.
func NewInlinePool(
	cfg *config.PoolConfig,
	batchCfg *config.BatchingConfig,
	queues secondary.QueuePair,
	newPredictor func(workerID int) secondary.Predictor,
	logger primary.Logger,
) *Pool {
	run := func(ctx context.Context, workerID int, onStarted func(pid int)) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("worker panicked: %v", r)
			}
		}()

		onStarted(0)
		loop := batching.NewBatchingService(workerID, queues, newPredictor(workerID), batchCfg, logger)
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	return newPool(cfg, run, logger)
}
