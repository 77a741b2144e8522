package config

import (
	"time"
)

// BatchingConfig controls the per-worker batching loop and the dispatcher's
// wait discipline.
type BatchingConfig struct {
	// MaxBatchSize caps how many requests one inference call carries.
	MaxBatchSize int
	// FlushAge is how long a non-empty batch may wait, measured from the
	// arrival of its first unflushed member.
	FlushAge time.Duration
	// WorkerPollInterval bounds each blocking pop on the request queue so the
	// loop keeps hitting the flush-age deadline.
	WorkerPollInterval time.Duration
	// DispatchPollInterval bounds each blocking pop the response collector
	// performs on the response queue.
	DispatchPollInterval time.Duration
	// WaitBudget is the total time a caller waits for its response.
	WaitBudget time.Duration
}

func NewBatchingConfig() *BatchingConfig {
	return &BatchingConfig{
		MaxBatchSize:         getEnvInt("BATCH_MAX_SIZE", 32),
		FlushAge:             getEnvDuration("BATCH_FLUSH_AGE_MS", 100) * time.Millisecond,
		WorkerPollInterval:   getEnvDuration("WORKER_POLL_INTERVAL_MS", 10) * time.Millisecond,
		DispatchPollInterval: getEnvDuration("DISPATCH_POLL_INTERVAL_MS", 100) * time.Millisecond,
		WaitBudget:           getEnvDuration("REQUEST_WAIT_BUDGET_SEC", 30) * time.Second,
	}
}
