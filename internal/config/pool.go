package config

import (
	"os"
	"time"
)

// PoolMode selects how workers run.
type PoolMode string

const (
	// PoolModeProcess spawns one OS process per worker over the redis queues.
	PoolModeProcess PoolMode = "process"
	// PoolModeInline runs batching loops as goroutines over in-memory queues.
	PoolModeInline PoolMode = "inline"
)

// MaxWorkers is the hard cap on pool size.
const MaxWorkers = 16

type PoolConfig struct {
	Mode        PoolMode
	WorkerCount int
	// WorkerBinary is the worker executable spawned in process mode. Empty
	// means re-exec the current binary's sibling "inferd-worker".
	WorkerBinary string
	// RestartBackoff is how long the supervisor waits before restarting a
	// crashed worker.
	RestartBackoff time.Duration
	// PinCores enables CPU affinity pinning of worker processes.
	PinCores bool
}

func NewPoolConfig() *PoolConfig {
	mode := PoolMode(os.Getenv("POOL_MODE"))
	if mode != PoolModeProcess && mode != PoolModeInline {
		mode = PoolModeInline
	}
	count := getEnvInt("WORKER_COUNT", 2)
	if count < 1 {
		count = 1
	}
	if count > MaxWorkers {
		count = MaxWorkers
	}
	return &PoolConfig{
		Mode:           mode,
		WorkerCount:    count,
		WorkerBinary:   os.Getenv("WORKER_BINARY"),
		RestartBackoff: getEnvDuration("WORKER_RESTART_BACKOFF_SEC", 1) * time.Second,
		PinCores:       os.Getenv("PIN_CORES") != "false",
	}
}
