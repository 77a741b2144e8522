package workerpool

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"gitlab.com/inferd-2025.net/internal/config"
	"gitlab.com/inferd-2025.net/internal/core/ports/primary"
)

// NewProcessPool creates a pool that spawns one worker process per slot.
// Workers inherit the parent environment (redis address, model config) plus
// their WORKER_ID, and are killed when the pool's context is cancelled or
// when the parent dies.
func NewProcessPool(cfg *config.PoolConfig, logger primary.Logger) *Pool {
	binary := cfg.WorkerBinary
	if binary == "" {
		binary = siblingWorkerBinary()
	}

	run := func(ctx context.Context, workerID int, onStarted func(pid int)) error {
		cmd := exec.CommandContext(ctx, binary)
		cmd.Env = append(os.Environ(), "WORKER_ID="+strconv.Itoa(workerID))
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		setDieWithParent(cmd)

		if err := cmd.Start(); err != nil {
			return fmt.Errorf("failed to start worker process: %w", err)
		}
		onStarted(cmd.Process.Pid)

		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			return fmt.Errorf("worker process exited: %w", err)
		}
		return nil
	}

	return newPool(cfg, run, logger)
}

// siblingWorkerBinary resolves the worker executable next to the running
// frontend binary.
func siblingWorkerBinary() string {
	self, err := os.Executable()
	if err != nil {
		return "inferd-worker"
	}
	return filepath.Join(filepath.Dir(self), "inferd-worker")
}
