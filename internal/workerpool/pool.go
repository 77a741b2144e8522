package workerpool

import (
	"context"
	"sync"
	"time"

	"gitlab.com/inferd-2025.net/internal/config"
	"gitlab.com/inferd-2025.net/internal/core/ports/primary"
	"gitlab.com/inferd-2025.net/internal/domain"
	"gitlab.com/inferd-2025.net/internal/metrics"
)

// runner blocks running one worker until it exits. A nil error means a clean
// shutdown; anything else is treated as a crash. onStarted is invoked once
// the worker is up, with its PID (0 for inline workers).
type runner func(ctx context.Context, workerID int, onStarted func(pid int)) error

// Pool owns the lifecycle of all workers. Each slot is supervised: a crashed
// worker is logged, counted, and restarted after a backoff, so capacity does
// not silently degrade.
type Pool struct {
	cfg    *config.PoolConfig
	logger primary.Logger
	run    runner

	slots []*slot

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type slot struct {
	mu   sync.Mutex
	info domain.WorkerInfo
}

func (s *slot) update(fn func(info *domain.WorkerInfo)) {
	s.mu.Lock()
	fn(&s.info)
	s.mu.Unlock()
}

func (s *slot) snapshot() domain.WorkerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

func newPool(cfg *config.PoolConfig, run runner, logger primary.Logger) *Pool {
	slots := make([]*slot, cfg.WorkerCount)
	for i := range slots {
		slots[i] = &slot{info: domain.WorkerInfo{
			ID:           i,
			CoreAffinity: i,
			State:        domain.WorkerStateStopped,
		}}
	}
	return &Pool{
		cfg:    cfg,
		logger: logger,
		run:    run,
		slots:  slots,
	}
}

// Start launches one supervised worker per slot.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.logger.Info("Starting worker pool", "workers", p.cfg.WorkerCount, "mode", p.cfg.Mode)

	for _, s := range p.slots {
		p.wg.Add(1)
		go p.supervise(ctx, s)
	}
}

// Stop terminates every worker and waits for the supervisors to finish.
func (p *Pool) Stop() {
	if p.cancel == nil {
		return
	}
	p.logger.Info("Stopping worker pool")
	p.cancel()
	p.wg.Wait()
}

// supervise runs one slot's worker, restarting it after crashes until the
// pool shuts down.
func (p *Pool) supervise(ctx context.Context, s *slot) {
	defer p.wg.Done()
	workerID := s.snapshot().ID

	for {
		s.update(func(info *domain.WorkerInfo) {
			info.State = domain.WorkerStateStarting
			info.StartedAt = time.Now()
			info.PID = 0
		})

		err := p.run(ctx, workerID, func(pid int) {
			s.update(func(info *domain.WorkerInfo) {
				info.State = domain.WorkerStateRunning
				info.PID = pid
			})
			metrics.WorkersAlive.Inc()
		})

		if s.snapshot().State == domain.WorkerStateRunning {
			metrics.WorkersAlive.Dec()
		}

		if ctx.Err() != nil {
			s.update(func(info *domain.WorkerInfo) { info.State = domain.WorkerStateStopped })
			return
		}

		s.update(func(info *domain.WorkerInfo) {
			info.State = domain.WorkerStateCrashed
			info.Restarts++
		})
		metrics.WorkerRestartsTotal.Inc()
		p.logger.Error("Worker crashed, restarting", "workerId", workerID,
			"error", err, "backoff", p.cfg.RestartBackoff)

		select {
		case <-ctx.Done():
			s.update(func(info *domain.WorkerInfo) { info.State = domain.WorkerStateStopped })
			return
		case <-time.After(p.cfg.RestartBackoff):
		}
	}
}

// Workers returns a snapshot of every slot's state.
func (p *Pool) Workers() []domain.WorkerInfo {
	infos := make([]domain.WorkerInfo, len(p.slots))
	for i, s := range p.slots {
		infos[i] = s.snapshot()
	}
	return infos
}

// LiveCount reports how many workers are currently running.
func (p *Pool) LiveCount() int {
	n := 0
	for _, s := range p.slots {
		if s.snapshot().State == domain.WorkerStateRunning {
			n++
		}
	}
	return n
}

// Size reports the configured pool capacity.
func (p *Pool) Size() int {
	return len(p.slots)
}
