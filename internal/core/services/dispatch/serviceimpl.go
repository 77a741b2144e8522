package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gitlab.com/inferd-2025.net/internal/config"
	"gitlab.com/inferd-2025.net/internal/core/ports/primary"
	"gitlab.com/inferd-2025.net/internal/core/ports/secondary"
	"gitlab.com/inferd-2025.net/internal/domain"
	"gitlab.com/inferd-2025.net/internal/metrics"
)

var _ IDispatcherService = &DispatcherService{}

const auditWriteTimeout = 5 * time.Second

// DispatcherService implements the IDispatcherService interface. One
// collector goroutine drains the response queue and fulfills the completion
// handle registered for each in-flight request; callers park on their handle
// instead of polling the queue themselves.
type DispatcherService struct {
	queues    secondary.QueuePair
	auditRepo secondary.RequestLogRepository
	cfg       *config.BatchingConfig
	logger    primary.Logger

	ids      idGenerator
	registry *registry

	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewDispatcherService creates a new dispatcher service. auditRepo may be nil
// to disable the audit log.
func NewDispatcherService(
	queues secondary.QueuePair,
	auditRepo secondary.RequestLogRepository,
	cfg *config.BatchingConfig,
	logger primary.Logger,
) *DispatcherService {
	return &DispatcherService{
		queues:    queues,
		auditRepo: auditRepo,
		cfg:       cfg,
		logger:    logger,
		registry:  newRegistry(),
		stopped:   make(chan struct{}),
	}
}

// Start launches the response collector.
func (s *DispatcherService) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	go s.collect(ctx)
}

// Stop terminates the collector and fails all in-flight waits.
func (s *DispatcherService) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.stopped
	s.registry.failAll("dispatcher stopped")
}

// InFlight reports how many submissions are currently awaiting a response.
func (s *DispatcherService) InFlight() int {
	return s.registry.size()
}

// Submit enqueues one sentence and blocks until its response arrives or the
// wait budget elapses.
func (s *DispatcherService) Submit(ctx context.Context, sentence string) (*domain.Response, error) {
	start := time.Now()
	req := &domain.Request{
		ID:       s.ids.Next(),
		Sentence: sentence,
		TraceID:  uuid.NewString(),
		IssuedAt: start,
	}

	handle := s.registry.register(req.ID)

	if err := s.queues.PushRequest(ctx, req); err != nil {
		s.registry.drop(req.ID)
		s.logger.Error("Failed to enqueue request", "requestId", req.ID, "error", err)
		return nil, fmt.Errorf("failed to enqueue request: %w", err)
	}
	metrics.RequestsTotal.Inc()

	budget := time.NewTimer(s.cfg.WaitBudget)
	defer budget.Stop()

	select {
	case <-handle.done():
		resp := handle.resp
		s.audit(req, resp, time.Since(start))
		return resp, nil
	case <-budget.C:
		s.registry.drop(req.ID)
		metrics.TimeoutsTotal.Inc()
		s.logger.Warn("Request timed out", "requestId", req.ID, "budget", s.cfg.WaitBudget)
		s.audit(req, nil, time.Since(start))
		return nil, domain.ErrTimeout
	case <-ctx.Done():
		s.registry.drop(req.ID)
		return nil, ctx.Err()
	}
}

// collect drains the response queue, handing each response to its registered
// waiter. Responses for abandoned requests are counted and discarded.
func (s *DispatcherService) collect(ctx context.Context) {
	defer close(s.stopped)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		resp, ok, err := s.queues.PopResponse(ctx, s.cfg.DispatchPollInterval)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			s.logger.Error("Failed to pop response", "error", err)
			continue
		}
		if !ok {
			continue
		}

		if handle, found := s.registry.resolve(resp.RequestID); found {
			handle.fulfill(resp)
			continue
		}

		// Nobody is waiting: the caller already timed out and its handle was
		// dropped from the registry.
		metrics.DroppedResponsesTotal.Inc()
		s.logger.Debug("Dropping response with no waiter", "requestId", resp.RequestID, "workerId", resp.WorkerID)
	}
}

// audit records the resolved request asynchronously. resp == nil means the
// wait budget elapsed first.
func (s *DispatcherService) audit(req *domain.Request, resp *domain.Response, elapsed time.Duration) {
	if s.auditRepo == nil {
		return
	}

	entry := &domain.RequestLog{
		TraceID:    req.TraceID,
		RequestID:  req.ID,
		Sentence:   req.Sentence,
		DurationMs: float64(elapsed.Microseconds()) / 1000.0,
		CreatedAt:  time.Now(),
	}
	switch {
	case resp == nil:
		entry.Status = domain.RequestLogStatusTimeout
	case resp.Failed():
		entry.Status = domain.RequestLogStatusError
		entry.Error = resp.Error
		entry.WorkerID = resp.WorkerID
	default:
		entry.Status = domain.RequestLogStatusOK
		entry.Class = string(resp.Result.Class)
		entry.Confidence = resp.Result.Confidence
		entry.WorkerID = resp.WorkerID
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()
		if err := s.auditRepo.SaveRequestLog(ctx, entry); err != nil {
			s.logger.Warn("Failed to audit request", "requestId", entry.RequestID, "error", err)
		}
	}()
}
