package batching

import (
	"context"
	"errors"
	"time"

	"gitlab.com/inferd-2025.net/internal/config"
	"gitlab.com/inferd-2025.net/internal/core/ports/primary"
	"gitlab.com/inferd-2025.net/internal/core/ports/secondary"
	"gitlab.com/inferd-2025.net/internal/domain"
	"gitlab.com/inferd-2025.net/internal/metrics"
)

var _ IBatchingService = &BatchingService{}

// BatchingService implements the IBatchingService interface. It accumulates
// requests from the shared queue into a batch bounded by size and age, and
// flushes whole batches through the predictor. The pop wait is short so the
// loop keeps checking the age deadline between arrivals.
type BatchingService struct {
	workerID  int
	queues    secondary.QueuePair
	predictor secondary.Predictor
	cfg       *config.BatchingConfig
	logger    primary.Logger

	batch        []*domain.Request
	firstArrival time.Time
}

// NewBatchingService creates the batching loop for one worker.
func NewBatchingService(
	workerID int,
	queues secondary.QueuePair,
	predictor secondary.Predictor,
	cfg *config.BatchingConfig,
	logger primary.Logger,
) *BatchingService {
	return &BatchingService{
		workerID:  workerID,
		queues:    queues,
		predictor: predictor,
		cfg:       cfg,
		logger:    logger,
		batch:     make([]*domain.Request, 0, cfg.MaxBatchSize),
	}
}

// Run drains the request queue until ctx is cancelled.
func (s *BatchingService) Run(ctx context.Context) error {
	s.logger.Info("Starting batching loop", "workerId", s.workerID,
		"maxBatchSize", s.cfg.MaxBatchSize, "flushAge", s.cfg.FlushAge)

	for {
		select {
		case <-ctx.Done():
			// Flush stragglers so no accepted request is lost on shutdown.
			if len(s.batch) > 0 {
				s.flush(context.Background(), metrics.FlushReasonAge)
			}
			return ctx.Err()
		default:
		}

		req, ok, err := s.queues.PopRequest(ctx, s.cfg.WorkerPollInterval)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			s.logger.Error("Failed to pop request", "workerId", s.workerID, "error", err)
			continue
		}
		if ok {
			if len(s.batch) == 0 {
				s.firstArrival = time.Now()
			}
			s.batch = append(s.batch, req)
		}

		if reason, due := s.flushDue(); due {
			s.flush(ctx, reason)
		}
	}
}

// flushDue evaluates the flush condition: the batch is full, or it is
// non-empty and its first member has waited past the age threshold.
func (s *BatchingService) flushDue() (string, bool) {
	if len(s.batch) >= s.cfg.MaxBatchSize {
		return metrics.FlushReasonFill, true
	}
	if len(s.batch) > 0 && time.Since(s.firstArrival) > s.cfg.FlushAge {
		return metrics.FlushReasonAge, true
	}
	return "", false
}

// flush sends the current batch through the predictor and publishes one
// response per member. The batch is reset regardless of outcome; predictor
// failures become one error response per member, with no retry.
func (s *BatchingService) flush(ctx context.Context, reason string) {
	batch := s.batch
	s.batch = make([]*domain.Request, 0, s.cfg.MaxBatchSize)

	sentences := make([]string, len(batch))
	for i, req := range batch {
		sentences[i] = req.Sentence
	}

	metrics.FlushesTotal.WithLabelValues(reason).Inc()
	metrics.BatchSize.Observe(float64(len(batch)))
	s.logger.Debug("Flushing batch", "workerId", s.workerID, "size", len(batch), "reason", reason)

	predictions, err := s.predictor.Predict(ctx, sentences)
	if err != nil {
		metrics.InferenceErrorsTotal.Inc()
		s.logger.Error("Inference failed for batch", "workerId", s.workerID,
			"size", len(batch), "error", err)
		s.publishErrors(ctx, batch, err)
		return
	}
	if len(predictions) != len(batch) {
		// The predictor broke its order/length contract; treat it as a
		// whole-batch failure.
		metrics.InferenceErrorsTotal.Inc()
		s.logger.Error("Prediction count mismatch", "workerId", s.workerID,
			"expected", len(batch), "got", len(predictions))
		s.publishErrors(ctx, batch, errPredictionMismatch)
		return
	}

	now := time.Now()
	for i, req := range batch {
		pred := predictions[i]
		s.publish(ctx, &domain.Response{
			RequestID: req.ID,
			Result:    &pred,
			WorkerID:  s.workerID,
			EmittedAt: now,
		})
	}
}

var errPredictionMismatch = errors.New("predictor returned wrong number of results")

// publishErrors emits one error response per batch member.
func (s *BatchingService) publishErrors(ctx context.Context, batch []*domain.Request, cause error) {
	now := time.Now()
	for _, req := range batch {
		s.publish(ctx, &domain.Response{
			RequestID: req.ID,
			Error:     cause.Error(),
			WorkerID:  s.workerID,
			EmittedAt: now,
		})
	}
}

func (s *BatchingService) publish(ctx context.Context, resp *domain.Response) {
	if err := s.queues.PushResponse(ctx, resp); err != nil {
		s.logger.Error("Failed to push response", "workerId", s.workerID,
			"requestId", resp.RequestID, "error", err)
	}
}
