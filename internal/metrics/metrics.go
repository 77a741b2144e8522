package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Flush trigger reasons.
const (
	FlushReasonFill = "fill"
	FlushReasonAge  = "age"
)

var (
	// RequestsTotal counts submissions accepted by the dispatcher.
	RequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inferd",
		Name:      "requests_total",
		Help:      "Classification requests submitted.",
	})

	// TimeoutsTotal counts submissions that exhausted the wait budget.
	TimeoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inferd",
		Name:      "timeouts_total",
		Help:      "Requests that timed out waiting for a response.",
	})

	// DroppedResponsesTotal counts responses arriving with no registered
	// waiter, i.e. responses for requests abandoned after a timeout.
	DroppedResponsesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inferd",
		Name:      "dropped_responses_total",
		Help:      "Responses discarded because no caller was waiting.",
	})

	// FlushesTotal counts batch flushes by trigger reason (fill or age).
	FlushesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inferd",
		Name:      "batch_flushes_total",
		Help:      "Batch flushes by trigger reason.",
	}, []string{"reason"})

	// BatchSize observes how many requests each flush carried.
	BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "inferd",
		Name:      "batch_size",
		Help:      "Requests per flushed batch.",
		Buckets:   []float64{1, 2, 4, 8, 16, 24, 32},
	})

	// InferenceErrorsTotal counts whole-batch predictor failures.
	InferenceErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inferd",
		Name:      "inference_errors_total",
		Help:      "Predictor calls that failed for a whole batch.",
	})

	// WorkersAlive tracks how many worker slots are currently running.
	WorkersAlive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "inferd",
		Name:      "workers_alive",
		Help:      "Worker processes currently running.",
	})

	// WorkerRestartsTotal counts supervisor restarts of crashed workers.
	WorkerRestartsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inferd",
		Name:      "worker_restarts_total",
		Help:      "Worker processes restarted after a crash.",
	})
)
