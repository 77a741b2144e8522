package classify

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/inferd-2025.net/internal/core/ports/primary"
	"gitlab.com/inferd-2025.net/internal/core/services/dispatch"
	"gitlab.com/inferd-2025.net/internal/domain"
	"gitlab.com/inferd-2025.net/internal/handlers/response"
)

// Handler handles classification API requests
type Handler struct {
	dispatcher dispatch.IDispatcherService
	logger     primary.Logger
}

// NewHandler creates a new classify handler
func NewHandler(dispatcher dispatch.IDispatcherService, logger primary.Logger) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterRoutes registers the API routes for Handler
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/classify/{sentence}", h.Classify).Methods("GET")
}

// ClassifyResult is the success payload for one classification.
type ClassifyResult struct {
	Class          domain.ClassLabel `json:"class"`
	Sentence       string            `json:"sentence"`
	Confidence     float64           `json:"confidence"`
	ProcessingTime float64           `json:"processing_time"`
	WorkerID       int               `json:"worker_id"`
}

// Classify handles a single-sentence classification request. The sentence is
// the URL-decoded path segment.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	vars := mux.Vars(r)
	sentence := vars["sentence"]

	resp, err := h.dispatcher.Submit(r.Context(), sentence)
	if err != nil {
		if errors.Is(err, domain.ErrTimeout) {
			response.WriteError(w, "Request timeout", http.StatusRequestTimeout)
			return
		}
		h.logger.Error("Failed to process request", "error", err)
		response.WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if resp.Failed() {
		response.WriteError(w, resp.Error, http.StatusInternalServerError)
		return
	}

	response.WriteSuccess(w, ClassifyResult{
		Class:          resp.Result.Class,
		Sentence:       sentence,
		Confidence:     resp.Result.Confidence,
		ProcessingTime: roundSeconds(time.Since(start)),
		WorkerID:       resp.WorkerID,
	})
}

// roundSeconds reports elapsed wall time in seconds, rounded to 4 decimals.
func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*10000) / 10000
}
