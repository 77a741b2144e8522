package health

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/inferd-2025.net/internal/domain"
	"gitlab.com/inferd-2025.net/internal/handlers/response"
	"gitlab.com/inferd-2025.net/internal/workerpool"
)

// Handler reports pool health and capacity.
type Handler struct {
	pool *workerpool.Pool
}

// NewHandler creates a new health handler
func NewHandler(pool *workerpool.Pool) *Handler {
	return &Handler{pool: pool}
}

// RegisterRoutes registers the API routes for Handler
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/healthz", h.Health).Methods("GET")
}

// HealthStatus is the health payload: configured versus live capacity plus
// per-slot detail, so degraded pools are visible.
type HealthStatus struct {
	Status          string              `json:"status"`
	WorkersExpected int                 `json:"workers_expected"`
	WorkersAlive    int                 `json:"workers_alive"`
	Workers         []domain.WorkerInfo `json:"workers"`
}

// Health handles health check requests.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	alive := h.pool.LiveCount()
	status := "ok"
	if alive == 0 {
		status = "down"
	} else if alive < h.pool.Size() {
		status = "degraded"
	}

	payload := HealthStatus{
		Status:          status,
		WorkersExpected: h.pool.Size(),
		WorkersAlive:    alive,
		Workers:         h.pool.Workers(),
	}
	if alive == 0 {
		response.WriteJSON(w, http.StatusServiceUnavailable, payload)
		return
	}
	response.WriteSuccess(w, payload)
}
