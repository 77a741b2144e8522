package audit

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gitlab.com/inferd-2025.net/internal/core/ports/primary"
	"gitlab.com/inferd-2025.net/internal/core/ports/secondary"
	"gitlab.com/inferd-2025.net/internal/domain"
	"gitlab.com/inferd-2025.net/internal/handlers/response"
)

const defaultLimit = 50

// Handler serves the recent audit-log entries. Registered only when the
// audit repository is configured.
type Handler struct {
	repo   secondary.RequestLogRepository
	logger primary.Logger
}

// NewHandler creates a new audit handler
func NewHandler(repo secondary.RequestLogRepository, logger primary.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// RegisterRoutes registers the API routes for Handler
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/audit/recent", h.Recent).Methods("GET")
}

// RecentResult is the payload for a recent-entries query.
type RecentResult struct {
	Count   int                  `json:"count"`
	Entries []*domain.RequestLog `json:"entries"`
}

// Recent returns the newest audit entries, most recent first. The optional
// limit query parameter caps the result size.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.WriteError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := h.repo.GetRecentRequestLogs(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to fetch audit entries", "error", err)
		response.WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response.WriteSuccess(w, RecentResult{
		Count:   len(entries),
		Entries: entries,
	})
}
