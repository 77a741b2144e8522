// package requestlog contains the PostgreSQL implementation of the inference
// audit log repository
package requestlog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"gitlab.com/inferd-2025.net/internal/core/ports/primary"
	"gitlab.com/inferd-2025.net/internal/core/ports/secondary"
	"gitlab.com/inferd-2025.net/internal/domain"
)

var _ secondary.RequestLogRepository = &RequestLogRepository{}

// RequestLogRepository implements the RequestLogRepository interface with PostgreSQL
type RequestLogRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

// NewRequestLogRepository creates a new PostgreSQL request log repository
func NewRequestLogRepository(db *sqlx.DB, logger primary.Logger) *RequestLogRepository {
	return &RequestLogRepository{
		db:     db,
		logger: logger,
	}
}

func requestLogColumns(tbl domain.RequestLogTable) []string {
	return []string{
		tbl.TraceID,
		tbl.RequestID,
		tbl.Sentence,
		tbl.Class,
		tbl.Confidence,
		tbl.WorkerID,
		tbl.DurationMs,
		tbl.Status,
		tbl.Error,
		tbl.CreatedAt,
	}
}

// SaveRequestLog persists one resolved inference request.
func (r *RequestLogRepository) SaveRequestLog(ctx context.Context, entry *domain.RequestLog) error {
	tbl := domain.GetRequestLogTable()
	cols := requestLogColumns(tbl)
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		tbl.TableName(),
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)

	_, err := r.db.ExecContext(
		ctx,
		query,
		entry.TraceID,
		entry.RequestID,
		entry.Sentence,
		entry.Class,
		entry.Confidence,
		entry.WorkerID,
		entry.DurationMs,
		entry.Status,
		entry.Error,
		entry.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to save request log", "requestId", entry.RequestID, "error", err)
		return fmt.Errorf("failed to save request log: %w", err)
	}

	return nil
}

// GetRecentRequestLogs returns the newest entries, most recent first.
func (r *RequestLogRepository) GetRecentRequestLogs(ctx context.Context, limit int) ([]*domain.RequestLog, error) {
	if limit <= 0 {
		limit = 100
	}

	tbl := domain.GetRequestLogTable()
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY %s DESC LIMIT $1",
		strings.Join(requestLogColumns(tbl), ", "),
		tbl.TableName(),
		tbl.CreatedAt,
	)

	entries := make([]*domain.RequestLog, 0, limit)
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		r.logger.Error("Failed to get request logs", "error", err)
		return nil, fmt.Errorf("failed to get request logs: %w", err)
	}

	return entries, nil
}
