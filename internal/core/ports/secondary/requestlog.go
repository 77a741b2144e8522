package secondary

import (
	"context"

	"gitlab.com/inferd-2025.net/internal/domain"
)

// RequestLogRepository persists resolved inference requests for auditing.
type RequestLogRepository interface {
	SaveRequestLog(ctx context.Context, entry *domain.RequestLog) error
	GetRecentRequestLogs(ctx context.Context, limit int) ([]*domain.RequestLog, error)
}
