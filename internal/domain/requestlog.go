package domain

import "time"

// RequestLog is one audited inference request, persisted after the dispatcher
// resolves it. Auditing is optional and best-effort; serving never waits on it.
type RequestLog struct {
	TraceID    string    `db:"trace_id" json:"trace_id"`
	RequestID  string    `db:"request_id" json:"request_id"`
	Sentence   string    `db:"sentence" json:"sentence"`
	Class      string    `db:"class" json:"class,omitempty"`
	Confidence float64   `db:"confidence" json:"confidence"`
	WorkerID   int       `db:"worker_id" json:"worker_id"`
	DurationMs float64   `db:"duration_ms" json:"duration_ms"`
	Status     string    `db:"status" json:"status"`
	Error      string    `db:"error" json:"error,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Request log status values.
const (
	RequestLogStatusOK      = "OK"
	RequestLogStatusError   = "ERROR"
	RequestLogStatusTimeout = "TIMEOUT"
)

type RequestLogTable struct {
	TraceID    string
	RequestID  string
	Sentence   string
	Class      string
	Confidence string
	WorkerID   string
	DurationMs string
	Status     string
	Error      string
	CreatedAt  string
}

func (RequestLogTable) TableName() string {
	return "request_logs"
}

func GetRequestLogTable() RequestLogTable {
	return RequestLogTable{
		TraceID:    "trace_id",
		RequestID:  "request_id",
		Sentence:   "sentence",
		Class:      "class",
		Confidence: "confidence",
		WorkerID:   "worker_id",
		DurationMs: "duration_ms",
		Status:     "status",
		Error:      "error",
		CreatedAt:  "created_at",
	}
}
