package domain

import "time"

// Request is a single classification request travelling on the request queue.
// It is created by the dispatcher at submission time and consumed exactly once
// by exactly one worker.
type Request struct {
	ID       string    `json:"requestId"`
	Sentence string    `json:"sentence"`
	TraceID  string    `json:"traceId,omitempty"`
	IssuedAt time.Time `json:"issuedAt"`
}
