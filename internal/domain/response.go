package domain

import "time"

// Response is the outcome of one Request, published on the response queue by
// the worker that processed it. Either Result is set or Error is non-empty,
// never both.
type Response struct {
	RequestID string      `json:"requestId"`
	Result    *Prediction `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	WorkerID  int         `json:"workerId"`
	EmittedAt time.Time   `json:"emittedAt"`
}

// Failed reports whether this response carries an inference failure instead
// of a prediction.
func (r *Response) Failed() bool {
	return r.Error != ""
}
