package domain

import "errors"

var (
	// ErrTimeout is returned by the dispatcher when the wait budget elapses
	// with no response for the submitted request.
	ErrTimeout = errors.New("request timeout")

	// ErrQueueClosed is returned on push/pop against a queue that has been
	// shut down.
	ErrQueueClosed = errors.New("queue closed")
)
