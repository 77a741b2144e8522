package queueport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/inferd-2025.net/internal/core/ports/primary"
	"gitlab.com/inferd-2025.net/internal/core/ports/secondary"
	"gitlab.com/inferd-2025.net/internal/domain"
)

var _ secondary.QueuePair = &QueuePair{}

// QueuePair implements the shared request/response queues on redis lists.
// LPUSH/BRPOP gives FIFO order with a timed blocking pop, and because the
// lists live in redis the queues are shared across the frontend and every
// worker process.
type QueuePair struct {
	redisClient *redis.Client
	requestKey  string
	responseKey string
	logger      primary.Logger
}

// NewQueuePair creates a redis-backed queue pair over the given list keys.
func NewQueuePair(redisClient *redis.Client, requestKey, responseKey string, logger primary.Logger) *QueuePair {
	return &QueuePair{
		redisClient: redisClient,
		requestKey:  requestKey,
		responseKey: responseKey,
		logger:      logger,
	}
}

// PushRequest appends a request to the tail of the request list.
func (q *QueuePair) PushRequest(ctx context.Context, req *domain.Request) error {
	payload, err := json.Marshal(req)
	if err != nil {
		q.logger.Error("Failed to marshal request", "error", err)
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	if err := q.redisClient.LPush(ctx, q.requestKey, payload).Err(); err != nil {
		q.logger.Error("Failed to push request", "requestId", req.ID, "error", err)
		return fmt.Errorf("failed to push request: %w", err)
	}

	return nil
}

// PopRequest removes the oldest request, blocking up to wait.
func (q *QueuePair) PopRequest(ctx context.Context, wait time.Duration) (*domain.Request, bool, error) {
	raw, ok, err := q.brpop(ctx, q.requestKey, wait)
	if err != nil || !ok {
		return nil, false, err
	}

	var req domain.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		q.logger.Error("Failed to unmarshal request", "error", err)
		return nil, false, fmt.Errorf("failed to unmarshal request: %w", err)
	}

	return &req, true, nil
}

// PushResponse appends a response to the tail of the response list.
func (q *QueuePair) PushResponse(ctx context.Context, resp *domain.Response) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		q.logger.Error("Failed to marshal response", "error", err)
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err := q.redisClient.LPush(ctx, q.responseKey, payload).Err(); err != nil {
		q.logger.Error("Failed to push response", "requestId", resp.RequestID, "error", err)
		return fmt.Errorf("failed to push response: %w", err)
	}

	return nil
}

// PopResponse removes the oldest response, blocking up to wait.
func (q *QueuePair) PopResponse(ctx context.Context, wait time.Duration) (*domain.Response, bool, error) {
	raw, ok, err := q.brpop(ctx, q.responseKey, wait)
	if err != nil || !ok {
		return nil, false, err
	}

	var resp domain.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		q.logger.Error("Failed to unmarshal response", "error", err)
		return nil, false, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &resp, true, nil
}

// retryInterval paces the RPOP loop used for sub-second waits.
const retryInterval = 5 * time.Millisecond

// brpop pops from the head of the list, returning (nil, false, nil) when the
// wait elapses with the list empty. The client truncates sub-second BRPOP
// timeouts to a full second, which would starve the age-based flush deadline,
// so short waits run as a paced RPOP loop instead.
func (q *QueuePair) brpop(ctx context.Context, key string, wait time.Duration) ([]byte, bool, error) {
	if wait < time.Second {
		return q.rpopUntil(ctx, key, wait)
	}

	res, err := q.redisClient.BRPop(ctx, wait, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, false, err
		}
		q.logger.Error("Failed to pop from queue", "key", key, "error", err)
		return nil, false, fmt.Errorf("failed to pop from %s: %w", key, err)
	}

	// BRPOP replies with [key, value].
	if len(res) != 2 {
		return nil, false, fmt.Errorf("unexpected BRPOP reply length %d", len(res))
	}

	return []byte(res[1]), true, nil
}

// rpopUntil polls RPOP until a value arrives or the wait elapses.
func (q *QueuePair) rpopUntil(ctx context.Context, key string, wait time.Duration) ([]byte, bool, error) {
	deadline := time.Now().Add(wait)
	for {
		raw, err := q.redisClient.RPop(ctx, key).Bytes()
		if err == nil {
			return raw, true, nil
		}
		if !errors.Is(err, redis.Nil) {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, false, err
			}
			q.logger.Error("Failed to pop from queue", "key", key, "error", err)
			return nil, false, fmt.Errorf("failed to pop from %s: %w", key, err)
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, false, nil
		}
		pause := retryInterval
		if remaining < pause {
			pause = remaining
		}
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		case <-time.After(pause):
		}
	}
}
