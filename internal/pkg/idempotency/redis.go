package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateTracker keeps operation state in redis under prefix+key.
type StateTracker struct {
	client redis.Cmdable
	prefix string
}

// New returns a StateTracker. An empty prefix defaults to "idempotency:".
func New(client redis.Cmdable, prefix string) *StateTracker {
	if prefix == "" {
		prefix = "idempotency:"
	}
	return &StateTracker{
		client: client,
		prefix: prefix,
	}
}

// Acquire tries to start an operation.
func (s *StateTracker) Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error) {
	fk := s.prefix + key

	for range 2 {
		acquired, err := s.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
		if err != nil {
			return StateError, err
		}
		if acquired {
			return StateNone, nil
		}

		result, err := s.client.Get(ctx, fk).Result()
		if errors.Is(err, redis.Nil) {
			// expired between SetNX and Get
			continue
		}
		if err != nil {
			return StateError, err
		}
		return parseState(result)
	}

	return StateError, ErrInvalidState
}

func (s *StateTracker) MarkCompleted(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, StateCompleted.String(), ttl).Err()
}

func (s *StateTracker) MarkFailed(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, StateFailed.String(), ttl).Err()
}

func (s *StateTracker) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	return exec(ctx, s, key, fn, opts...)
}
