// Package idempotency guards an operation so that a given key runs at most once
// per state TTL, across processes sharing the same store.
package idempotency

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAlreadyInProgress = errors.New("operation already in progress")
	ErrAlreadyCompleted  = errors.New("operation already completed")
	ErrAlreadyFailed     = errors.New("operation already failed")
	ErrInvalidState      = errors.New("invalid state")
)

type State string

const (
	StateNone       State = "none"        // operation can proceed
	StateInProgress State = "in_progress" // another worker holds the lock
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateError      State = "error" // store lookup failed
)

func (s State) String() string {
	return string(s)
}

func parseState(s string) (State, error) {
	switch State(s) {
	case StateInProgress, StateCompleted, StateFailed:
		return State(s), nil
	default:
		return StateError, ErrInvalidState
	}
}

// Idempotency is implemented by StateTracker (redis) and Memory.
type Idempotency interface {
	Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error)
	MarkCompleted(ctx context.Context, key string, ttl time.Duration) error
	MarkFailed(ctx context.Context, key string, ttl time.Duration) error
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = time.Hour
)

type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

// WithLockDuration bounds how long an in-progress claim survives a crashed worker.
func WithLockDuration(lockDuration time.Duration) Option {
	return func(o *execOptions) {
		o.lockDuration = lockDuration
	}
}

// WithStateTTL sets how long the completed/failed marker is remembered.
func WithStateTTL(stateTTL time.Duration) Option {
	return func(o *execOptions) {
		o.stateTTL = stateTTL
	}
}

// exec is the Exec flow shared by every store.
func exec(ctx context.Context, s Idempotency, key string, fn func(context.Context) error, opts ...Option) error {
	execOpt := &execOptions{
		lockDuration: defaultLockDuration,
		stateTTL:     defaultStateTTL,
	}
	for _, opt := range opts {
		opt(execOpt)
	}
	if execOpt.lockDuration <= 0 {
		execOpt.lockDuration = defaultLockDuration
	}
	if execOpt.stateTTL <= 0 {
		execOpt.stateTTL = defaultStateTTL
	}

	state, err := s.Acquire(ctx, key, execOpt.lockDuration)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrAlreadyInProgress
	case StateCompleted:
		return ErrAlreadyCompleted
	case StateFailed:
		return ErrAlreadyFailed
	}

	markCtx := context.WithoutCancel(ctx)
	if err := fn(ctx); err != nil {
		if markErr := s.MarkFailed(markCtx, key, execOpt.stateTTL); markErr != nil {
			return errors.Join(err, markErr)
		}
		return err
	}

	return s.MarkCompleted(markCtx, key, execOpt.stateTTL)
}
