package idempotency

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// Memory is a process-local Idempotency used when redis is not configured.
type Memory struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemory returns an empty Memory store. A nil now uses time.Now.
func NewMemory(now func() time.Time) *Memory {
	if now == nil {
		now = time.Now
	}
	return &Memory{now: now, entries: map[string]memoryEntry{}}
}

func (m *Memory) Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error) {
	if err := ctx.Err(); err != nil {
		return StateError, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if e, ok := m.entries[key]; ok && now.Before(e.expiresAt) {
		return e.state, nil
	}

	m.entries[key] = memoryEntry{state: StateInProgress, expiresAt: now.Add(lockDuration)}
	return StateNone, nil
}

func (m *Memory) MarkCompleted(_ context.Context, key string, ttl time.Duration) error {
	m.set(key, StateCompleted, ttl)
	return nil
}

func (m *Memory) MarkFailed(_ context.Context, key string, ttl time.Duration) error {
	m.set(key, StateFailed, ttl)
	return nil
}

func (m *Memory) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	return exec(ctx, m, key, fn, opts...)
}

func (m *Memory) set(key string, state State, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{state: state, expiresAt: m.now().Add(ttl)}
}
