package cache

import (
	"context"
	"sync"
)

// Memory is a process-local Cache. Expired entries are kept until overwritten.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

func (m *Memory) Get(ctx context.Context, key string) (Entry, bool, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok {
		return Entry{}, false, nil
	}

	e.Payload = append([]byte(nil), e.Payload...)
	return e, true, nil
}

func (m *Memory) Set(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry.Payload = append([]byte(nil), entry.Payload...)

	m.mu.Lock()
	m.entries[entry.Key] = entry
	m.mu.Unlock()

	return nil
}
