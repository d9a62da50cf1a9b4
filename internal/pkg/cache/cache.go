package cache

import (
	"context"
	"time"
)

// Entry is one cached payload.
type Entry struct {
	Key       string
	Payload   []byte
	ExpiresAt time.Time
}

// Fresh reports whether the entry is still usable at now.
func (e Entry) Fresh(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}

// Cache is the storage contract used by the API client.
type Cache interface {
	// Get returns the entry for key. found is false on a miss.
	// Expired entries may still be returned; callers compare ExpiresAt themselves.
	Get(ctx context.Context, key string) (entry Entry, found bool, err error)

	// Set stores entry, superseding any previous value for the same key.
	Set(ctx context.Context, entry Entry) error
}
