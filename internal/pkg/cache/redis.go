package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fieldPayload   = "payload"
	fieldExpiresAt = "expires_at"
)

// ErrCorruptEntry is returned when a stored hash is missing its expiry.
var ErrCorruptEntry = errors.New("cache: corrupt redis entry")

// Redis is a Cache stored as one redis hash per key.
//
// The hash keeps the logical expiry next to the payload; the redis key itself
// expires at the same instant so stale keys do not pile up.
type Redis struct {
	client redis.Cmdable
	prefix string
}

// NewRedis wraps client. prefix is prepended to every key.
func NewRedis(client redis.Cmdable, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Get(ctx context.Context, key string) (Entry, bool, error) {
	values, err := r.client.HGetAll(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) || (err == nil && len(values) == 0) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("cache: redis get %s: %w", key, err)
	}

	raw, ok := values[fieldExpiresAt]
	if !ok {
		return Entry{}, false, ErrCorruptEntry
	}
	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Entry{}, false, fmt.Errorf("%w: %w", ErrCorruptEntry, err)
	}

	return Entry{
		Key:       key,
		Payload:   []byte(values[fieldPayload]),
		ExpiresAt: time.Unix(0, nanos),
	}, true, nil
}

func (r *Redis) Set(ctx context.Context, entry Entry) error {
	fk := r.prefix + entry.Key

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, fk)
		pipe.HSet(ctx, fk,
			fieldPayload, entry.Payload,
			fieldExpiresAt, strconv.FormatInt(entry.ExpiresAt.UnixNano(), 10),
		)
		pipe.PExpireAt(ctx, fk, entry.ExpiresAt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache: redis set %s: %w", entry.Key, err)
	}

	return nil
}
