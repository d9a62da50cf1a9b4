package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrRedisClientRequired is returned when no redis client is configured.
	ErrRedisClientRequired = errors.New("messaging: redis client is required")
	// ErrRedisListRequired is returned when the destination list name is empty.
	ErrRedisListRequired = errors.New("messaging: redis list name is required")
	// ErrRedisHandlerRequired is returned when Consume is called with a nil handler.
	ErrRedisHandlerRequired = errors.New("messaging: redis handler is required")
)

// RedisConfig configures the redis list implementation.
type RedisConfig struct {
	// Client is shared with the rest of the application and is not closed by Close.
	Client redis.Cmdable
	// Prefix is prepended to every list name. Defaults to "queue:".
	Prefix string
}

// RedisList is a FIFO queue on top of redis lists.
//
// Producers RPUSH onto the list. Consumers BLMOVE the head into a companion
// ":processing" list, remove it from there on ack and push it back to the tail
// on nack. Entries stranded in ":processing" by a crashed consumer are not
// requeued automatically; they stay there for manual inspection.
type RedisList struct {
	client redis.Cmdable
	prefix string

	mu     sync.Mutex
	closed bool
}

type redisEnvelope struct {
	ID          string    `json:"id"`
	Body        []byte    `json:"body"`
	Headers     []Header  `json:"headers,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// NewRedisList constructs a redis list messaging client.
func NewRedisList(cfg RedisConfig) (*RedisList, error) {
	if cfg.Client == nil {
		return nil, ErrRedisClientRequired
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "queue:"
	}

	return &RedisList{client: cfg.Client, prefix: prefix}, nil
}

func (r *RedisList) listKey(name string) string       { return r.prefix + name }
func (r *RedisList) processingKey(name string) string { return r.prefix + name + ":processing" }

// Close stops accepting new publishes and consumers.
func (r *RedisList) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

func (r *RedisList) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Publish appends msg to the tail of the destination list.
func (r *RedisList) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrRedisListRequired
	}
	if r.isClosed() {
		return PublishResult{}, io.ErrClosedPipe
	}

	env := redisEnvelope{
		ID:          uuid.NewString(),
		Body:        msg.Body,
		Headers:     msg.Headers,
		PublishedAt: time.Now().UTC(),
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return PublishResult{}, fmt.Errorf("messaging: redis encode: %w", err)
	}

	if err := r.client.RPush(ctx, r.listKey(destination), raw).Err(); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: redis publish: %w", err)
	}

	return PublishResult{
		MessageID: env.ID,
		Topic:     destination,
		Timestamp: env.PublishedAt,
	}, nil
}

// Depth returns the number of messages waiting on destination, excluding in-flight ones.
func (r *RedisList) Depth(ctx context.Context, destination string) (int64, error) {
	if destination == "" {
		return 0, ErrRedisListRequired
	}

	n, err := r.client.LLen(ctx, r.listKey(destination)).Result()
	if err != nil {
		return 0, fmt.Errorf("messaging: redis depth: %w", err)
	}
	return n, nil
}

// Consume pops messages from source until ctx is done.
func (r *RedisList) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrRedisListRequired
	}
	if handler == nil {
		return ErrRedisHandlerRequired
	}
	if r.isClosed() {
		return io.ErrClosedPipe
	}

	co := newConsumeOptions(opts...)
	concurrency := concurrencyOrDefault(co.concurrency, 1)

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	var wg sync.WaitGroup
	for range concurrency {
		wg.Go(func() {
			if err := r.popLoop(consumeCtx, source, handler, co); err != nil {
				trySendErr(errCh, err)
				cancel()
			}
		})
	}

	select {
	case err := <-errCh:
		wg.Wait()
		return fmt.Errorf("messaging: redis consume: %w", err)
	case <-ctx.Done():
		wg.Wait()
		return ctx.Err()
	}
}

func (r *RedisList) popLoop(ctx context.Context, source string, handler Handler, co consumeOptions) error {
	for {
		if ctx.Err() != nil || r.isClosed() {
			return nil
		}

		raw, err := r.client.BLMove(ctx, r.listKey(source), r.processingKey(source), "LEFT", "RIGHT", co.pollTimeout).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		var env redisEnvelope
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			slog.ErrorContext(ctx, "dropping undecodable redis message", "list", source, "error", err)
			r.client.LRem(context.WithoutCancel(ctx), r.processingKey(source), 1, raw)
			continue
		}

		msg := &redisMessage{list: r, source: source, raw: raw, env: env}
		herr := callHandlerWithRecover(ctx, "redis", func() error {
			return handler(ctx, msg)
		})

		if msg.hasResponded() || !co.autoAck {
			continue
		}
		if err := respond(context.WithoutCancel(ctx), msg, herr); err != nil {
			slog.ErrorContext(ctx, "failed to respond redis message", "list", source, "id", env.ID, "error", err)
		}
	}
}

func trySendErr(ch chan<- error, err error) {
	if err == nil {
		return
	}
	select {
	case ch <- err:
	default:
	}
}
