package messaging

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisMessage struct {
	list   *RedisList
	source string
	raw    string
	env    redisEnvelope

	responded atomic.Bool
}

func (m *redisMessage) hasResponded() bool { return m.responded.Load() }

func (m *redisMessage) Body() []byte         { return m.env.Body }
func (m *redisMessage) Headers() []Header    { return m.env.Headers }
func (m *redisMessage) ID() string           { return m.env.ID }
func (m *redisMessage) Topic() string        { return m.source }
func (m *redisMessage) Timestamp() time.Time { return m.env.PublishedAt }

// Ack drops the message from the processing list.
func (m *redisMessage) Ack(ctx context.Context) error {
	if m.responded.Swap(true) {
		return nil
	}
	return m.list.client.LRem(ctx, m.list.processingKey(m.source), 1, m.raw).Err()
}

// Nack moves the message back to the tail of the queue.
func (m *redisMessage) Nack(ctx context.Context) error {
	if m.responded.Swap(true) {
		return nil
	}
	_, err := m.list.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, m.list.processingKey(m.source), 1, m.raw)
		pipe.RPush(ctx, m.list.listKey(m.source), m.raw)
		return nil
	})
	return err
}
