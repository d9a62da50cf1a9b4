package messaging

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/elasticmail/internal/pkg/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisList(t *testing.T) (*RedisList, *redis.Client) {
	t.Helper()

	client := testkit.Redis(t)
	list, err := NewRedisList(RedisConfig{Client: client, Prefix: testkit.Prefix(t)})
	require.NoError(t, err)
	return list, client
}

// consumeN runs Consume until handle has been called n times, then stops it.
func consumeN(t *testing.T, list *RedisList, source string, n int, handle func(Message) error, opts ...ConsumeOption) []string {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu     sync.Mutex
		bodies []string
	)
	handler := func(_ context.Context, msg Message) error {
		err := handle(msg)

		mu.Lock()
		bodies = append(bodies, string(msg.Body()))
		if len(bodies) == n {
			cancel()
		}
		mu.Unlock()
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- list.Consume(ctx, source, handler, append([]ConsumeOption{WithPollTimeout(100 * time.Millisecond)}, opts...)...)
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(10 * time.Second):
		t.Fatal("consumer did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	return bodies
}

func TestRedisList_PublishDepthAndFIFO(t *testing.T) {
	list, client := newTestRedisList(t)
	ctx := context.Background()

	for _, body := range []string{"first", "second", "third"} {
		res, err := list.Publish(ctx, "mails", OutgoingMessage{
			Body:    []byte(body),
			Headers: []Header{{Key: "cID", Value: []byte("cid-" + body)}},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, res.MessageID)
		assert.Equal(t, "mails", res.Topic)
	}

	n, err := list.Depth(ctx, "mails")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	var cIDs []string
	got := consumeN(t, list, "mails", 3, func(msg Message) error {
		v, _ := HeaderValue(msg.Headers(), "cID")
		cIDs = append(cIDs, v)
		assert.Equal(t, "mails", msg.Topic())
		return nil
	}, WithAutoAck(true))

	assert.Equal(t, []string{"first", "second", "third"}, got)
	assert.Equal(t, []string{"cid-first", "cid-second", "cid-third"}, cIDs)

	n, err = list.Depth(ctx, "mails")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, client.LLen(ctx, list.processingKey("mails")).Val())
}

func TestRedisList_NackRequeuesAtTail(t *testing.T) {
	list, client := newTestRedisList(t)
	ctx := context.Background()

	for _, body := range []string{"a", "b"} {
		_, err := list.Publish(ctx, "mails", OutgoingMessage{Body: []byte(body)})
		require.NoError(t, err)
	}

	failedOnce := false
	got := consumeN(t, list, "mails", 3, func(msg Message) error {
		if string(msg.Body()) == "a" && !failedOnce {
			failedOnce = true
			return errors.New("try later")
		}
		return nil
	}, WithAutoAck(true))

	assert.Equal(t, []string{"a", "b", "a"}, got)
	assert.Zero(t, client.LLen(ctx, list.listKey("mails")).Val())
	assert.Zero(t, client.LLen(ctx, list.processingKey("mails")).Val())
}

func TestRedisList_UnansweredMessageStaysInProcessing(t *testing.T) {
	list, client := newTestRedisList(t)
	ctx := context.Background()

	_, err := list.Publish(ctx, "mails", OutgoingMessage{Body: []byte("x")})
	require.NoError(t, err)

	got := consumeN(t, list, "mails", 1, func(Message) error { return nil })
	require.Equal(t, []string{"x"}, got)

	n, err := list.Depth(ctx, "mails")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, int64(1), client.LLen(ctx, list.processingKey("mails")).Val())
}

func TestRedisList_DropsUndecodableEntries(t *testing.T) {
	list, client := newTestRedisList(t)
	ctx := context.Background()

	require.NoError(t, client.RPush(ctx, list.listKey("mails"), "not-json").Err())
	_, err := list.Publish(ctx, "mails", OutgoingMessage{Body: []byte("ok")})
	require.NoError(t, err)

	got := consumeN(t, list, "mails", 1, func(Message) error { return nil }, WithAutoAck(true))

	assert.Equal(t, []string{"ok"}, got)
	assert.Zero(t, client.LLen(ctx, list.processingKey("mails")).Val())
}

func TestRedisList_Validation(t *testing.T) {
	_, err := NewRedisList(RedisConfig{})
	assert.ErrorIs(t, err, ErrRedisClientRequired)

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = client.Close() })

	list, err := NewRedisList(RedisConfig{Client: client})
	require.NoError(t, err)
	assert.Equal(t, "queue:mails", list.listKey("mails"))

	ctx := context.Background()
	_, err = list.Publish(ctx, "", OutgoingMessage{})
	assert.ErrorIs(t, err, ErrRedisListRequired)
	_, err = list.Depth(ctx, "")
	assert.ErrorIs(t, err, ErrRedisListRequired)
	assert.ErrorIs(t, list.Consume(ctx, "", func(context.Context, Message) error { return nil }), ErrRedisListRequired)
	assert.ErrorIs(t, list.Consume(ctx, "mails", nil), ErrRedisHandlerRequired)

	require.NoError(t, list.Close())
	_, err = list.Publish(ctx, "mails", OutgoingMessage{})
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assert.ErrorIs(t, list.Consume(ctx, "mails", func(context.Context, Message) error { return nil }), io.ErrClosedPipe)
}
