package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBroker struct {
	depth int64
}

func (s *stubBroker) Close() error { return nil }

func (s *stubBroker) Publish(context.Context, string, OutgoingMessage) (PublishResult, error) {
	return PublishResult{}, nil
}

func (s *stubBroker) Consume(context.Context, string, Handler, ...ConsumeOption) error {
	return nil
}

type stubDepthBroker struct{ stubBroker }

func (s *stubDepthBroker) Depth(_ context.Context, destination string) (int64, error) {
	if destination == "" {
		return 0, errors.New("empty")
	}
	return s.depth, nil
}

type recordingMessage struct {
	acked, nacked bool
}

func (m *recordingMessage) Ack(context.Context) error  { m.acked = true; return nil }
func (m *recordingMessage) Nack(context.Context) error { m.nacked = true; return nil }

func TestDepth(t *testing.T) {
	t.Run("unsupported", func(t *testing.T) {
		_, err := Depth(context.Background(), &stubBroker{}, "mail")
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("reader", func(t *testing.T) {
		n, err := Depth(context.Background(), &stubDepthBroker{stubBroker{depth: 7}}, "mail")
		require.NoError(t, err)
		assert.Equal(t, int64(7), n)
	})
}

func TestHeaderValue(t *testing.T) {
	headers := []Header{{Key: "cID", Value: []byte("a")}, {Key: "cID", Value: []byte("b")}}

	v, ok := HeaderValue(headers, "cID")
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = HeaderValue(headers, "missing")
	assert.False(t, ok)
}

func TestConsumeOptions(t *testing.T) {
	co := newConsumeOptions(
		WithConcurrency(4),
		WithAutoAck(true),
		WithGroup("g"),
		WithChannel("c"),
		WithQueueGroup("q"),
		WithMaxInFlight(9),
		WithPollTimeout(0),
		nil,
	)

	assert.Equal(t, 4, co.concurrency)
	assert.True(t, co.autoAck)
	assert.Equal(t, "g", co.group)
	assert.Equal(t, "c", co.channel)
	assert.Equal(t, "q", co.queueGroup)
	assert.Equal(t, 9, co.maxInFlight)
	assert.Equal(t, time.Second, co.pollTimeout)

	assert.Equal(t, 3, concurrencyOrDefault(0, 3))
	assert.Equal(t, 2, concurrencyOrDefault(2, 3))
}

func TestCallHandlerWithRecover(t *testing.T) {
	err := callHandlerWithRecover(context.Background(), "test", func() error {
		panic("boom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	sentinel := errors.New("handler")
	err = callHandlerWithRecover(context.Background(), "test", func() error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestRespond(t *testing.T) {
	ok := &recordingMessage{}
	require.NoError(t, respond(context.Background(), ok, nil))
	assert.True(t, ok.acked)
	assert.False(t, ok.nacked)

	failed := &recordingMessage{}
	require.NoError(t, respond(context.Background(), failed, errors.New("x")))
	assert.True(t, failed.nacked)
	assert.False(t, failed.acked)
}

func TestNewFromDriver(t *testing.T) {
	_, err := NewFromDriver("rabbit", FactoryOptions{})
	assert.ErrorIs(t, err, ErrUnknownDriver)

	_, err = NewFromDriver("", FactoryOptions{})
	assert.ErrorIs(t, err, ErrRedisClientRequired)

	_, err = NewFromDriver(DriverKafka, FactoryOptions{})
	assert.ErrorIs(t, err, ErrKafkaBrokersRequired)

	_, err = NewFromDriver(DriverNATS, FactoryOptions{})
	assert.ErrorIs(t, err, ErrNATSURLRequired)
}
