package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned when a feature is not supported by the selected broker.
var ErrUnsupported = errors.New("messaging: unsupported operation")

// Messaging is a broker-agnostic client that can publish and consume messages.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher publishes messages to a destination (topic/subject/list).
type Publisher interface {
	// Publish sends a message to the destination. It must be safe for concurrent use.
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer consumes messages from a source.
type Consumer interface {
	// Consume blocks, delivering messages to handler until ctx is done.
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// DepthReader is implemented by brokers that can report how many messages are
// waiting on a destination.
type DepthReader interface {
	Depth(ctx context.Context, destination string) (int64, error)
}

// Depth asks m for the backlog of destination, or returns ErrUnsupported.
func Depth(ctx context.Context, m Messaging, destination string) (int64, error) {
	dr, ok := m.(DepthReader)
	if !ok {
		return 0, ErrUnsupported
	}
	return dr.Depth(ctx, destination)
}

// Handler processes a received message.
//
// With auto-ack enabled a nil error acks and a non-nil error nacks.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage represents a broker-agnostic message to be published.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte

	// Key is used by Kafka for partitioning.
	Key []byte

	// Headers support arbitrary binary values and duplicate keys.
	Headers []Header
}

// Header is a key/value pair used for message headers.
type Header struct {
	Key   string `json:"key"`
	Value []byte `json:"value"`
}

// PublishResult carries optional broker-specific publish metadata.
type PublishResult struct {
	// MessageID is the broker-assigned (or client-generated) message ID.
	MessageID string

	// Topic is the destination used for publishing.
	Topic string

	// Timestamp is when the broker accepted the message.
	Timestamp time.Time
}

// Message is a broker-agnostic received message.
type Message interface {
	Body() []byte
	Headers() []Header

	ID() string
	Topic() string
	Timestamp() time.Time

	// Ack acknowledges successful processing.
	Ack(ctx context.Context) error
}

// Nackable can request a message redelivery.
type Nackable interface {
	Nack(ctx context.Context) error
}

// HeaderValue returns the first header named key.
func HeaderValue(headers []Header, key string) (string, bool) {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value), true
		}
	}
	return "", false
}
