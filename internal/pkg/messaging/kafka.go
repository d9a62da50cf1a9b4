package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	// ErrKafkaTopicRequired is returned when the topic is empty.
	ErrKafkaTopicRequired = errors.New("messaging: kafka topic is required")
	// ErrKafkaHandlerRequired is returned when Consume is called with a nil handler.
	ErrKafkaHandlerRequired = errors.New("messaging: kafka handler is required")
	// ErrKafkaBrokersRequired is returned when no Kafka brokers are configured.
	ErrKafkaBrokersRequired = errors.New("messaging: kafka brokers are required")
	// ErrKafkaGroupRequired is returned when Consume is called without a consumer group.
	ErrKafkaGroupRequired = errors.New("messaging: kafka consumer group is required")
)

// KafkaConfig configures the Kafka implementation.
type KafkaConfig struct {
	// Brokers lists Kafka broker addresses.
	Brokers []string

	// Dialer configures broker connections.
	Dialer *kafka.Dialer
}

// Kafka is a messaging implementation backed by kafka-go.
//
// Offsets are committed on ack. A nack leaves the offset uncommitted so the
// message is redelivered after a rebalance or restart.
type Kafka struct {
	brokers []string
	dialer  *kafka.Dialer

	mu      sync.Mutex
	writers map[string]*kafka.Writer
	readers []*kafka.Reader
	closed  bool
}

// NewKafka constructs a Kafka messaging client.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}

	return &Kafka{
		brokers: append([]string{}, cfg.Brokers...),
		dialer:  cfg.Dialer,
		writers: map[string]*kafka.Writer{},
	}, nil
}

// Close shuts down all Kafka readers and writers.
func (k *Kafka) Close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	writers := k.writers
	readers := k.readers
	k.writers, k.readers = nil, nil
	k.mu.Unlock()

	var closeErr error
	for _, r := range readers {
		closeErr = errors.Join(closeErr, r.Close())
	}
	for _, w := range writers {
		closeErr = errors.Join(closeErr, w.Close())
	}
	return closeErr
}

// Publish sends a message to a Kafka topic.
func (k *Kafka) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrKafkaTopicRequired
	}

	writer, err := k.writer(destination)
	if err != nil {
		return PublishResult{}, err
	}

	kmsg := kafka.Message{Key: msg.Key, Value: msg.Body, Time: time.Now()}
	for _, h := range msg.Headers {
		if h.Key == "" {
			continue
		}
		kmsg.Headers = append(kmsg.Headers, kafka.Header{Key: h.Key, Value: h.Value})
	}

	if err := writer.WriteMessages(ctx, kmsg); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: kafka publish: %w", err)
	}

	return PublishResult{Topic: destination, Timestamp: kmsg.Time}, nil
}

// Consume reads source as part of the configured consumer group until ctx is done.
func (k *Kafka) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrKafkaTopicRequired
	}
	if handler == nil {
		return ErrKafkaHandlerRequired
	}

	co := newConsumeOptions(opts...)
	if co.group == "" {
		return ErrKafkaGroupRequired
	}
	concurrency := concurrencyOrDefault(co.concurrency, 1)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  k.brokers,
		GroupID:  co.group,
		Topic:    source,
		MaxBytes: 10e6,
		Dialer:   k.dialer,
	})
	if err := k.track(reader); err != nil {
		return errors.Join(err, reader.Close())
	}
	defer k.untrack(reader)

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	msgCh := make(chan kafka.Message)
	errCh := make(chan error, 1)

	go func() {
		defer close(msgCh)
		for {
			m, err := reader.FetchMessage(consumeCtx)
			if err != nil {
				trySendErr(errCh, err)
				return
			}
			select {
			case msgCh <- m:
			case <-consumeCtx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for range concurrency {
		wg.Go(func() {
			for m := range msgCh {
				wrapped := &kafkaMessage{reader: reader, msg: m}
				herr := callHandlerWithRecover(consumeCtx, "kafka", func() error {
					return handler(consumeCtx, wrapped)
				})
				if wrapped.responded.Load() || !co.autoAck {
					continue
				}
				if err := respond(consumeCtx, wrapped, herr); err != nil {
					trySendErr(errCh, err)
					cancel()
					return
				}
			}
		})
	}

	var waitErr error
	select {
	case err := <-errCh:
		cancel()
		wg.Wait()
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			waitErr = fmt.Errorf("messaging: kafka consume: %w", err)
		} else {
			waitErr = err
		}
	case <-ctx.Done():
		wg.Wait()
		waitErr = ctx.Err()
	}

	return errors.Join(waitErr, reader.Close())
}

func (k *Kafka) writer(topic string) (*kafka.Writer, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil, io.ErrClosedPipe
	}
	if w, ok := k.writers[topic]; ok {
		return w, nil
	}

	w := &kafka.Writer{
		Addr:     kafka.TCP(k.brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	if k.dialer != nil {
		w.Transport = &kafka.Transport{
			Dial:     k.dialer.DialFunc,
			SASL:     k.dialer.SASLMechanism,
			TLS:      k.dialer.TLS,
			ClientID: k.dialer.ClientID,
		}
	}
	k.writers[topic] = w
	return w, nil
}

func (k *Kafka) track(reader *kafka.Reader) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return io.ErrClosedPipe
	}
	k.readers = append(k.readers, reader)
	return nil
}

func (k *Kafka) untrack(reader *kafka.Reader) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.readers = slices.DeleteFunc(k.readers, func(r *kafka.Reader) bool { return r == reader })
}

type kafkaMessage struct {
	reader *kafka.Reader
	msg    kafka.Message

	responded atomic.Bool
}

func (m *kafkaMessage) Body() []byte         { return m.msg.Value }
func (m *kafkaMessage) Topic() string        { return m.msg.Topic }
func (m *kafkaMessage) Timestamp() time.Time { return m.msg.Time }

func (m *kafkaMessage) ID() string {
	return fmt.Sprintf("%s/%d/%d", m.msg.Topic, m.msg.Partition, m.msg.Offset)
}

func (m *kafkaMessage) Headers() []Header {
	out := make([]Header, 0, len(m.msg.Headers))
	for _, h := range m.msg.Headers {
		out = append(out, Header{Key: h.Key, Value: h.Value})
	}
	return out
}

func (m *kafkaMessage) Ack(ctx context.Context) error {
	if m.responded.Swap(true) {
		return nil
	}
	return m.reader.CommitMessages(ctx, m.msg)
}

func (m *kafkaMessage) Nack(context.Context) error {
	m.responded.Store(true)
	return nil
}
