package messaging

import "time"

type consumeOptions struct {
	// concurrency is the number of handler goroutines.
	concurrency int

	// autoAck acks on nil error and nacks otherwise.
	autoAck bool

	// group is the Kafka consumer group.
	group string

	// channel is the NSQ channel.
	channel string

	// queueGroup is the NATS queue group.
	queueGroup string

	// maxInFlight bounds NSQ unacknowledged messages.
	maxInFlight int

	// pollTimeout bounds one blocking pop on the redis list driver.
	pollTimeout time.Duration
}

// ConsumeOption configures consumer behavior.
type ConsumeOption func(*consumeOptions)

func newConsumeOptions(opts ...ConsumeOption) consumeOptions {
	co := consumeOptions{pollTimeout: time.Second}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&co)
	}
	return co
}

// WithConcurrency sets how many handler goroutines process messages in parallel.
func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

// WithGroup sets the consumer group name (Kafka).
func WithGroup(group string) ConsumeOption {
	return func(o *consumeOptions) { o.group = group }
}

// WithChannel sets the channel name (NSQ).
func WithChannel(channel string) ConsumeOption {
	return func(o *consumeOptions) { o.channel = channel }
}

// WithQueueGroup sets the queue group name (NATS).
func WithQueueGroup(queueGroup string) ConsumeOption {
	return func(o *consumeOptions) { o.queueGroup = queueGroup }
}

// WithAutoAck controls whether the wrapper acks/nacks after the handler returns.
func WithAutoAck(autoAck bool) ConsumeOption {
	return func(o *consumeOptions) { o.autoAck = autoAck }
}

// WithMaxInFlight limits the number of unacknowledged messages in flight (NSQ).
func WithMaxInFlight(maxInFlight int) ConsumeOption {
	return func(o *consumeOptions) { o.maxInFlight = maxInFlight }
}

// WithPollTimeout sets how long one blocking pop waits (redis).
func WithPollTimeout(d time.Duration) ConsumeOption {
	return func(o *consumeOptions) {
		if d > 0 {
			o.pollTimeout = d
		}
	}
}

func concurrencyOrDefault(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}
