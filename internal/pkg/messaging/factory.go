package messaging

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DriverRedis selects the redis list backend.
	DriverRedis = "redis"
	// DriverNSQ selects the NSQ backend.
	DriverNSQ = "nsq"
	// DriverNATS selects the NATS backend.
	DriverNATS = "nats"
	// DriverKafka selects the Kafka backend.
	DriverKafka = "kafka"
)

// ErrUnknownDriver indicates an unsupported messaging driver.
var ErrUnknownDriver = errors.New("messaging: unknown driver")

// FactoryOptions groups config for supported messaging backends.
type FactoryOptions struct {
	Redis RedisConfig
	NSQ   NSQConfig
	NATS  NATSConfig
	Kafka KafkaConfig
}

// NewFromDriver constructs a Messaging implementation by driver name.
// An empty driver selects redis.
func NewFromDriver(driver string, opts FactoryOptions) (Messaging, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverRedis:
		return NewRedisList(opts.Redis)
	case DriverNSQ:
		return NewNSQ(opts.NSQ)
	case DriverNATS:
		return NewNATS(opts.NATS)
	case DriverKafka:
		return NewKafka(opts.Kafka)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
