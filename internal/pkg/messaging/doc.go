// Package messaging provides a broker-agnostic API for publishing and
// consuming messages.
//
// Business code depends on the Messaging interface and never on a concrete
// broker. A redis list is the default backend; NSQ, NATS and Kafka are
// selected by driver name through NewFromDriver. Brokers that can count their
// backlog also implement DepthReader.
package messaging
