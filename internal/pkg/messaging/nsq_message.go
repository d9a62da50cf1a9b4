package messaging

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	nsq "github.com/nsqio/go-nsq"
)

type nsqMessage struct {
	topic string
	msg   *nsq.Message

	responded atomic.Bool
}

func (m *nsqMessage) hasResponded() bool { return m.responded.Load() }

func (m *nsqMessage) Body() []byte      { return m.msg.Body }
func (m *nsqMessage) Headers() []Header { return nil }
func (m *nsqMessage) ID() string        { return fmt.Sprintf("%x", m.msg.ID) }
func (m *nsqMessage) Topic() string     { return m.topic }

func (m *nsqMessage) Timestamp() time.Time {
	return time.Unix(0, m.msg.Timestamp)
}

func (m *nsqMessage) Ack(context.Context) error {
	if m.responded.Swap(true) {
		return nil
	}
	m.msg.Finish()
	return nil
}

// Nack requeues with nsqd's default backoff.
func (m *nsqMessage) Nack(context.Context) error {
	if m.responded.Swap(true) {
		return nil
	}
	m.msg.Requeue(-1)
	return nil
}
