package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	nsq "github.com/nsqio/go-nsq"
)

var (
	// ErrNSQTopicRequired is returned when the topic is empty.
	ErrNSQTopicRequired = errors.New("messaging: nsq topic is required")
	// ErrNSQChannelRequired is returned when the channel is empty.
	ErrNSQChannelRequired = errors.New("messaging: nsq channel is required")
	// ErrNSQHandlerRequired is returned when Consume is called with a nil handler.
	ErrNSQHandlerRequired = errors.New("messaging: nsq handler is required")
	// ErrNSQProducerAddrRequired is returned when the producer address is missing.
	ErrNSQProducerAddrRequired = errors.New("messaging: nsq producer address is required")
	// ErrNSQConsumerAddrsRequired is returned when no NSQD/lookupd consumer addresses are configured.
	ErrNSQConsumerAddrsRequired = errors.New("messaging: nsq consumer nsqd/lookupd addresses are required")
)

// NSQConfig configures the NSQ implementation.
type NSQConfig struct {
	// ProducerAddr is the NSQD TCP address for publishing.
	ProducerAddr string

	// ConsumerNSQDAddrs lists NSQD addresses for consumers.
	ConsumerNSQDAddrs []string
	// ConsumerLookupdAddrs lists lookupd addresses for consumers.
	ConsumerLookupdAddrs []string

	// StatsAddr is the NSQD HTTP address (host:4151) used to read topic depth.
	// Depth is unsupported when empty.
	StatsAddr string
	// HTTPClient is used for stats requests. Defaults to a client with a 5s timeout.
	HTTPClient *http.Client

	// ProducerConfig overrides the default producer config.
	ProducerConfig *nsq.Config
	// ConsumerConfig overrides the default consumer config.
	ConsumerConfig *nsq.Config
}

// NSQ is a messaging implementation backed by NSQ.
type NSQ struct {
	producer *nsq.Producer

	consumerNSQDAddrs    []string
	consumerLookupdAddrs []string
	consumerConfig       *nsq.Config

	statsAddr  string
	httpClient *http.Client

	mu        sync.Mutex
	consumers []*nsq.Consumer
	closed    bool
}

// nsqStats mirrors the part of nsqd's /stats?format=json answer we read.
type nsqStats struct {
	Topics []struct {
		TopicName string `json:"topic_name"`
		Depth     int64  `json:"depth"`
		Channels  []struct {
			ChannelName string `json:"channel_name"`
			Depth       int64  `json:"depth"`
		} `json:"channels"`
	} `json:"topics"`
}

// NewNSQ constructs an NSQ messaging client.
func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	var producer *nsq.Producer
	if cfg.ProducerAddr != "" {
		pcfg := cfg.ProducerConfig
		if pcfg == nil {
			pcfg = nsq.NewConfig()
		}

		p, err := nsq.NewProducer(cfg.ProducerAddr, pcfg)
		if err != nil {
			return nil, fmt.Errorf("messaging: nsq new producer: %w", err)
		}
		p.SetLoggerLevel(nsq.LogLevelError)

		producer = p
	}

	ccfg := cfg.ConsumerConfig
	if ccfg == nil {
		ccfg = nsq.NewConfig()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}

	return &NSQ{
		producer: producer,

		consumerNSQDAddrs:    append([]string{}, cfg.ConsumerNSQDAddrs...),
		consumerLookupdAddrs: append([]string{}, cfg.ConsumerLookupdAddrs...),
		consumerConfig:       ccfg,

		statsAddr:  cfg.StatsAddr,
		httpClient: httpClient,
	}, nil
}

// Close stops NSQ consumers and the producer.
func (n *NSQ) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	consumers := append([]*nsq.Consumer{}, n.consumers...)
	n.mu.Unlock()

	for _, c := range consumers {
		stopNSQConsumer(c)
	}

	if n.producer != nil {
		n.producer.Stop()
	}
	return nil
}

// Publish sends a message to an NSQ topic. Headers are not carried by NSQ.
func (n *NSQ) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrNSQTopicRequired
	}
	if n.producer == nil {
		return PublishResult{}, ErrNSQProducerAddrRequired
	}

	if err := n.producer.Publish(destination, msg.Body); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: nsq publish: %w", err)
	}

	return PublishResult{
		Topic:     destination,
		Timestamp: time.Now(),
	}, nil
}

// Depth reads the topic backlog plus every channel backlog from nsqd's HTTP stats.
func (n *NSQ) Depth(ctx context.Context, destination string) (int64, error) {
	if n.statsAddr == "" {
		return 0, ErrUnsupported
	}
	if destination == "" {
		return 0, ErrNSQTopicRequired
	}

	u := url.URL{
		Scheme:   "http",
		Host:     n.statsAddr,
		Path:     "/stats",
		RawQuery: url.Values{"format": {"json"}, "topic": {destination}}.Encode(),
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("messaging: nsq stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("messaging: nsq stats: unexpected status %d", resp.StatusCode)
	}

	var stats nsqStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return 0, fmt.Errorf("messaging: nsq stats decode: %w", err)
	}

	var depth int64
	for _, topic := range stats.Topics {
		if topic.TopicName != destination {
			continue
		}
		depth += topic.Depth
		for _, ch := range topic.Channels {
			depth += ch.Depth
		}
	}
	return depth, nil
}

// Consume starts consuming messages from an NSQ topic/channel.
func (n *NSQ) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrNSQTopicRequired
	}
	if handler == nil {
		return ErrNSQHandlerRequired
	}
	if len(n.consumerNSQDAddrs) == 0 && len(n.consumerLookupdAddrs) == 0 {
		return ErrNSQConsumerAddrsRequired
	}

	co := newConsumeOptions(opts...)
	if co.channel == "" {
		return ErrNSQChannelRequired
	}
	concurrency := concurrencyOrDefault(co.concurrency, 1)

	ccfg := *n.consumerConfig
	if co.maxInFlight > 0 {
		ccfg.MaxInFlight = co.maxInFlight
	} else if ccfg.MaxInFlight < concurrency {
		ccfg.MaxInFlight = concurrency
	}

	consumer, err := nsq.NewConsumer(source, co.channel, &ccfg)
	if err != nil {
		return fmt.Errorf("messaging: nsq new consumer: %w", err)
	}
	consumer.SetLoggerLevel(nsq.LogLevelError)
	consumer.AddConcurrentHandlers(n.makeNSQHandler(ctx, source, handler, co.autoAck), concurrency)

	if err := n.addNSQConsumer(consumer); err != nil {
		stopNSQConsumer(consumer)
		return err
	}

	if err := n.connectNSQConsumer(consumer); err != nil {
		stopNSQConsumer(consumer)
		return err
	}

	select {
	case <-ctx.Done():
		stopNSQConsumer(consumer)
		return ctx.Err()
	case <-consumer.StopChan:
		return nil
	}
}

func (n *NSQ) addNSQConsumer(consumer *nsq.Consumer) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return io.ErrClosedPipe
	}
	n.consumers = append(n.consumers, consumer)
	return nil
}

func (n *NSQ) connectNSQConsumer(consumer *nsq.Consumer) error {
	if len(n.consumerLookupdAddrs) > 0 {
		if err := consumer.ConnectToNSQLookupds(n.consumerLookupdAddrs); err != nil {
			return fmt.Errorf("messaging: nsq connect lookupd: %w", err)
		}
		return nil
	}

	if err := consumer.ConnectToNSQDs(n.consumerNSQDAddrs); err != nil {
		return fmt.Errorf("messaging: nsq connect nsqd: %w", err)
	}
	return nil
}

func (n *NSQ) makeNSQHandler(ctx context.Context, topic string, handler Handler, autoAck bool) nsq.HandlerFunc {
	return func(m *nsq.Message) error {
		m.DisableAutoResponse()

		wrapped := &nsqMessage{topic: topic, msg: m}
		herr := callHandlerWithRecover(ctx, "nsq", func() error {
			return handler(ctx, wrapped)
		})

		if wrapped.hasResponded() || !autoAck {
			return herr
		}
		return respond(context.WithoutCancel(ctx), wrapped, herr)
	}
}

func stopNSQConsumer(consumer *nsq.Consumer) {
	consumer.Stop()
	<-consumer.StopChan
}
