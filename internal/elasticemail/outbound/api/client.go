package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"github.com/shandysiswandi/elasticmail/internal/pkg/cache"
	"github.com/shandysiswandi/elasticmail/internal/pkg/clock"
	"github.com/shandysiswandi/elasticmail/internal/pkg/config"
	"github.com/shandysiswandi/elasticmail/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultBaseURL is the provider mailer API root.
	DefaultBaseURL = "https://api.elasticemail.com/mailer/"

	// CacheTTL is how long a live response is served from cache.
	CacheTTL = 5 * time.Minute

	cacheKeyPrefix     = "elastic_email_api_call::"
	unauthorizedPrefix = "Unauthorized:"
	sendPath           = "send"
)

// CacheKey returns the cache key of an endpoint path.
func CacheKey(path string) string {
	return cacheKeyPrefix + path
}

type Dependency struct {
	Config     config.Config
	Cache      cache.Cache
	Clock      clock.Clocker
	HTTPClient *http.Client
	Instrument instrument.Instrumentation

	// BaseURL overrides DefaultBaseURL. It must end with a slash.
	BaseURL string
}

// Client talks to the provider HTTP API.
type Client struct {
	cfg     config.Config
	cache   cache.Cache
	clock   clock.Clocker
	http    *http.Client
	ins     instrument.Instrumentation
	baseURL string

	calls metric.Int64Counter
}

func NewClient(dep Dependency) *Client {
	baseURL := dep.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	httpClient := dep.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	calls, err := dep.Instrument.Meter("elasticemail.outbound.api").Int64Counter(
		"elasticemail.api.calls",
		metric.WithDescription("Number of provider API calls, by endpoint and cache result"),
	)
	if err != nil {
		slog.Error("failed to create api call counter", "error", err)
	}

	return &Client{
		cfg:     dep.Config,
		cache:   dep.Cache,
		clock:   dep.Clock,
		http:    httpClient,
		ins:     dep.Instrument,
		baseURL: baseURL,
		calls:   calls,
	}
}

// Credentials reads the configured credentials. They are read on every call so
// a config reload is picked up without restart.
func (c *Client) Credentials() entity.Credentials {
	return entity.Credentials{
		Username: c.cfg.GetString("elasticemail.username"),
		APIKey:   c.cfg.GetString("elasticemail.api_key"),
	}
}

func (c *Client) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("elasticemail.outbound.api").Start(ctx, name)
}

func (c *Client) endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (c *Client) countCall(ctx context.Context, path, result string) {
	if c.calls == nil {
		return
	}
	c.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("endpoint", path),
		attribute.String("cache", result),
	))
}

// fetch returns the payload for path, from cache when allowed and fresh.
// Every successful live fetch refreshes the cache.
func (c *Client) fetch(ctx context.Context, path string, params *entity.Params, useCache bool) ([]byte, error) {
	key := CacheKey(path)

	if useCache {
		entry, found, err := c.cache.Get(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "failed to read api response cache", "key", key, "error", err)
		}
		if found && entry.Fresh(c.clock.Now()) {
			c.countCall(ctx, path, "hit")
			return entry.Payload, nil
		}
	}

	c.countCall(ctx, path, "miss")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %w", entity.ErrTransport, path, err)
	}

	payload, err := c.do(req)
	if err != nil {
		slog.ErrorContext(ctx, "elastic email api call failed", "endpoint", path, "error", err)
		return nil, fmt.Errorf("%w: %s: %w", entity.ErrTransport, path, err)
	}

	if err := c.cache.Set(ctx, cache.Entry{
		Key:       key,
		Payload:   payload,
		ExpiresAt: c.clock.Now().Add(CacheTTL),
	}); err != nil {
		slog.WarnContext(ctx, "failed to write api response cache", "key", key, "error", err)
	}

	return payload, nil
}

// Send posts the ordered form to the send endpoint and returns the raw answer.
func (c *Client) Send(ctx context.Context, form *entity.Params) (_ string, err error) {
	ctx, span := c.startSpan(ctx, "Send")
	defer func() { c.endSpan(span, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: build send request: %w", entity.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	payload, err := c.do(req)
	if err != nil {
		slog.ErrorContext(ctx, "elastic email send call failed", "error", err)
		return "", fmt.Errorf("%w: send: %w", entity.ErrTransport, err)
	}

	return string(payload), nil
}

var errUnexpectedStatus = errors.New("unexpected status")

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w %d: %s", errUnexpectedStatus, resp.StatusCode, bytes.TrimSpace(body))
	}

	return body, nil
}
