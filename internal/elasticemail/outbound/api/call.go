package api

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail/entity"
	"go.opentelemetry.io/otel/attribute"
)

// Call describes one read endpoint: its path, the parameters fixed at
// construction and the parser for its payload.
type Call[T any] struct {
	path   string
	creds  entity.Credentials
	params *entity.Params
	parse  func(payload []byte) (T, error)
}

// NewCall builds a call whose parameters start with creds.
func NewCall[T any](path string, creds entity.Credentials, parse func([]byte) (T, error)) Call[T] {
	return Call[T]{
		path:   path,
		creds:  creds,
		params: entity.NewParams(creds),
		parse:  parse,
	}
}

func (c Call[T]) Path() string { return c.path }

// Params exposes the ordered parameters.
func (c Call[T]) Params() *entity.Params { return c.params }

// Do runs call against the provider, honoring the cache when useCache is set.
func Do[T any](ctx context.Context, c *Client, call Call[T], useCache bool) (res T, err error) {
	ctx, span := c.startSpan(ctx, "Do")
	defer func() { c.endSpan(span, err) }()

	span.SetAttributes(
		attribute.String("endpoint", call.path),
		attribute.Bool("use_cache", useCache),
	)

	if call.path == "" {
		return res, fmt.Errorf("%w: No API call has been specified", entity.ErrConfiguration)
	}

	if !call.creds.Valid() {
		return res, fmt.Errorf("%w: Invalid API credentials for: %s", entity.ErrAuth, call.path)
	}

	payload, err := c.fetch(ctx, call.path, call.params, useCache)
	if err != nil {
		return res, err
	}

	if bytes.HasPrefix(payload, []byte(unauthorizedPrefix)) {
		return res, fmt.Errorf("%w: Elastic Email: Invalid API credentials set", entity.ErrAuth)
	}

	if call.parse == nil {
		return res, fmt.Errorf("%w: no parser for %s", entity.ErrConfiguration, call.path)
	}

	return call.parse(payload)
}

// AccountDetails fetches account-details with the configured credentials.
func (c *Client) AccountDetails(ctx context.Context, useCache bool) (entity.AccountDetails, error) {
	return Do(ctx, c, AccountDetailsCall(c.Credentials()), useCache)
}

// ChannelList fetches channel/list with the configured credentials.
func (c *Client) ChannelList(ctx context.Context, useCache bool) (entity.ChannelList, error) {
	return Do(ctx, c, ChannelListCall(c.Credentials()), useCache)
}

// ActivityLog fetches status/log for filter with the configured credentials.
func (c *Client) ActivityLog(ctx context.Context, filter entity.ActivityLogFilter, useCache bool) ([]entity.ActivityLogRow, error) {
	return Do(ctx, c, ActivityLogCall(c.Credentials(), filter), useCache)
}
