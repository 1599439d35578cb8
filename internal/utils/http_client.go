// Package utils provides small helpers shared across the application.
package utils

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClientOptions configures [NewHTTPClient]. Zero values keep the resty
// defaults.
type HTTPClientOptions struct {
	BaseURL   string
	Timeout   time.Duration
	Transport http.RoundTripper
	Headers   map[string]string
}

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent client configured from opts. When
// opts.Transport is set every round trip goes through it.
func NewHTTPClient(opts HTTPClientOptions) *HTTPClient {
	c := resty.New()
	if opts.BaseURL != "" {
		c.SetBaseURL(opts.BaseURL)
	}
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	if opts.Transport != nil {
		c.SetTransport(opts.Transport)
	}
	if len(opts.Headers) > 0 {
		c.SetHeaders(opts.Headers)
	}
	return &HTTPClient{Client: c}
}

// BearerRequest starts a request bound to ctx. A non-empty token is sent as
// a bearer Authorization header.
func (c *HTTPClient) BearerRequest(ctx context.Context, token string) *resty.Request {
	req := c.R().SetContext(ctx)
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
