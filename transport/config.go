package transport

import (
	"net/http"
	"time"
)

type config struct {
	timeout time.Duration
	tracing bool
	client  *http.Client
}

type Option func(c *config)

func WithTimeout(t time.Duration) Option {
	return func(c *config) {
		c.timeout = t
	}
}

// WithTracing wraps the round tripper with otel http instrumentation.
func WithTracing(v bool) Option {
	return func(c *config) {
		c.tracing = v
	}
}

// WithHTTPClient replaces the pooled default client. Timeout and tracing are applied to a
// copy, cli itself is left untouched.
func WithHTTPClient(cli *http.Client) Option {
	return func(c *config) {
		c.client = cli
	}
}
