package client

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Client during construction in New.
//
// Options run before the metrics and request-id wrappers are installed, so
// transport options end up underneath them.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// Prefer per-request context deadlines; this is a coarse bound on a single
// request including connection setup and reading the body. Must be > 0.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithTransport replaces the base RoundTripper. Used by tests and by callers
// that need custom TLS or proxies.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) error {
		if rt == nil {
			return fmt.Errorf("transport cannot be nil")
		}
		c.http.Transport = rt
		return nil
	}
}

// WithDebugLogging wraps the transport so each request/response is dumped to
// the zerolog global logger when enabled is true. Dumps include passwords in
// login payloads; keep it off outside development.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if !enabled {
			return nil
		}
		if _, already := c.http.Transport.(*debugTransport); already {
			return nil
		}
		c.http.Transport = &debugTransport{base: c.http.Transport}
		return nil
	}
}
