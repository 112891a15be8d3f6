package jwks

import (
	"fmt"
	"net/http"
	"time"
)

// Option is how options for the Provider are set up.
type Option func(*Provider) error

// WithHTTPClient sets a custom HTTP client for JWKS fetches.
// The fetch timeout is enforced via request context regardless of the
// client's own timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) error {
		if c == nil {
			return fmt.Errorf("HTTP client cannot be nil")
		}
		p.client = c
		return nil
	}
}

// WithCacheTTL sets how long a fetched snapshot stays fresh.
// Defaults to DefaultCacheTTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(p *Provider) error {
		if ttl <= 0 {
			return fmt.Errorf("cache TTL must be positive")
		}
		p.cacheTTL = ttl
		return nil
	}
}

// WithFetchTimeout bounds a single JWKS fetch. A fetch exceeding the timeout
// fails fast with ErrKeySetUnavailable rather than hanging.
// Defaults to DefaultFetchTimeout.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(p *Provider) error {
		if timeout <= 0 {
			return fmt.Errorf("fetch timeout must be positive")
		}
		p.fetchTimeout = timeout
		return nil
	}
}

// WithFetchObserver registers a hook invoked after every network fetch with
// its duration and outcome. Used to wire metrics without coupling the
// provider to a metrics backend.
func WithFetchObserver(fn func(duration time.Duration, err error)) Option {
	return func(p *Provider) error {
		if fn == nil {
			return fmt.Errorf("fetch observer cannot be nil")
		}
		p.onFetch = fn
		return nil
	}
}
