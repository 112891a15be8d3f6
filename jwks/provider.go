package jwks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"golang.org/x/sync/singleflight"
)

// ErrKeySetUnavailable is returned when the realm's JWKS endpoint could not
// be reached or returned an unusable response. A failed fetch never discards
// a previously cached snapshot.
var ErrKeySetUnavailable = errors.New("key set unavailable")

const (
	// DefaultFetchTimeout bounds a single JWKS fetch.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultCacheTTL is how long a fetched snapshot stays fresh when no
	// TTL is configured.
	DefaultCacheTTL = time.Hour

	// Response bodies larger than this are truncated. A JWKS is typically
	// well under 10KB.
	maxResponseSize = 1 * 1024 * 1024
)

// Provider fetches and caches the signing keys published at a JWKS endpoint.
//
// Reads are lock-free in the common case; the fetch-and-swap path is
// deduplicated so that at most one network fetch is in flight at a time and
// concurrent callers share its result. One Provider serves one endpoint; do
// not share a Provider across distinct realm configurations.
type Provider struct {
	jwksURI      string
	client       *http.Client
	cacheTTL     time.Duration
	fetchTimeout time.Duration
	onFetch      func(duration time.Duration, err error)
	clock        func() time.Time

	mu      sync.RWMutex
	current *KeySet

	group singleflight.Group
}

// NewProvider builds a Provider for the given JWKS endpoint URL.
//
// Example:
//
//	provider, err := jwks.NewProvider(
//	    cfg.JWKSURI(),
//	    jwks.WithCacheTTL(cfg.JWKSCacheTTL()),
//	)
func NewProvider(jwksURI string, opts ...Option) (*Provider, error) {
	if jwksURI == "" {
		return nil, errors.New("JWKS URI is required")
	}

	p := &Provider{
		jwksURI:      jwksURI,
		client:       &http.Client{},
		cacheTTL:     DefaultCacheTTL,
		fetchTimeout: DefaultFetchTimeout,
		clock:        time.Now,
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return p, nil
}

// GetKeys returns a non-expired key set snapshot, fetching fresh keys from
// the endpoint only when nothing is cached or the cached snapshot's TTL has
// passed.
func (p *Provider) GetKeys(ctx context.Context) (*KeySet, error) {
	if ks := p.cached(); ks != nil && !ks.Expired(p.clock()) {
		return ks, nil
	}
	return p.refresh(ctx, false)
}

// ForceRefresh unconditionally re-fetches the key set and replaces the
// cached snapshot, regardless of its TTL. Callers racing an in-flight fetch
// wait for and share its result instead of issuing a duplicate request.
func (p *Provider) ForceRefresh(ctx context.Context) (*KeySet, error) {
	return p.refresh(ctx, true)
}

func (p *Provider) cached() *KeySet {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

func (p *Provider) refresh(ctx context.Context, force bool) (*KeySet, error) {
	v, err, _ := p.group.Do("fetch", func() (interface{}, error) {
		// Another caller may have completed a fetch while we waited.
		if !force {
			if ks := p.cached(); ks != nil && !ks.Expired(p.clock()) {
				return ks, nil
			}
		}

		ks, err := p.fetch(ctx)
		if err != nil {
			// The previous snapshot, if any, stays in place.
			return nil, err
		}

		p.mu.Lock()
		p.current = ks
		p.mu.Unlock()

		return ks, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*KeySet), nil
}

func (p *Provider) fetch(ctx context.Context) (*KeySet, error) {
	ctx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	start := time.Now()
	set, err := p.doFetch(ctx)
	if p.onFetch != nil {
		p.onFetch(time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}

	now := p.clock()
	return &KeySet{
		keys:      set,
		fetchedAt: now,
		expiresAt: now.Add(p.cacheTTL),
	}, nil
}

func (p *Provider) doFetch(ctx context.Context) (jwk.Set, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.jwksURI, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %w", ErrKeySetUnavailable, p.jwksURI, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %w", ErrKeySetUnavailable, p.jwksURI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d, expected 200", ErrKeySetUnavailable, p.jwksURI, resp.StatusCode)
	}

	set, err := jwk.ParseReader(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing response from %s: %w", ErrKeySetUnavailable, p.jwksURI, err)
	}

	return set, nil
}
