package verifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/moventis/go-keycloak-auth/jwks"
	"github.com/moventis/go-keycloak-auth/keycloak"
)

// bearerPrefix is the optional scheme prefix stripped from incoming tokens.
const bearerPrefix = "Bearer "

// KeyProvider supplies signing key snapshots to the Verifier.
// *jwks.Provider is the production implementation.
type KeyProvider interface {
	// GetKeys returns a non-expired key set snapshot, fetching if needed.
	GetKeys(ctx context.Context) (*jwks.KeySet, error)

	// ForceRefresh re-fetches and replaces the snapshot regardless of TTL.
	ForceRefresh(ctx context.Context) (*jwks.KeySet, error)
}

// Logger is the minimal logging interface the verifier uses. It is
// satisfied by the adapters in the root keycloakauth package.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Verifier authenticates bearer tokens issued by a Keycloak realm against
// the realm's published signing keys.
//
// A Verifier is safe for concurrent use; verification calls across many
// in-flight requests share one key set cache. Construct exactly one Verifier
// per realm configuration and keep it for the life of the process — the key
// cache is not namespaced by configuration.
type Verifier struct {
	cfg        *keycloak.Config
	keys       KeyProvider
	httpClient *http.Client
	logger     Logger
	clock      func() time.Time
}

// New builds a Verifier for the given realm configuration. Unless
// WithKeyProvider is used, an internal jwks.Provider is constructed from the
// configuration's JWKS endpoint and cache TTL.
func New(cfg *keycloak.Config, opts ...Option) (*Verifier, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	v := &Verifier{
		cfg:   cfg,
		clock: time.Now,
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if v.keys == nil {
		providerOpts := []jwks.Option{jwks.WithCacheTTL(cfg.JWKSCacheTTL())}
		if v.httpClient != nil {
			providerOpts = append(providerOpts, jwks.WithHTTPClient(v.httpClient))
		}
		provider, err := jwks.NewProvider(cfg.JWKSURI(), providerOpts...)
		if err != nil {
			return nil, fmt.Errorf("building key provider: %w", err)
		}
		v.keys = provider
	}

	return v, nil
}

// Config returns the realm configuration the verifier was built with.
func (v *Verifier) Config() *keycloak.Config {
	return v.cfg
}

// Verify authenticates a bearer token and returns its validated payload.
//
// The token may carry an optional "Bearer " prefix. Expiry, issuer, and
// audience checks can be disabled per call; the audience check defaults to
// the configuration's setting.
//
// When the token names a key that is not in the cached key set, the cache is
// force-refreshed exactly once and resolution retried — the self-healing
// path for provider key rotation. A second miss fails with ErrKeyNotFound.
func (v *Verifier) Verify(ctx context.Context, token string, opts ...VerifyOption) (*TokenPayload, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}
	token = strings.TrimPrefix(token, bearerPrefix)

	options := verifyOptions{
		checkExpiry:   true,
		checkIssuer:   true,
		checkAudience: v.cfg.VerifyAudience(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	header, err := parseHeader(token)
	if err != nil {
		return nil, err
	}

	keys, err := v.keys.GetKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}

	key, err := resolveKey(header, keys)
	if errors.Is(err, ErrKeyNotFound) {
		// The provider may have rotated its keys since the snapshot was
		// fetched. One forced refresh, then one more resolution attempt.
		if v.logger != nil {
			v.logger.Debugf("kid %q not in cached key set, forcing refresh", header.keyID)
		}
		keys, err = v.keys.ForceRefresh(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
		}
		key, err = resolveKey(header, keys)
	}
	if err != nil {
		return nil, err
	}

	return v.validate(token, key, options)
}

// VerifyIdentity authenticates a bearer token and returns the user-facing
// Identity projection of its payload.
func (v *Verifier) VerifyIdentity(ctx context.Context, token string, opts ...VerifyOption) (*Identity, error) {
	payload, err := v.Verify(ctx, token, opts...)
	if err != nil {
		return nil, err
	}
	return IdentityFromPayload(payload, strings.TrimPrefix(token, bearerPrefix)), nil
}
