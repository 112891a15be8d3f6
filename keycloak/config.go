// Package keycloak holds the static provider configuration needed to verify
// tokens issued by a Keycloak (or Keycloak-compatible OpenID Connect) realm.
//
// A Config is constructed once at startup and never mutated afterwards. All
// endpoint URLs are derived deterministically from the server URL and realm
// name; no network calls are made by this package.
package keycloak

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultJWKSCacheTTL is how long a fetched key set is considered fresh
// when no explicit TTL is configured.
const DefaultJWKSCacheTTL = time.Hour

// Config describes a single Keycloak realm to authenticate against.
// Use NewConfig to build one; the zero value is not usable.
type Config struct {
	serverURL        string
	realm            string
	clientID         string
	expectedAudience string
	jwksCacheTTL     time.Duration
	verifyAudience   bool
}

// Option configures a Config during construction.
// Options return errors to enable validation at construction time.
type Option func(*Config) error

// NewConfig builds an immutable Config for the given Keycloak server base URL
// and realm name.
//
// Example:
//
//	cfg, err := keycloak.NewConfig(
//	    "https://id.example.com",
//	    "my-app",
//	    keycloak.WithClientID("backend-api"),
//	    keycloak.WithJWKSCacheTTL(30*time.Minute),
//	)
func NewConfig(serverURL, realm string, opts ...Option) (*Config, error) {
	if serverURL == "" {
		return nil, errors.New("server URL is required")
	}
	if _, err := url.Parse(serverURL); err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if realm == "" {
		return nil, errors.New("realm is required")
	}

	c := &Config{
		serverURL:      strings.TrimRight(serverURL, "/"),
		realm:          realm,
		jwksCacheTTL:   DefaultJWKSCacheTTL,
		verifyAudience: true,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return c, nil
}

// WithClientID sets the OAuth client ID. When no explicit expected audience
// is configured the client ID doubles as the audience used for the aud check.
func WithClientID(clientID string) Option {
	return func(c *Config) error {
		if clientID == "" {
			return errors.New("client ID cannot be empty")
		}
		c.clientID = clientID
		return nil
	}
}

// WithExpectedAudience sets the audience value tokens must carry in their
// aud claim. Takes precedence over the client ID.
func WithExpectedAudience(audience string) Option {
	return func(c *Config) error {
		if audience == "" {
			return errors.New("expected audience cannot be empty")
		}
		c.expectedAudience = audience
		return nil
	}
}

// WithJWKSCacheTTL sets how long fetched signing keys stay fresh before a
// verification triggers a re-fetch. Defaults to DefaultJWKSCacheTTL.
func WithJWKSCacheTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		if ttl <= 0 {
			return errors.New("JWKS cache TTL must be positive")
		}
		c.jwksCacheTTL = ttl
		return nil
	}
}

// WithAudienceVerification enables or disables the audience check performed
// during token verification. Enabled by default.
func WithAudienceVerification(enabled bool) Option {
	return func(c *Config) error {
		c.verifyAudience = enabled
		return nil
	}
}

// ServerURL returns the Keycloak server base URL without a trailing slash.
func (c *Config) ServerURL() string { return c.serverURL }

// Realm returns the realm name.
func (c *Config) Realm() string { return c.realm }

// ClientID returns the configured OAuth client ID, or "" if none was set.
func (c *Config) ClientID() string { return c.clientID }

// JWKSCacheTTL returns the configured key set cache TTL.
func (c *Config) JWKSCacheTTL() time.Duration { return c.jwksCacheTTL }

// VerifyAudience reports whether the audience claim is checked by default.
func (c *Config) VerifyAudience() bool { return c.verifyAudience }

// Audience returns the value tokens are expected to carry in their aud
// claim: the explicit expected audience if set, otherwise the client ID.
// Returns "" when neither is configured.
func (c *Config) Audience() string {
	if c.expectedAudience != "" {
		return c.expectedAudience
	}
	return c.clientID
}

// Issuer returns the expected value of the iss claim.
func (c *Config) Issuer() string {
	return fmt.Sprintf("%s/realms/%s", c.serverURL, c.realm)
}

// JWKSURI returns the realm's JWKS endpoint.
func (c *Config) JWKSURI() string {
	return c.Issuer() + "/protocol/openid-connect/certs"
}

// TokenEndpoint returns the realm's token endpoint.
func (c *Config) TokenEndpoint() string {
	return c.Issuer() + "/protocol/openid-connect/token"
}

// UserinfoEndpoint returns the realm's userinfo endpoint.
func (c *Config) UserinfoEndpoint() string {
	return c.Issuer() + "/protocol/openid-connect/userinfo"
}

// AuthorizationEndpoint returns the realm's authorization endpoint.
func (c *Config) AuthorizationEndpoint() string {
	return c.Issuer() + "/protocol/openid-connect/auth"
}

// LogoutEndpoint returns the realm's logout endpoint.
func (c *Config) LogoutEndpoint() string {
	return c.Issuer() + "/protocol/openid-connect/logout"
}

// IntrospectionEndpoint returns the realm's token introspection endpoint.
func (c *Config) IntrospectionEndpoint() string {
	return c.Issuer() + "/protocol/openid-connect/token/introspect"
}
