package verifier

import (
	"errors"
	"net/http"
)

// Option configures a Verifier during construction.
// Options return errors to enable validation at construction time.
type Option func(*Verifier) error

// WithHTTPClient sets the HTTP client used for JWKS fetches by the
// verifier's internal key provider. Ignored when WithKeyProvider is used.
func WithHTTPClient(c *http.Client) Option {
	return func(v *Verifier) error {
		if c == nil {
			return errors.New("HTTP client cannot be nil")
		}
		v.httpClient = c
		return nil
	}
}

// WithKeyProvider replaces the verifier's internal key set cache with a
// custom KeyProvider. One provider must serve exactly one realm
// configuration; providers are not namespaced by config.
func WithKeyProvider(p KeyProvider) Option {
	return func(v *Verifier) error {
		if p == nil {
			return errors.New("key provider cannot be nil")
		}
		v.keys = p
		return nil
	}
}

// WithLogger sets an optional logger. The verifier logs refresh decisions at
// debug level; errors are always returned to the caller, never only logged.
func WithLogger(l Logger) Option {
	return func(v *Verifier) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		v.logger = l
		return nil
	}
}

// VerifyOption adjusts a single Verify call.
type VerifyOption func(*verifyOptions)

type verifyOptions struct {
	checkExpiry   bool
	checkIssuer   bool
	checkAudience bool
}

// WithExpiryCheck enables or disables the exp claim check for one call.
// Enabled by default.
func WithExpiryCheck(enabled bool) VerifyOption {
	return func(o *verifyOptions) {
		o.checkExpiry = enabled
	}
}

// WithIssuerCheck enables or disables the iss claim check for one call.
// Enabled by default.
func WithIssuerCheck(enabled bool) VerifyOption {
	return func(o *verifyOptions) {
		o.checkIssuer = enabled
	}
}

// WithAudienceCheck enables or disables the aud claim check for one call,
// overriding the configuration's default.
func WithAudienceCheck(enabled bool) VerifyOption {
	return func(o *verifyOptions) {
		o.checkAudience = enabled
	}
}
