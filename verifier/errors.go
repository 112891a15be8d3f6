package verifier

import (
	"errors"

	"github.com/moventis/go-keycloak-auth/jwks"
)

// Verification failures are typed so that callers can distinguish categories
// with errors.Is; no failure path relies on matching error text.
var (
	// ErrVerificationFailed is the umbrella for "this token cannot currently
	// be verified". Errors caused by an unreachable key endpoint satisfy both
	// ErrVerificationFailed and ErrKeySetUnavailable.
	ErrVerificationFailed = errors.New("token verification failed")

	// ErrMalformedToken is returned when the input is empty, not parseable
	// as a compact JWS, missing a required claim, or declares an unsupported
	// signing algorithm. Fatal, never retried.
	ErrMalformedToken = errors.New("malformed token")

	// ErrInvalidSignature is returned when cryptographic verification fails.
	// Fatal; a forged token will still fail against a refreshed key set, so
	// this is never retried.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrTokenExpired is returned when the exp claim is in the past.
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidIssuer is returned when the iss claim does not exactly match
	// the configured issuer URL.
	ErrInvalidIssuer = errors.New("invalid token issuer")

	// ErrInvalidAudience is returned when the aud claim does not contain the
	// configured expected audience.
	ErrInvalidAudience = errors.New("invalid token audience")

	// ErrKeyNotFound is returned when no key in the current key set matches
	// the token's kid. Internally this triggers exactly one forced cache
	// refresh; if the key is still absent, the error surfaces to the caller.
	ErrKeyNotFound = errors.New("no matching key in key set")

	// ErrKeySetUnavailable mirrors jwks.ErrKeySetUnavailable so callers can
	// check it without importing the jwks package.
	ErrKeySetUnavailable = jwks.ErrKeySetUnavailable
)
