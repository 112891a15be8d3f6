package verifier

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
)

// requiredClaims must be present in every token regardless of which checks
// are enabled.
var requiredClaims = []string{"exp", "iat", "sub"}

// validate performs signature verification followed by claim validation, in
// a fixed order: signature, required-claim presence, expiry, issuer,
// audience. Each failure category maps to its own error kind so callers can
// tell "expired" from "wrong issuer" from "bad signature".
func (v *Verifier) validate(token string, key jwk.Key, opts verifyOptions) (*TokenPayload, error) {
	payload, err := jws.Verify([]byte(token), jws.WithKey(SigningAlgorithm, key))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	var claims map[string]interface{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: decoding claims: %w", ErrMalformedToken, err)
	}

	for _, name := range requiredClaims {
		if _, ok := claims[name]; !ok {
			return nil, fmt.Errorf("%w: missing required claim %q", ErrMalformedToken, name)
		}
	}

	now := v.clock()

	if opts.checkExpiry {
		exp := int64Claim(claims, "exp")
		if exp == 0 {
			return nil, fmt.Errorf("%w: exp claim is not a number", ErrMalformedToken)
		}
		if !now.Before(time.Unix(exp, 0)) {
			return nil, fmt.Errorf("%w: expired at %s", ErrTokenExpired, time.Unix(exp, 0).UTC().Format(time.RFC3339))
		}
	}

	if opts.checkIssuer {
		expected := v.cfg.Issuer()
		if iss := stringClaim(claims, "iss"); iss != expected {
			return nil, fmt.Errorf("%w: token issued by %q, expected %q", ErrInvalidIssuer, iss, expected)
		}
	}

	if opts.checkAudience {
		expected := v.cfg.Audience()
		if expected == "" {
			return nil, fmt.Errorf("%w: audience verification enabled but no expected audience configured", ErrInvalidAudience)
		}
		if !contains(audienceClaim(claims), expected) {
			return nil, fmt.Errorf("%w: aud claim does not contain %q", ErrInvalidAudience, expected)
		}
	}

	return PayloadFromClaims(claims), nil
}
