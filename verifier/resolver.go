package verifier

import (
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"

	"github.com/moventis/go-keycloak-auth/jwks"
)

// SigningAlgorithm is the only signature algorithm accepted. Tokens
// declaring anything else, including symmetric algorithms or "none", are
// rejected before any key lookup to rule out algorithm-confusion attacks.
const SigningAlgorithm = jwa.RS256

// tokenHeader is the unverified JOSE header of a token. It is extracted
// without any cryptographic verification and must only be used to pick the
// verification key.
type tokenHeader struct {
	algorithm jwa.SignatureAlgorithm
	keyID     string
}

// parseHeader extracts the algorithm and key ID from a compact JWS without
// verifying it. Tokens declaring any algorithm other than SigningAlgorithm
// are rejected here, before the key set is even consulted.
func parseHeader(token string) (tokenHeader, error) {
	msg, err := jws.Parse([]byte(token))
	if err != nil {
		return tokenHeader{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	sigs := msg.Signatures()
	if len(sigs) == 0 {
		return tokenHeader{}, fmt.Errorf("%w: no signature present", ErrMalformedToken)
	}

	headers := sigs[0].ProtectedHeaders()
	header := tokenHeader{
		algorithm: headers.Algorithm(),
		keyID:     headers.KeyID(),
	}

	if header.algorithm != SigningAlgorithm {
		return tokenHeader{}, fmt.Errorf("%w: unsupported algorithm %q, only %s is accepted",
			ErrMalformedToken, header.algorithm, SigningAlgorithm)
	}

	return header, nil
}

// resolveKey locates the signing key named by the token header in the given
// key set snapshot.
//
// A missing key is reported as ErrKeyNotFound, a retryable condition: the
// verifier reacts by forcing one cache refresh in case the provider rotated
// its keys since the snapshot was fetched.
func resolveKey(header tokenHeader, keys *jwks.KeySet) (jwk.Key, error) {
	key, ok := keys.Key(header.keyID)
	if !ok {
		return nil, fmt.Errorf("%w: kid %q", ErrKeyNotFound, header.keyID)
	}

	return key, nil
}
