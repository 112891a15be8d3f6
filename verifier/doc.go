// Package verifier implements JWKS-based verification of bearer tokens
// issued by a Keycloak realm.
//
// The Verifier wires together three pieces: the key set cache (package
// jwks), the key resolver that matches a token's kid against the cached set,
// and the claim validator that checks the signature and the standard claims.
// Only RS256 tokens are accepted; a token declaring any other algorithm is
// rejected before a key is even looked up.
//
// When a token names a key the cache does not hold — the normal symptom of
// the provider rotating its signing keys — the verifier forces exactly one
// cache refresh and retries the lookup. A second miss is a hard failure, so
// rotation races self-heal in one hop without unbounded retry loops.
//
// Basic usage:
//
//	cfg, err := keycloak.NewConfig("https://id.example.com", "my-app",
//	    keycloak.WithClientID("backend-api"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := verifier.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	payload, err := v.Verify(ctx, token)
//	switch {
//	case errors.Is(err, verifier.ErrTokenExpired):
//	    // ask the client for a fresh token
//	case errors.Is(err, verifier.ErrKeySetUnavailable):
//	    // identity provider unreachable; not the token's fault
//	case err != nil:
//	    // reject
//	default:
//	    fmt.Println(payload.Subject, payload.Roles)
//	}
//
// All failure categories are typed values distinguishable with errors.Is;
// see errors.go.
package verifier
