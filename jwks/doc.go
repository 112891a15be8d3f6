// Package jwks implements fetching and caching of a realm's published
// signing keys (JSON Web Key Set).
//
// The Provider keeps one in-memory KeySet snapshot per endpoint and refreshes
// it when the configured TTL passes or when a caller forces a refresh after a
// key rotation. At most one fetch is in flight at a time; concurrent callers
// share its result. A failed fetch surfaces ErrKeySetUnavailable and leaves
// the previous snapshot untouched, so transient identity-provider outages do
// not invalidate an already-trusted cache.
//
// Basic usage:
//
//	provider, err := jwks.NewProvider("https://id.example.com/realms/my-app/protocol/openid-connect/certs")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	keys, err := provider.GetKeys(ctx)
//	if err != nil {
//	    // Endpoint unreachable or response unusable.
//	}
//	key, ok := keys.Key("my-kid")
package jwks
