package jwks

import (
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// KeySet is a point-in-time snapshot of the realm's published signing keys.
//
// Snapshots are immutable once built: the Provider replaces the cached
// snapshot wholesale on refresh, so a reader always sees a set of keys that
// came from one JWKS response, never a mix of two.
type KeySet struct {
	keys      jwk.Set
	fetchedAt time.Time
	expiresAt time.Time
}

// NewKeySet builds a snapshot from an already-parsed jwk.Set. Callers that
// implement their own key source can use it to hand snapshots to the
// verifier without going through a Provider.
func NewKeySet(keys jwk.Set, fetchedAt, expiresAt time.Time) *KeySet {
	return &KeySet{keys: keys, fetchedAt: fetchedAt, expiresAt: expiresAt}
}

// Key returns the key with the given key ID, if present.
func (s *KeySet) Key(kid string) (jwk.Key, bool) {
	return s.keys.LookupKeyID(kid)
}

// Len returns the number of keys in the snapshot.
func (s *KeySet) Len() int {
	return s.keys.Len()
}

// FetchedAt returns the instant the snapshot was fetched from the provider.
func (s *KeySet) FetchedAt() time.Time {
	return s.fetchedAt
}

// ExpiresAt returns the instant the snapshot stops being considered fresh.
func (s *KeySet) ExpiresAt() time.Time {
	return s.expiresAt
}

// Expired reports whether the snapshot is stale at the given instant.
func (s *KeySet) Expired(now time.Time) bool {
	return !now.Before(s.expiresAt)
}
