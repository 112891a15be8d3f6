package keycloakauth

import (
	"context"

	"github.com/moventis/go-keycloak-auth/verifier"
)

type identityContextKey struct{}

// ContextWithIdentity returns a copy of ctx carrying the verified identity.
// The middleware calls this after successful verification; it is exported so
// tests and custom transports can do the same.
func ContextWithIdentity(ctx context.Context, identity *verifier.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext returns the verified identity stored in ctx by the
// middleware, or false when the request was not authenticated.
func IdentityFromContext(ctx context.Context) (*verifier.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(*verifier.Identity)
	return identity, ok
}
