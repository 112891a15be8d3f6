/*
Package keycloakauth provides HTTP middleware for authenticating requests
against a Keycloak realm.

The middleware extracts a bearer token from the request, verifies it against
the realm's published signing keys, and stores the resulting identity in the
request context. Verification itself lives in the verifier package; this
package is the HTTP surface around it.

# Quick Start

	import (
	    "github.com/moventis/go-keycloak-auth"
	    "github.com/moventis/go-keycloak-auth/keycloak"
	    "github.com/moventis/go-keycloak-auth/verifier"
	)

	func main() {
	    cfg, err := keycloak.NewConfig("https://sso.example.com", "demo",
	        keycloak.WithClientID("my-app"),
	    )
	    if err != nil {
	        log.Fatal(err)
	    }

	    v, err := verifier.New(cfg)
	    if err != nil {
	        log.Fatal(err)
	    }

	    mw, err := keycloakauth.New(keycloakauth.WithVerifier(v))
	    if err != nil {
	        log.Fatal(err)
	    }

	    http.Handle("/api/", mw.CheckJWT(apiHandler))
	    http.ListenAndServe(":8080", nil)
	}

# Accessing the Identity

	func apiHandler(w http.ResponseWriter, r *http.Request) {
	    identity, ok := keycloakauth.IdentityFromContext(r.Context())
	    if !ok {
	        http.Error(w, "Unauthorized", http.StatusUnauthorized)
	        return
	    }
	    fmt.Fprintf(w, "Hello, %s!", identity.Username)
	}

# Role Requirements

Reject authenticated requests lacking realm roles:

	mw, err := keycloakauth.New(
	    keycloakauth.WithVerifier(v),
	    keycloakauth.WithRequiredRoles("admin"),
	)

WithRequiredRoles requires every listed role; WithAnyRequiredRole requires
at least one. Failures respond with 403 via the default error handler.

# Token Extraction

The default extractor reads the Authorization header with the Bearer scheme.
CookieTokenExtractor, ParameterTokenExtractor, and MultiTokenExtractor cover
other sources:

	extractor := keycloakauth.MultiTokenExtractor(
	    keycloakauth.AuthHeaderTokenExtractor,
	    keycloakauth.CookieTokenExtractor("token"),
	)

# Error Handling

The default error handler maps error kinds to status codes: missing token
and failed verification to 401, missing roles to 403, an unreachable JWKS
endpoint to 503. A custom handler can inspect the error with errors.Is
against ErrTokenMissing, ErrTokenInvalid, ErrInsufficientRole, and the
verifier package's error kinds.

# Thread Safety

A Middleware instance is immutable after creation and safe for concurrent
use. The same middleware can serve multiple routes; all requests share the
verifier's key set cache.
*/
package keycloakauth
