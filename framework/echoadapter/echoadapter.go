// Package echoadapter provides Echo middleware backed by a Keycloak token
// verifier.
package echoadapter

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	keycloakauth "github.com/moventis/go-keycloak-auth"
	"github.com/moventis/go-keycloak-auth/verifier"
)

// DefaultIdentityKey is the echo.Context key the verified identity is stored
// under.
const DefaultIdentityKey = "identity"

type config struct {
	errorHandler   func(c echo.Context, err error) error
	tokenExtractor keycloakauth.TokenExtractor
	identityKey    string
	requiredRoles  []string
	anyRole        bool
}

// Middleware returns an Echo middleware that authenticates each request with
// the given verifier. The identity is stored on the echo.Context under the
// configured key and in the request context for handlers that use
// keycloakauth.IdentityFromContext.
func Middleware(v keycloakauth.TokenVerifier, opts ...Option) echo.MiddlewareFunc {
	cfg := &config{
		errorHandler:   DefaultErrorHandler,
		tokenExtractor: keycloakauth.AuthHeaderTokenExtractor,
		identityKey:    DefaultIdentityKey,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := cfg.tokenExtractor(c.Request())
			if err != nil {
				return cfg.errorHandler(c, err)
			}
			if token == "" {
				return cfg.errorHandler(c, keycloakauth.ErrTokenMissing)
			}

			identity, err := v.VerifyIdentity(c.Request().Context(), token)
			if err != nil {
				return cfg.errorHandler(c, err)
			}

			if len(cfg.requiredRoles) > 0 && !hasRequiredRoles(identity, cfg) {
				return cfg.errorHandler(c, keycloakauth.ErrInsufficientRole)
			}

			c.Set(cfg.identityKey, identity)
			c.SetRequest(c.Request().Clone(
				keycloakauth.ContextWithIdentity(c.Request().Context(), identity)))
			return next(c)
		}
	}
}

func hasRequiredRoles(identity *verifier.Identity, cfg *config) bool {
	if cfg.anyRole {
		return identity.HasAnyRole(cfg.requiredRoles...)
	}
	return identity.HasAllRoles(cfg.requiredRoles...)
}

// DefaultErrorHandler converts verification errors into echo HTTP errors
// with the same status mapping as the net/http middleware.
func DefaultErrorHandler(c echo.Context, err error) error {
	switch {
	case errors.Is(err, keycloakauth.ErrTokenMissing):
		c.Response().Header().Set("WWW-Authenticate", `Bearer realm="protected"`)
		return echo.NewHTTPError(http.StatusUnauthorized, "authorization token is missing")
	case errors.Is(err, keycloakauth.ErrInsufficientRole):
		return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
	case errors.Is(err, verifier.ErrKeySetUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "token verification is temporarily unavailable")
	default:
		return echo.NewHTTPError(http.StatusUnauthorized, "authorization token is invalid")
	}
}

// GetIdentity extracts the verified identity from the Echo context.
func GetIdentity(c echo.Context) (*verifier.Identity, bool) {
	return GetIdentityWithKey(c, DefaultIdentityKey)
}

// GetIdentityWithKey extracts the verified identity stored under a custom key.
func GetIdentityWithKey(c echo.Context, key string) (*verifier.Identity, bool) {
	identity, ok := c.Get(key).(*verifier.Identity)
	return identity, ok
}
