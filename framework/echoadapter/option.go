package echoadapter

import (
	"github.com/labstack/echo/v4"

	keycloakauth "github.com/moventis/go-keycloak-auth"
)

// Option configures the Echo middleware.
type Option func(*config)

// WithErrorHandler sets a custom handler for verification failures.
//
// Default: DefaultErrorHandler
func WithErrorHandler(h func(c echo.Context, err error) error) Option {
	return func(cfg *config) {
		if h != nil {
			cfg.errorHandler = h
		}
	}
}

// WithTokenExtractor sets a custom token extractor.
//
// Default: keycloakauth.AuthHeaderTokenExtractor
func WithTokenExtractor(e keycloakauth.TokenExtractor) Option {
	return func(cfg *config) {
		if e != nil {
			cfg.tokenExtractor = e
		}
	}
}

// WithIdentityKey sets the echo.Context key the identity is stored under.
//
// Default: DefaultIdentityKey
func WithIdentityKey(key string) Option {
	return func(cfg *config) {
		if key != "" {
			cfg.identityKey = key
		}
	}
}

// WithRequiredRoles requires every listed realm role on the verified
// identity.
func WithRequiredRoles(roles ...string) Option {
	return func(cfg *config) {
		cfg.requiredRoles = roles
		cfg.anyRole = false
	}
}

// WithAnyRequiredRole requires at least one of the listed realm roles.
func WithAnyRequiredRole(roles ...string) Option {
	return func(cfg *config) {
		cfg.requiredRoles = roles
		cfg.anyRole = true
	}
}
