package grpcauth

import (
	keycloakauth "github.com/moventis/go-keycloak-auth"
)

// Option configures the Interceptor.
type Option func(*Interceptor)

// WithTokenExtractor sets a custom token extractor.
//
// Default: MetadataTokenExtractor
func WithTokenExtractor(e TokenExtractor) Option {
	return func(i *Interceptor) {
		if e != nil {
			i.tokenExtractor = e
		}
	}
}

// WithCredentialsOptional sets whether requests without a token pass through
// unauthenticated.
//
// Default: false (credentials required)
func WithCredentialsOptional(value bool) Option {
	return func(i *Interceptor) {
		i.credentialsOptional = value
	}
}

// WithExclusionChecker sets the predicate deciding which full method names
// skip authentication, e.g. health checks.
func WithExclusionChecker(c ExclusionChecker) Option {
	return func(i *Interceptor) {
		i.exclusionChecker = c
	}
}

// WithExcludedMethods excludes the listed full method names from
// authentication.
func WithExcludedMethods(methods ...string) Option {
	return func(i *Interceptor) {
		excluded := make(map[string]struct{}, len(methods))
		for _, m := range methods {
			excluded[m] = struct{}{}
		}
		i.exclusionChecker = func(method string) bool {
			_, ok := excluded[method]
			return ok
		}
	}
}

// WithRequiredRoles requires every listed realm role on the verified
// identity. Failures are reported as PermissionDenied.
func WithRequiredRoles(roles ...string) Option {
	return func(i *Interceptor) {
		i.requiredRoles = roles
		i.anyRole = false
	}
}

// WithAnyRequiredRole requires at least one of the listed realm roles.
func WithAnyRequiredRole(roles ...string) Option {
	return func(i *Interceptor) {
		i.requiredRoles = roles
		i.anyRole = true
	}
}

// WithLogger sets an optional logger.
func WithLogger(l keycloakauth.Logger) Option {
	return func(i *Interceptor) {
		i.logger = l
	}
}
