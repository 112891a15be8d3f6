package keycloakauth

import (
	"errors"
	"net/http"
)

// Option configures the Middleware.
// Options return errors to enable validation at construction time.
type Option func(*Middleware) error

// Sentinel errors for configuration validation.
var (
	ErrVerifierNil        = errors.New("verifier cannot be nil (use WithVerifier)")
	ErrErrorHandlerNil    = errors.New("errorHandler cannot be nil")
	ErrTokenExtractorNil  = errors.New("tokenExtractor cannot be nil")
	ErrExclusionUrlsEmpty = errors.New("exclusion URLs list cannot be empty")
	ErrRequiredRolesEmpty = errors.New("required roles list cannot be empty")
	ErrLoggerNil          = errors.New("logger cannot be nil")
	ErrMetricsNil         = errors.New("metrics cannot be nil")
	ErrTracerNil          = errors.New("tracer cannot be nil")
)

// WithVerifier sets the token verifier (REQUIRED). Usually a
// *verifier.Verifier built from a keycloak.Config.
func WithVerifier(v TokenVerifier) Option {
	return func(m *Middleware) error {
		if v == nil {
			return ErrVerifierNil
		}
		m.verifier = v
		return nil
	}
}

// WithErrorHandler sets the handler called when verification fails.
// See the ErrorHandler type for more information.
//
// Default: DefaultErrorHandler
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *Middleware) error {
		if h == nil {
			return ErrErrorHandlerNil
		}
		m.errorHandler = h
		return nil
	}
}

// WithTokenExtractor sets the function to extract the token from the request.
//
// Default: AuthHeaderTokenExtractor
func WithTokenExtractor(e TokenExtractor) Option {
	return func(m *Middleware) error {
		if e == nil {
			return ErrTokenExtractorNil
		}
		m.tokenExtractor = e
		return nil
	}
}

// WithCredentialsOptional sets whether credentials are optional. If set to
// true, requests without a token pass through without an identity in the
// context; requests with a token are still fully verified.
//
// Default: false (credentials required)
func WithCredentialsOptional(value bool) Option {
	return func(m *Middleware) error {
		m.credentialsOptional = value
		return nil
	}
}

// WithValidateOnOptions sets whether OPTIONS requests should have their
// token verified.
//
// Default: true (OPTIONS requests are verified)
func WithValidateOnOptions(value bool) Option {
	return func(m *Middleware) error {
		m.validateOnOptions = value
		return nil
	}
}

// WithExclusionUrls configures URL patterns to exclude from token
// verification. URLs can be full URLs or just paths.
func WithExclusionUrls(exclusions []string) Option {
	return func(m *Middleware) error {
		if len(exclusions) == 0 {
			return ErrExclusionUrlsEmpty
		}
		m.exclusionURLHandler = func(r *http.Request) bool {
			requestFullURL := r.URL.String()
			requestPath := r.URL.Path

			for _, exclusion := range exclusions {
				if requestFullURL == exclusion || requestPath == exclusion {
					return true
				}
			}
			return false
		}
		return nil
	}
}

// WithExclusionURLHandler sets a custom predicate deciding which requests
// skip token verification. Overrides WithExclusionUrls.
func WithExclusionURLHandler(h ExclusionURLHandler) Option {
	return func(m *Middleware) error {
		m.exclusionURLHandler = h
		return nil
	}
}

// WithRequiredRoles requires every listed realm role on the verified
// identity. Requests with a valid token but missing roles are rejected with
// ErrInsufficientRole.
func WithRequiredRoles(roles ...string) Option {
	return func(m *Middleware) error {
		if len(roles) == 0 {
			return ErrRequiredRolesEmpty
		}
		m.requiredRoles = roles
		m.anyRole = false
		return nil
	}
}

// WithAnyRequiredRole requires at least one of the listed realm roles on the
// verified identity.
func WithAnyRequiredRole(roles ...string) Option {
	return func(m *Middleware) error {
		if len(roles) == 0 {
			return ErrRequiredRolesEmpty
		}
		m.requiredRoles = roles
		m.anyRole = true
		return nil
	}
}

// WithLogger sets an optional logger for the middleware.
func WithLogger(l Logger) Option {
	return func(m *Middleware) error {
		if l == nil {
			return ErrLoggerNil
		}
		m.logger = l
		return nil
	}
}

// WithMetrics sets the metrics sink for verification outcomes.
//
// Default: NoopMetrics
func WithMetrics(metrics Metrics) Option {
	return func(m *Middleware) error {
		if metrics == nil {
			return ErrMetricsNil
		}
		m.metrics = metrics
		return nil
	}
}

// WithTracer sets the tracer wrapping each verification.
//
// Default: NoopTracer
func WithTracer(t Tracer) Option {
	return func(m *Middleware) error {
		if t == nil {
			return ErrTracerNil
		}
		m.tracer = t
		return nil
	}
}
