package keycloakauth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/moventis/go-keycloak-auth/verifier"
)

// TokenVerifier verifies a bearer token and returns the identity it proves.
// *verifier.Verifier is the production implementation.
type TokenVerifier interface {
	VerifyIdentity(ctx context.Context, token string, opts ...verifier.VerifyOption) (*verifier.Identity, error)
}

// ExclusionURLHandler is a function that takes in a http.Request and returns
// true if the request should be excluded from token verification.
type ExclusionURLHandler func(r *http.Request) bool

// Middleware authenticates incoming HTTP requests against a Keycloak realm
// and stores the verified identity in the request context.
type Middleware struct {
	verifier            TokenVerifier
	errorHandler        ErrorHandler
	tokenExtractor      TokenExtractor
	exclusionURLHandler ExclusionURLHandler
	credentialsOptional bool
	validateOnOptions   bool
	requiredRoles       []string
	anyRole             bool
	logger              Logger
	metrics             Metrics
	tracer              Tracer
}

// New constructs a new Middleware instance with the supplied options.
// A verifier is required; everything else has defaults.
//
// Example:
//
//	cfg, err := keycloak.NewConfig("https://sso.example.com", "demo",
//	    keycloak.WithClientID("my-app"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, err := verifier.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mw, err := keycloakauth.New(keycloakauth.WithVerifier(v))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.Handle("/api/", mw.CheckJWT(apiHandler))
func New(opts ...Option) (*Middleware, error) {
	m := &Middleware{
		validateOnOptions: true,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if m.verifier == nil {
		return nil, ErrVerifierNil
	}

	if m.errorHandler == nil {
		m.errorHandler = DefaultErrorHandler
	}
	if m.tokenExtractor == nil {
		m.tokenExtractor = AuthHeaderTokenExtractor
	}
	if m.metrics == nil {
		m.metrics = &NoopMetrics{}
	}
	if m.tracer == nil {
		m.tracer = &NoopTracer{}
	}

	return m, nil
}

// CheckJWT is the main Middleware function which performs the main logic. It
// is passed a http.Handler which will be called if the token passes
// verification and any configured role requirements.
func (m *Middleware) CheckJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.exclusionURLHandler != nil && m.exclusionURLHandler(r) {
			m.logf("skipping token verification for excluded URL %s", r.URL.Path)
			next.ServeHTTP(w, r)
			return
		}

		// If we don't validate on OPTIONS and this is OPTIONS
		// then continue onto next without validating.
		if !m.validateOnOptions && r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		token, err := m.tokenExtractor(r)
		if err != nil {
			// This is not ErrTokenMissing because an error here means that
			// the tokenExtractor had an error and _not_ that the token was
			// missing.
			m.errorf("failed to extract token: %v", err)
			m.errorHandler(w, r, fmt.Errorf("error extracting token: %w", err))
			return
		}

		if token == "" {
			if m.credentialsOptional {
				m.logf("no credentials on %s, continuing without identity", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}
			m.fail(w, r, ErrTokenMissing)
			return
		}

		spanCtx, span := m.tracer.StartSpan(r.Context(), "keycloakauth.verify")
		defer span.Finish()

		start := time.Now()
		identity, err := m.verifier.VerifyIdentity(spanCtx, token)
		m.metrics.ObserveHistogram("keycloak_auth_verify_duration_seconds",
			time.Since(start).Seconds(), map[string]string{})
		if err != nil {
			m.logf("token verification failed: %v", err)
			span.SetTag("auth.result", failureReason(err))
			m.fail(w, r, &invalidError{details: err})
			return
		}
		span.SetTag("auth.subject", identity.Subject)

		if len(m.requiredRoles) > 0 && !m.hasRequiredRoles(identity) {
			span.SetTag("auth.result", "insufficient_role")
			m.fail(w, r, fmt.Errorf("%w: subject %s does not have the required roles",
				ErrInsufficientRole, identity.Subject))
			return
		}

		span.SetTag("auth.result", "success")
		m.metrics.IncCounter("keycloak_auth_success_total", map[string]string{})

		r = r.Clone(ContextWithIdentity(spanCtx, identity))
		next.ServeHTTP(w, r)
	})
}

// fail records the failure and hands the error to the configured handler.
func (m *Middleware) fail(w http.ResponseWriter, r *http.Request, err error) {
	m.metrics.IncCounter("keycloak_auth_failures_total",
		map[string]string{"reason": failureReason(err)})
	m.errorHandler(w, r, err)
}

func (m *Middleware) hasRequiredRoles(identity *verifier.Identity) bool {
	if m.anyRole {
		return identity.HasAnyRole(m.requiredRoles...)
	}
	return identity.HasAllRoles(m.requiredRoles...)
}

func (m *Middleware) logf(format string, args ...interface{}) {
	if m.logger != nil {
		m.logger.Debugf(format, args...)
	}
}

func (m *Middleware) errorf(format string, args ...interface{}) {
	if m.logger != nil {
		m.logger.Errorf(format, args...)
	}
}
