package keycloakauth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/moventis/go-keycloak-auth/verifier"
)

var (
	// ErrTokenMissing is returned when no bearer token is present on the
	// request and credentials are required.
	ErrTokenMissing = errors.New("bearer token missing")

	// ErrTokenInvalid is returned when a bearer token is present but fails
	// verification. Unwrap it to reach the verifier's error kinds.
	ErrTokenInvalid = errors.New("bearer token invalid")

	// ErrInsufficientRole is returned when a verified identity does not
	// carry the realm roles the middleware requires.
	ErrInsufficientRole = errors.New("insufficient role")
)

// ErrorHandler is called when the middleware rejects a request. Among some
// general errors, this handler determines the response when a token is
// missing, invalid, or lacks a required role. The err can be checked with
// errors.Is against ErrTokenMissing, ErrTokenInvalid, ErrInsufficientRole,
// and the verifier's error kinds. If you implement your own ErrorHandler you
// MUST take these error types into consideration, as not responding to them
// properly could result in the middleware not functioning as intended.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler is the error handler used when WithErrorHandler is not
// given. It maps error kinds to responses:
//
//   - ErrTokenMissing: 401 with a WWW-Authenticate challenge
//   - ErrInsufficientRole: 403
//   - verifier.ErrKeySetUnavailable: 503, the provider could not be reached
//   - ErrTokenInvalid (any verification failure): 401
//   - anything else: 500
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.Is(err, ErrTokenMissing):
		w.Header().Set("WWW-Authenticate", `Bearer realm="protected"`)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Authorization token is missing."}`))
	case errors.Is(err, ErrInsufficientRole):
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Insufficient permissions."}`))
	case errors.Is(err, verifier.ErrKeySetUnavailable):
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"message":"Token verification is temporarily unavailable."}`))
	case errors.Is(err, ErrTokenInvalid):
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Authorization token is invalid."}`))
	default:
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Something went wrong while checking the authorization token."}`))
	}
}

// invalidError wraps a verification error with the concrete error
// ErrTokenInvalid. Not exposed publicly because the Is and Unwrap methods
// give the caller all they need.
type invalidError struct {
	details error
}

// Is allows the error to support equality to ErrTokenInvalid.
func (e *invalidError) Is(target error) bool {
	return target == ErrTokenInvalid
}

func (e *invalidError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTokenInvalid, e.details)
}

// Unwrap allows the error to support equality to the underlying verifier
// error kinds and not just ErrTokenInvalid.
func (e *invalidError) Unwrap() error {
	return e.details
}

// failureReason classifies an error into a short label used as a metrics
// tag and span attribute.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenMissing):
		return "missing_token"
	case errors.Is(err, ErrInsufficientRole):
		return "insufficient_role"
	case errors.Is(err, verifier.ErrTokenExpired):
		return "expired"
	case errors.Is(err, verifier.ErrInvalidIssuer):
		return "invalid_issuer"
	case errors.Is(err, verifier.ErrInvalidAudience):
		return "invalid_audience"
	case errors.Is(err, verifier.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, verifier.ErrKeyNotFound):
		return "key_not_found"
	case errors.Is(err, verifier.ErrMalformedToken):
		return "malformed_token"
	case errors.Is(err, verifier.ErrKeySetUnavailable):
		return "keys_unavailable"
	default:
		return "other"
	}
}
