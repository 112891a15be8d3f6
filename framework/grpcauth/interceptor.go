// Package grpcauth provides gRPC server interceptors backed by a Keycloak
// token verifier.
package grpcauth

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	keycloakauth "github.com/moventis/go-keycloak-auth"
	"github.com/moventis/go-keycloak-auth/verifier"
)

// ExclusionChecker reports whether a full gRPC method name is excluded from
// authentication.
type ExclusionChecker func(method string) bool

// Interceptor provides configurable bearer-token authentication for gRPC.
type Interceptor struct {
	verifier            keycloakauth.TokenVerifier
	tokenExtractor      TokenExtractor
	credentialsOptional bool
	exclusionChecker    ExclusionChecker
	requiredRoles       []string
	anyRole             bool
	logger              keycloakauth.Logger
}

// New creates an Interceptor with the given verifier and options.
func New(v keycloakauth.TokenVerifier, opts ...Option) (*Interceptor, error) {
	if v == nil {
		return nil, errors.New("verifier cannot be nil")
	}

	i := &Interceptor{
		verifier:       v,
		tokenExtractor: MetadataTokenExtractor,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// authenticate handles token extraction, verification, and context updating.
// It returns the context carrying the identity, or a gRPC status error.
func (i *Interceptor) authenticate(ctx context.Context, method string) (context.Context, error) {
	if i.exclusionChecker != nil && i.exclusionChecker(method) {
		i.logf("method %s excluded from authentication", method)
		return ctx, nil
	}

	token, err := i.tokenExtractor(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Unauthenticated, "error extracting token: %v", err)
	}

	if token == "" {
		if i.credentialsOptional {
			i.logf("no token on %s, continuing without identity", method)
			return ctx, nil
		}
		return nil, status.Error(codes.Unauthenticated, "bearer token is missing")
	}

	identity, err := i.verifier.VerifyIdentity(ctx, token)
	if err != nil {
		i.logf("token verification failed on %s: %v", method, err)
		return nil, statusFromVerifyError(err)
	}

	if len(i.requiredRoles) > 0 && !i.hasRequiredRoles(identity) {
		return nil, status.Errorf(codes.PermissionDenied,
			"subject %s does not have the required roles", identity.Subject)
	}

	return keycloakauth.ContextWithIdentity(ctx, identity), nil
}

// statusFromVerifyError maps verifier error kinds to gRPC codes. An
// unreachable key endpoint is the server's problem, not the caller's, so it
// maps to Unavailable rather than Unauthenticated.
func statusFromVerifyError(err error) error {
	if errors.Is(err, verifier.ErrKeySetUnavailable) {
		return status.Error(codes.Unavailable, "token verification is temporarily unavailable")
	}
	return status.Errorf(codes.Unauthenticated, "invalid bearer token: %v", err)
}

func (i *Interceptor) hasRequiredRoles(identity *verifier.Identity) bool {
	if i.anyRole {
		return identity.HasAnyRole(i.requiredRoles...)
	}
	return identity.HasAllRoles(i.requiredRoles...)
}

func (i *Interceptor) logf(format string, args ...interface{}) {
	if i.logger != nil {
		i.logger.Debugf(format, args...)
	}
}

// UnaryServerInterceptor returns a gRPC unary server interceptor that
// authenticates each request.
func (i *Interceptor) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		authCtx, err := i.authenticate(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}
		return handler(authCtx, req)
	}
}

// StreamServerInterceptor returns a gRPC stream server interceptor that
// authenticates each stream.
func (i *Interceptor) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		authCtx, err := i.authenticate(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}
		return handler(srv, &wrappedServerStream{ServerStream: ss, ctx: authCtx})
	}
}

// wrappedServerStream wraps a grpc.ServerStream to override the context.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

// Context returns the wrapped context.
func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}

// IdentityFromContext retrieves the verified identity from a handler
// context. Returns false when the request was not authenticated, which
// happens only with optional credentials or an excluded method.
func IdentityFromContext(ctx context.Context) (*verifier.Identity, bool) {
	return keycloakauth.IdentityFromContext(ctx)
}
