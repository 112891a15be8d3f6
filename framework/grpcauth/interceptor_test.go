package grpcauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/moventis/go-keycloak-auth/verifier"
)

// stubVerifier accepts exactly one token and returns a fixed identity.
type stubVerifier struct {
	validToken string
	identity   *verifier.Identity
	err        error
}

func (s *stubVerifier) VerifyIdentity(ctx context.Context, token string, opts ...verifier.VerifyOption) (*verifier.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	if token != s.validToken {
		return nil, verifier.ErrInvalidSignature
	}
	return s.identity, nil
}

func testStub() *stubVerifier {
	return &stubVerifier{
		validToken: "valid-token",
		identity: &verifier.Identity{
			Subject: "user-123",
			Roles:   []string{"admin", "viewer"},
		},
	}
}

func contextWithToken(token string) context.Context {
	if token == "" {
		return context.Background()
	}
	md := metadata.New(map[string]string{"authorization": "Bearer " + token})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestUnaryServerInterceptor(t *testing.T) {
	testCases := []struct {
		name         string
		token        string
		stub         *stubVerifier
		options      []Option
		method       string
		wantCode     codes.Code
		wantErr      bool
		wantIdentity bool
	}{
		{
			name:         "valid token",
			token:        "valid-token",
			stub:         testStub(),
			wantIdentity: true,
		},
		{
			name:     "invalid token",
			token:    "bogus-token",
			stub:     testStub(),
			wantErr:  true,
			wantCode: codes.Unauthenticated,
		},
		{
			name:     "missing token",
			token:    "",
			stub:     testStub(),
			wantErr:  true,
			wantCode: codes.Unauthenticated,
		},
		{
			name:    "optional credentials with missing token",
			token:   "",
			stub:    testStub(),
			options: []Option{WithCredentialsOptional(true)},
		},
		{
			name:    "excluded method",
			token:   "",
			stub:    testStub(),
			method:  "/grpc.health.v1.Health/Check",
			options: []Option{WithExcludedMethods("/grpc.health.v1.Health/Check")},
		},
		{
			name:     "key set unavailable maps to Unavailable",
			token:    "valid-token",
			stub:     &stubVerifier{err: verifier.ErrKeySetUnavailable},
			wantErr:  true,
			wantCode: codes.Unavailable,
		},
		{
			name:         "required roles present",
			token:        "valid-token",
			stub:         testStub(),
			options:      []Option{WithRequiredRoles("admin", "viewer")},
			wantIdentity: true,
		},
		{
			name:     "required role missing",
			token:    "valid-token",
			stub:     testStub(),
			options:  []Option{WithRequiredRoles("admin", "editor")},
			wantErr:  true,
			wantCode: codes.PermissionDenied,
		},
		{
			name:         "any required role",
			token:        "valid-token",
			stub:         testStub(),
			options:      []Option{WithAnyRequiredRole("editor", "viewer")},
			wantIdentity: true,
		},
		{
			name:  "custom token extractor",
			token: "",
			stub:  testStub(),
			options: []Option{WithTokenExtractor(func(ctx context.Context) (string, error) {
				return "valid-token", nil
			})},
			wantIdentity: true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			interceptor, err := New(testCase.stub, testCase.options...)
			require.NoError(t, err)

			method := testCase.method
			if method == "" {
				method = "/test.Service/Method"
			}

			var gotIdentity *verifier.Identity
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				gotIdentity, _ = IdentityFromContext(ctx)
				return "response", nil
			}

			resp, err := interceptor.UnaryServerInterceptor()(
				contextWithToken(testCase.token),
				"request",
				&grpc.UnaryServerInfo{FullMethod: method},
				handler,
			)

			if testCase.wantErr {
				require.Error(t, err)
				assert.Equal(t, testCase.wantCode, status.Code(err))
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "response", resp)
			if testCase.wantIdentity {
				require.NotNil(t, gotIdentity)
				assert.Equal(t, "user-123", gotIdentity.Subject)
			} else {
				assert.Nil(t, gotIdentity)
			}
		})
	}
}

// stubServerStream is a minimal grpc.ServerStream for interceptor tests.
type stubServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *stubServerStream) Context() context.Context {
	return s.ctx
}

func TestStreamServerInterceptor(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		interceptor, err := New(testStub())
		require.NoError(t, err)

		var gotIdentity *verifier.Identity
		handler := func(srv interface{}, stream grpc.ServerStream) error {
			gotIdentity, _ = IdentityFromContext(stream.Context())
			return nil
		}

		err = interceptor.StreamServerInterceptor()(
			nil,
			&stubServerStream{ctx: contextWithToken("valid-token")},
			&grpc.StreamServerInfo{FullMethod: "/test.Service/Stream"},
			handler,
		)
		require.NoError(t, err)
		require.NotNil(t, gotIdentity)
		assert.Equal(t, "user-123", gotIdentity.Subject)
	})

	t.Run("invalid token", func(t *testing.T) {
		interceptor, err := New(testStub())
		require.NoError(t, err)

		handler := func(srv interface{}, stream grpc.ServerStream) error {
			t.Fatal("handler should not be called")
			return nil
		}

		err = interceptor.StreamServerInterceptor()(
			nil,
			&stubServerStream{ctx: contextWithToken("bogus-token")},
			&grpc.StreamServerInfo{FullMethod: "/test.Service/Stream"},
			handler,
		)
		require.Error(t, err)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil)
	assert.EqualError(t, err, "verifier cannot be nil")
}

func TestMetadataTokenExtractor(t *testing.T) {
	testCases := []struct {
		name      string
		ctx       context.Context
		wantToken string
		wantError string
	}{
		{
			name: "no metadata",
			ctx:  context.Background(),
		},
		{
			name: "no authorization field",
			ctx:  metadata.NewIncomingContext(context.Background(), metadata.New(nil)),
		},
		{
			name:      "bearer token",
			ctx:       contextWithToken("i-am-token"),
			wantToken: "i-am-token",
		},
		{
			name: "wrong scheme",
			ctx: metadata.NewIncomingContext(context.Background(),
				metadata.New(map[string]string{"authorization": "Basic dXNlcjpwYXNz"})),
			wantError: "authorization metadata format must be Bearer {token}",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			gotToken, err := MetadataTokenExtractor(testCase.ctx)
			if testCase.wantError != "" {
				assert.EqualError(t, err, testCase.wantError)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, testCase.wantToken, gotToken)
		})
	}
}
