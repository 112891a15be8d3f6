package keycloak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("it derives all endpoint URLs from server URL and realm", func(t *testing.T) {
		cfg, err := NewConfig("https://id.example.com", "my-app")
		require.NoError(t, err)

		assert.Equal(t, "https://id.example.com/realms/my-app", cfg.Issuer())
		assert.Equal(t, "https://id.example.com/realms/my-app/protocol/openid-connect/certs", cfg.JWKSURI())
		assert.Equal(t, "https://id.example.com/realms/my-app/protocol/openid-connect/token", cfg.TokenEndpoint())
		assert.Equal(t, "https://id.example.com/realms/my-app/protocol/openid-connect/userinfo", cfg.UserinfoEndpoint())
		assert.Equal(t, "https://id.example.com/realms/my-app/protocol/openid-connect/auth", cfg.AuthorizationEndpoint())
		assert.Equal(t, "https://id.example.com/realms/my-app/protocol/openid-connect/logout", cfg.LogoutEndpoint())
		assert.Equal(t, "https://id.example.com/realms/my-app/protocol/openid-connect/token/introspect", cfg.IntrospectionEndpoint())
	})

	t.Run("it strips a trailing slash from the server URL", func(t *testing.T) {
		cfg, err := NewConfig("https://id.example.com/", "my-app")
		require.NoError(t, err)

		assert.Equal(t, "https://id.example.com", cfg.ServerURL())
		assert.Equal(t, "https://id.example.com/realms/my-app", cfg.Issuer())
	})

	t.Run("it applies defaults", func(t *testing.T) {
		cfg, err := NewConfig("https://id.example.com", "my-app")
		require.NoError(t, err)

		assert.Equal(t, DefaultJWKSCacheTTL, cfg.JWKSCacheTTL())
		assert.True(t, cfg.VerifyAudience())
		assert.Empty(t, cfg.Audience())
	})

	t.Run("it rejects missing server URL or realm", func(t *testing.T) {
		_, err := NewConfig("", "my-app")
		assert.ErrorContains(t, err, "server URL is required")

		_, err = NewConfig("https://id.example.com", "")
		assert.ErrorContains(t, err, "realm is required")
	})

	t.Run("it rejects invalid option values", func(t *testing.T) {
		_, err := NewConfig("https://id.example.com", "my-app", WithJWKSCacheTTL(0))
		assert.ErrorContains(t, err, "TTL must be positive")

		_, err = NewConfig("https://id.example.com", "my-app", WithClientID(""))
		assert.ErrorContains(t, err, "client ID cannot be empty")

		_, err = NewConfig("https://id.example.com", "my-app", WithExpectedAudience(""))
		assert.ErrorContains(t, err, "audience cannot be empty")
	})
}

func TestConfig_Audience(t *testing.T) {
	t.Run("it falls back to the client ID", func(t *testing.T) {
		cfg, err := NewConfig("https://id.example.com", "my-app", WithClientID("backend-api"))
		require.NoError(t, err)

		assert.Equal(t, "backend-api", cfg.Audience())
	})

	t.Run("an explicit expected audience wins over the client ID", func(t *testing.T) {
		cfg, err := NewConfig(
			"https://id.example.com",
			"my-app",
			WithClientID("backend-api"),
			WithExpectedAudience("account"),
		)
		require.NoError(t, err)

		assert.Equal(t, "account", cfg.Audience())
	})
}

func TestConfig_Options(t *testing.T) {
	cfg, err := NewConfig(
		"https://id.example.com",
		"my-app",
		WithJWKSCacheTTL(30*time.Minute),
		WithAudienceVerification(false),
	)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.JWKSCacheTTL())
	assert.False(t, cfg.VerifyAudience())
}
