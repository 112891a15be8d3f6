package verifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityFromPayload(t *testing.T) {
	payload := PayloadFromClaims(map[string]interface{}{
		"sub":                "user-123",
		"email":              "jordan@example.com",
		"email_verified":     true,
		"preferred_username": "jordan",
		"name":               "Jordan Doe",
		"given_name":         "Jordan",
		"family_name":        "Doe",
		"realm_access": map[string]interface{}{
			"roles": []interface{}{"admin"},
		},
	})

	identity := IdentityFromPayload(payload, "raw.jwt.token")

	assert.Equal(t, "user-123", identity.Subject)
	assert.Equal(t, "user-123", identity.ID())
	assert.Equal(t, "jordan@example.com", identity.Email)
	assert.True(t, identity.EmailVerified)
	assert.Equal(t, "jordan", identity.Username)
	assert.Equal(t, "Jordan Doe", identity.Name)
	assert.Equal(t, "Jordan", identity.GivenName)
	assert.Equal(t, "Doe", identity.FamilyName)
	assert.Equal(t, []string{"admin"}, identity.Roles)
	assert.Equal(t, "raw.jwt.token", identity.RawToken)
	require.Same(t, payload, identity.Payload)
}

func TestIdentityRoles(t *testing.T) {
	identity := &Identity{Roles: []string{"admin", "viewer"}}

	assert.True(t, identity.HasRole("admin"))
	assert.False(t, identity.HasRole("editor"))
	assert.True(t, identity.HasAnyRole("editor", "admin"))
	assert.False(t, identity.HasAnyRole("editor", "owner"))
	assert.True(t, identity.HasAllRoles("admin", "viewer"))
	assert.False(t, identity.HasAllRoles("admin", "editor"))

	empty := &Identity{}
	assert.False(t, empty.HasRole("admin"))
	assert.False(t, empty.HasAnyRole("admin"))
	assert.True(t, empty.HasAllRoles())
}
