package verifier

// Identity is the user-facing projection of a verified token, suitable for
// handlers and business logic. It is derived from a TokenPayload and is
// never constructed independently.
type Identity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Username      string
	Name          string
	GivenName     string
	FamilyName    string
	Roles         []string

	// RawToken is the bearer token string the identity was derived from,
	// without the "Bearer " prefix.
	RawToken string

	// Payload gives access to the full verified claims.
	Payload *TokenPayload
}

// IdentityFromPayload builds the Identity projection of a verified payload.
func IdentityFromPayload(payload *TokenPayload, rawToken string) *Identity {
	return &Identity{
		Subject:       payload.Subject,
		Email:         payload.Email,
		EmailVerified: payload.EmailVerified,
		Username:      payload.PreferredUsername,
		Name:          payload.Name,
		GivenName:     payload.GivenName,
		FamilyName:    payload.FamilyName,
		Roles:         payload.Roles,
		RawToken:      rawToken,
		Payload:       payload,
	}
}

// ID is an alias for the subject.
func (i *Identity) ID() string {
	return i.Subject
}

// HasRole reports whether the identity carries the given realm role.
func (i *Identity) HasRole(role string) bool {
	return contains(i.Roles, role)
}

// HasAnyRole reports whether the identity carries at least one of the given
// roles.
func (i *Identity) HasAnyRole(roles ...string) bool {
	return containsAny(i.Roles, roles)
}

// HasAllRoles reports whether the identity carries every one of the given
// roles.
func (i *Identity) HasAllRoles(roles ...string) bool {
	return containsAll(i.Roles, roles)
}
