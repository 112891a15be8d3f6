package verifier

import (
	"time"
)

// TokenPayload holds the decoded claims of a verified token.
//
// A TokenPayload is only ever produced by successful verification; it is
// immutable afterwards. RawClaims preserves the complete claim map for
// forward compatibility with claims this struct does not model.
type TokenPayload struct {
	Subject           string
	Issuer            string
	Audience          []string
	Expiry            int64
	IssuedAt          int64
	ID                string
	Type              string
	AuthorizedParty   string
	Scope             string
	Email             string
	EmailVerified     bool
	PreferredUsername string
	GivenName         string
	FamilyName        string
	Name              string
	Roles             []string
	ResourceAccess    map[string]interface{}
	RawClaims         map[string]interface{}
}

// PayloadFromClaims normalizes a raw claim map into a TokenPayload.
//
// Realm roles are extracted with a fixed precedence: a nested
// realm_access.roles list wins, then a top-level roles list, then empty.
// Providers emit either shape, so the order matters.
func PayloadFromClaims(claims map[string]interface{}) *TokenPayload {
	return &TokenPayload{
		Subject:           stringClaim(claims, "sub"),
		Issuer:            stringClaim(claims, "iss"),
		Audience:          audienceClaim(claims),
		Expiry:            int64Claim(claims, "exp"),
		IssuedAt:          int64Claim(claims, "iat"),
		ID:                stringClaim(claims, "jti"),
		Type:              stringClaim(claims, "typ"),
		AuthorizedParty:   stringClaim(claims, "azp"),
		Scope:             stringClaim(claims, "scope"),
		Email:             stringClaim(claims, "email"),
		EmailVerified:     boolClaim(claims, "email_verified"),
		PreferredUsername: stringClaim(claims, "preferred_username"),
		GivenName:         stringClaim(claims, "given_name"),
		FamilyName:        stringClaim(claims, "family_name"),
		Name:              stringClaim(claims, "name"),
		Roles:             rolesClaim(claims),
		ResourceAccess:    mapClaim(claims, "resource_access"),
		RawClaims:         claims,
	}
}

// ExpiresAt returns the expiry instant.
func (p *TokenPayload) ExpiresAt() time.Time {
	return time.Unix(p.Expiry, 0)
}

// IssuedAtTime returns the issuance instant.
func (p *TokenPayload) IssuedAtTime() time.Time {
	return time.Unix(p.IssuedAt, 0)
}

// IsExpired reports whether the token's expiry has passed.
func (p *TokenPayload) IsExpired() bool {
	return time.Now().After(p.ExpiresAt())
}

// HasRole reports whether the payload carries the given realm role.
// Matching is case-sensitive with no normalization.
func (p *TokenPayload) HasRole(role string) bool {
	return contains(p.Roles, role)
}

// HasAnyRole reports whether the payload carries at least one of the given
// roles.
func (p *TokenPayload) HasAnyRole(roles ...string) bool {
	return containsAny(p.Roles, roles)
}

// HasAllRoles reports whether the payload carries every one of the given
// roles.
func (p *TokenPayload) HasAllRoles(roles ...string) bool {
	return containsAll(p.Roles, roles)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func containsAny(have, want []string) bool {
	for _, r := range want {
		if contains(have, r) {
			return true
		}
	}
	return false
}

func containsAll(have, want []string) bool {
	for _, r := range want {
		if !contains(have, r) {
			return false
		}
	}
	return true
}

func stringClaim(claims map[string]interface{}, name string) string {
	s, _ := claims[name].(string)
	return s
}

func boolClaim(claims map[string]interface{}, name string) bool {
	b, _ := claims[name].(bool)
	return b
}

func mapClaim(claims map[string]interface{}, name string) map[string]interface{} {
	m, _ := claims[name].(map[string]interface{})
	return m
}

// int64Claim handles the numeric types a JSON decoder may produce for
// NumericDate claims.
func int64Claim(claims map[string]interface{}, name string) int64 {
	switch v := claims[name].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

// audienceClaim normalizes aud, which may be a single string or a list.
func audienceClaim(claims map[string]interface{}) []string {
	switch v := claims["aud"].(type) {
	case string:
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	default:
		return nil
	}
}

// rolesClaim extracts realm roles. Source order is preserved for display;
// membership checks treat the list as a set.
func rolesClaim(claims map[string]interface{}) []string {
	if realmAccess, ok := claims["realm_access"].(map[string]interface{}); ok {
		if roles, ok := realmAccess["roles"]; ok {
			return stringList(roles)
		}
	}
	if roles, ok := claims["roles"]; ok {
		return stringList(roles)
	}
	return []string{}
}

func stringList(v interface{}) []string {
	switch list := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return list
	default:
		return []string{}
	}
}
