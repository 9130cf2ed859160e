package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the JWT claims structure presented by callers.
//
// The "demo" claim marks ephemeral identities whose claims are pre-trusted:
// the resolver builds the principal straight from the token without a store
// lookup. This is a deliberate, reduced-assurance trust boundary.
type TokenClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Role                 Role   `json:"role"`
	Name                 string `json:"name"`
	Department           string `json:"department"`
	Email                string `json:"email"`
	Demo                 bool   `json:"demo"`
}

// UserID returns the subject claim, the primary identifier for the caller.
func (c *TokenClaims) UserID() string {
	return c.Subject
}
