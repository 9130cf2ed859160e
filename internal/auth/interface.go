package auth

import "labhub/internal/domain/models"

// TokenVerifier defines the interface for bearer credential verification.
// This abstraction keeps the resolver and middleware agnostic to the signing
// and encoding scheme, which is owned by the authentication subsystem.
type TokenVerifier interface {
	// VerifyToken validates a token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*models.TokenClaims, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	Close() error
}
