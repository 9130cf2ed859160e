package httputil

import (
	"context"
	"net/http"

	"labhub/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal adds the resolved principal to the request context.
func WithPrincipal(r *http.Request, principal *models.Principal) *http.Request {
	ctx := context.WithValue(r.Context(), principalKey, principal)
	return r.WithContext(ctx)
}

// GetPrincipal retrieves the principal from context, nil if absent.
func GetPrincipal(r *http.Request) *models.Principal {
	principal, _ := r.Context().Value(principalKey).(*models.Principal)
	return principal
}
