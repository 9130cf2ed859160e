package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"labhub/internal/auth"
	"labhub/internal/domain"
	"labhub/internal/httputil"
)

// Auth middleware resolves the Bearer credential into a principal and
// attaches it to the request context. Requests without a resolvable identity
// are rejected here; no handler ever sees an anonymous request.
func Auth(resolver *auth.Resolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if token == "" {
				respondUnauthenticated(w)
				return
			}

			principal, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				logger.Debug("identity resolution failed",
					"path", r.URL.Path,
					"error", err,
				)
				respondUnauthenticated(w)
				return
			}

			next.ServeHTTP(w, httputil.WithPrincipal(r, principal))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func respondUnauthenticated(w http.ResponseWriter) {
	httputil.RespondErrorWithExtras(w, http.StatusUnauthorized,
		"not authorized to access this route",
		map[string]interface{}{"reason": domain.ReasonUnauthenticated},
	)
}
