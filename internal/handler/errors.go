package handler

import (
	"net/http"

	"labhub/internal/domain"
	"labhub/internal/httputil"
)

// handleError converts domain errors to HTTP responses. The reason code is
// attached so callers can distinguish the taxonomy classes (unauthenticated,
// not_authorized, not_found, invalid_reference, store_unavailable, ...)
// without parsing the detail text.
func handleError(w http.ResponseWriter, err error) {
	status := domain.StatusCode(err)
	if status == http.StatusInternalServerError {
		httputil.RespondError(w, status, "internal server error")
		return
	}

	httputil.RespondErrorWithExtras(w, status, err.Error(), map[string]interface{}{
		"reason": domain.Reason(err),
	})
}
