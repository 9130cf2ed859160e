package domain

import (
	"errors"
	"net/http"
)

// Sentinel errors for the core taxonomy - use with errors.Is().
//
// ErrInvalidReference is deliberately distinct from ErrNotAuthorized: a task
// whose project row has been deleted is a data-integrity condition, and callers
// must not report it as a permission problem.
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrNotFound         = errors.New("not found")
	ErrInvalidReference = errors.New("invalid reference")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("already exists")
)

// Reason codes carried on every denial/failure so the presentation layer can
// choose a status without re-deriving authorization logic.
const (
	ReasonUnauthenticated  = "unauthenticated"
	ReasonNotAuthorized    = "not_authorized"
	ReasonNotFound         = "not_found"
	ReasonInvalidReference = "invalid_reference"
	ReasonStoreUnavailable = "store_unavailable"
	ReasonValidation       = "validation_failed"
	ReasonConflict         = "conflict"
)

// Reason extracts the machine-readable reason code from an error.
// Returns empty string for errors outside the taxonomy.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return ReasonUnauthenticated
	case errors.Is(err, ErrNotAuthorized):
		return ReasonNotAuthorized
	case errors.Is(err, ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, ErrInvalidReference):
		return ReasonInvalidReference
	case errors.Is(err, ErrStoreUnavailable):
		return ReasonStoreUnavailable
	case errors.Is(err, ErrValidation):
		return ReasonValidation
	case errors.Is(err, ErrConflict):
		return ReasonConflict
	default:
		return ""
	}
}

// StatusCode maps a taxonomy error to its HTTP status.
// Unknown errors map to 500.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
