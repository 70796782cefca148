package backend

import (
	"fmt"
	"net/http"
	"strings"

	"museo/internal/services"
)

// StatusError describes a non-2xx backend response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s %s returned %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.Path, e.StatusCode, body)
}

// Message extracts a human-readable message from a JSON error body
// ({"detail": ...}, {"message": ...} or {"error": ...}), falling back to the
// raw body.
func (e *StatusError) Message() string {
	return extractErrorMessage(e.Body)
}

func statusMarker(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return services.ErrUnauthorized
	case http.StatusNotFound:
		return services.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return services.ErrValidation
	default:
		return services.ErrAPI
	}
}
