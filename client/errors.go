package client

import (
	"errors"
	"net/http"

	"aura/models"
)

func statusIs(err error, status int) bool {
	var apiErr *models.APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsUnauthorized reports a 401 that survived the refresh flow.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrSessionExpired) || statusIs(err, http.StatusUnauthorized)
}

// IsForbidden reports a 403: the backend refused an action the UI should not
// have offered. The caller resyncs the reservation.
func IsForbidden(err error) bool { return statusIs(err, http.StatusForbidden) }

// IsConflict reports a 409: a stale transition, the reservation moved under
// us. The caller resyncs the reservation.
func IsConflict(err error) bool { return statusIs(err, http.StatusConflict) }

// IsNotFound reports a 404.
func IsNotFound(err error) bool { return statusIs(err, http.StatusNotFound) }

// Message extracts the backend's human-readable message, falling back to the
// plain error text. Conflict errors surface this verbatim.
func Message(err error) string {
	var apiErr *models.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
