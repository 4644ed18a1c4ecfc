package models

import "fmt"

// APIError is the backend's structured error body. It doubles as the Go error
// returned by the API client for any non-2xx response.
type APIError struct {
	Timestamp string            `json:"timestamp,omitempty"`
	Status    int               `json:"status"`
	ErrorText string            `json:"error,omitempty"`
	Message   string            `json:"message"`
	Path      string            `json:"path,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.ErrorText)
}
