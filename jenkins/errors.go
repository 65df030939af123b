package jenkins

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid jenkins configuration")
	// ErrInvalidMethod indicates an HTTP verb the client refuses to send
	ErrInvalidMethod = errors.New("unsupported HTTP method")
	// ErrForeignHost indicates a URL outside the configured Jenkins server.
	// Credentials are never sent to such URLs.
	ErrForeignHost = errors.New("URL is outside the configured Jenkins server")
	// ErrNotJSON indicates a successful response whose body is not JSON,
	// typically a login page served by a proxy
	ErrNotJSON = errors.New("response is not JSON")
)

// APIError represents a non-2xx response from Jenkins
type APIError struct {
	StatusCode int
	Status     string
	URL        string
	Body       string
}

// Error implements the error interface. The body is left out so that
// message-based classification only sees the status line.
func (e *APIError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("jenkins API error: status %s", status)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden checks if the error indicates missing permissions
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsBadRequest checks if Jenkins rejected the request parameters
func (e *APIError) IsBadRequest() bool {
	return e.StatusCode == http.StatusBadRequest
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not
// an *APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
