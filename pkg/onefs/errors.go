package onefs

import (
	"fmt"
	"strings"
)

// APIError is an error response from the OneFS platform API. The API wraps
// errors in an "errors" array; the first entry wins.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// IsAuthError returns true if the API rejected the credentials or the
// account lacks the required privilege.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsNotFound returns true if the addressed object does not exist.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404 || e.Code == "AEC_NOT_FOUND"
}

// IsConflict returns true if a create collided with an existing object.
func (e *APIError) IsConflict() bool {
	return e.StatusCode == 409 || strings.HasPrefix(e.Code, "AEC_CONFLICT")
}

// errorsEnvelope is the wire shape of an API error response.
type errorsEnvelope struct {
	Errors []APIError `json:"errors"`
}
