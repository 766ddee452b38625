package client

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse indicates the API returned a success status but the
// response body was missing fields the contract requires.
var ErrMalformedResponse = errors.New("malformed API response")

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// APIMessage returns the server-provided message if err wraps an HTTPError,
// along with true. Transport-level errors return ("", false).
func APIMessage(err error) (string, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message, true
	}
	return "", false
}
