package client

import (
	"errors"
	"fmt"
)

// NetworkError is returned when the request could not be completed or the
// server answered with a non-2xx status.
type NetworkError struct {
	URL        string
	StatusCode int    // zero when no response was received
	Message    string // server-provided message, if any
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode > 0 {
		if e.Message == "" {
			return fmt.Sprintf("API error (HTTP %d)", e.StatusCode)
		}
		return fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is returned when the server answered 2xx with success=false.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "search failed"
	}
	return "search failed: " + e.Message
}

// IsNetworkError reports whether err is, or wraps, a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsAPIError reports whether err is, or wraps, an *APIError.
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}
