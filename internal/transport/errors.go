package transport

import (
	"errors"
	"fmt"
)

// HTTPError reports a response whose status fell outside 200-299.
type HTTPError struct {
	Status     int
	StatusText string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.StatusText)
}

// NetworkError reports a failure before any status was received.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status, true
	}
	return 0, false
}

// IsTransportError reports whether err originated in this package.
func IsTransportError(err error) bool {
	var httpErr *HTTPError
	var netErr *NetworkError
	return errors.As(err, &httpErr) || errors.As(err, &netErr)
}
