package client

import (
	"errors"
	"fmt"
)

// ErrInvalidID is returned for ids that cannot name a single path segment
var ErrInvalidID = errors.New("invalid id")

// RequestError describes a failed request: either the transport failed (Err
// is set) or the server answered with a non-success status.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       string
	Err        error
}

// Error returns the failing request and the HTTP failure detail
func (e *RequestError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	case e.Body != "":
		return fmt.Sprintf("%s %s: %s: %s", e.Method, e.Path, e.Status, e.Body)
	default:
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Status)
	}
}

// Unwrap exposes the transport error, if any
func (e *RequestError) Unwrap() error {
	return e.Err
}
