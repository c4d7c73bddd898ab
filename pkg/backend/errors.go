package backend

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse returned for a 2xx response with a missing or non-array data field
var ErrMalformedResponse = errors.New("Invalid response format from server") //nolint:staticcheck // shown to the user as is

// ServerError returned for non-2xx responses
type ServerError struct {
	Status int
	Detail string // detail field of the error body, empty if absent or not a string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("Server error: %d", e.Status)
}

// TransportError returned when the request could not be made or the connection failed,
// including timeouts and context cancellation
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }
