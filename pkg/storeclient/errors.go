package storeclient

import (
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the storefront API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("storeclient: status=%d message=%s", e.StatusCode, e.Message)
}

// ServerFailure reports whether the server answered 500.
func (e *APIError) ServerFailure() bool {
	return e != nil && e.StatusCode == http.StatusInternalServerError
}

// TransportError wraps a request that never produced a usable response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("storeclient: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
