package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthenticated is returned when the storefront API rejects the bearer
// credential (or none was attached). Callers route the user to the login
// view.
var ErrUnauthenticated = errors.New("api: unauthenticated")

// RemoteError is any other non-success response from the storefront API:
// out of stock, order not found, invalid discount code, and so on. The view
// surfaces Detail once and leaves its state unchanged.
type RemoteError struct {
	Status int
	Detail string
}

func (e *RemoteError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: remote rejected with status %d", e.Status)
	}
	return fmt.Sprintf("api: remote rejected: %s (status %d)", e.Detail, e.Status)
}

// NetworkError wraps a transport-level failure: DNS, connect, timeout, or a
// response that never arrived. Treated like a remote rejection by the views;
// never retried automatically.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("api: network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a remote rejection with status 404.
func IsNotFound(err error) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.Status == http.StatusNotFound
}

// UserMessage extracts a one-shot message suitable for display from a client
// error. Unauthenticated errors are expected to be handled by redirecting
// instead.
func UserMessage(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Detail != "" {
		return remote.Detail
	}
	var network *NetworkError
	if errors.As(err, &network) {
		return "The store could not be reached. Please try again."
	}
	return "Something went wrong. Please try again."
}
