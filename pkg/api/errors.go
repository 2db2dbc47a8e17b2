package api

import (
	"errors"
	"fmt"

	"github.com/lmops/lmctl/pkg/types"
)

// ErrAuth marks authentication failures. Auth errors are never retried and
// never downgraded to a not-found lookup result.
var ErrAuth = errors.New("authentication failed")

// APIError is a request the server rejected, either at the HTTP layer or
// via an errorCode in an otherwise well-formed response body.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Code is the platform error code from the body, 0 if absent.
	Code int
	// Message is the platform error message from the body.
	Message string
	// Body is the decoded response body, kept so callers can inspect
	// failures such as not-found lookups.
	Body types.Record
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (http %d, code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error (http %d, code %d)", e.StatusCode, e.Code)
}

// Unwrap lets errors.Is(err, ErrAuth) detect credential failures.
func (e *APIError) Unwrap() error {
	if e.StatusCode == 401 || e.Code == 1401 {
		return ErrAuth
	}
	return nil
}

// AsAPIError extracts an *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
