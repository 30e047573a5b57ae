// ABOUTME: Typed error for Gazette API failures with status-based predicates
// ABOUTME: Unauthorized and not-found get distinct handling throughout the CLI

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx response from the Gazette API. Message holds the
// response body's text when the server provided one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gazette: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("gazette: request failed with status %d", e.StatusCode)
}

// IsUnauthorized reports whether err is an API error with status 401.
// Callers treat this as an invalid session: clear the token, re-login.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is an API error with status 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
