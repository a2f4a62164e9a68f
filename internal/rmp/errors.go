package rmp

import (
	"errors"
	"fmt"
)

// Sentinel errors for upstream failure modes callers may want to branch on.
var (
	// ErrRateLimited indicates the upstream API returned 429.
	ErrRateLimited = errors.New("rate limited by ratings API")

	// ErrUnauthorized indicates the API rejected the auth token.
	ErrUnauthorized = errors.New("ratings API rejected credentials")

	// ErrServerError indicates a 5xx response from the API.
	ErrServerError = errors.New("ratings API server error")

	// ErrBadResponse indicates the response body could not be decoded.
	ErrBadResponse = errors.New("malformed ratings API response")
)

// Error wraps a failure from the ratings API with the operation and the
// search text that triggered it.
type Error struct {
	Op    string
	Query string
	Err   error
}

func (e *Error) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("rmp: %s %q: %v", e.Op, e.Query, e.Err)
	}
	return fmt.Sprintf("rmp: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op, query string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Query: query, Err: err}
}
