package utils

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports missing or invalid local input. It is resolved
// before any network call is made.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

func NewValidationError(fields ...string) error {
	return &ValidationError{Fields: fields}
}

// AuthError signals a 401/403 response. It is the one error with a systemic
// side effect: the session manager tears the session down when it sees one.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("authentication rejected (status %d)", e.StatusCode)
	}
	return e.Message
}

// NetworkError wraps a transport failure or a server-side fault. Retryable;
// the caller's in-progress state is preserved.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ConflictError carries a backend rejection of an otherwise well-formed
// request (e.g. a slot taken between fetch and submit). Detail is surfaced
// verbatim to the user.
type ConflictError struct {
	StatusCode int
	Detail     string
}

func (e *ConflictError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("request rejected (status %d)", e.StatusCode)
	}
	return e.Detail
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

func IsConflictError(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
