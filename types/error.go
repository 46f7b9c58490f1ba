package types

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure kinds reported by the core.
type ErrorKind string

const (
	// KindAPI means the backend rejected the request at the application level.
	KindAPI ErrorKind = "api_error"
	// KindNetwork means the underlying transport failed.
	KindNetwork ErrorKind = "network_error"
	// KindParse means a response body could not be decoded into the expected shape.
	KindParse ErrorKind = "parse_error"
)

// Error is the structured error every core operation fails with.
type Error struct {
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
	Provider   string    `json:"provider,omitempty"`
	HTTPStatus int       `json:"http_status,omitempty"`
	Retryable  bool      `json:"retryable"`
	Cause      error     `json:"-"`
}

// Error implements the error interface. The cause is appended only when
// the message does not already carry its text.
func (e *Error) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewAPIError creates an error for a backend-level rejection.
func NewAPIError(message string) *Error {
	return &Error{Kind: KindAPI, Message: message}
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(cause error) *Error {
	msg := "transport failure"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: KindNetwork, Message: msg, Cause: cause}
}

// NewParseError creates an error for an undecodable response body.
func NewParseError(message string) *Error {
	return &Error{Kind: KindParse, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithHTTPStatus records the upstream HTTP status code.
func (e *Error) WithHTTPStatus(status int) *Error {
	e.HTTPStatus = status
	return e
}

// WithRetryable marks the error as retryable.
func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

// WithProvider sets the provider name.
func (e *Error) WithProvider(provider string) *Error {
	e.Provider = provider
	return e
}

// As extracts a *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, if err carries one.
func KindOf(err error) (ErrorKind, bool) {
	if e, ok := As(err); ok {
		return e.Kind, true
	}
	return "", false
}

func IsAPIError(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindAPI
}

func IsNetworkError(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNetwork
}

func IsParseError(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindParse
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if e, ok := As(err); ok {
		return e.Retryable
	}
	return false
}
