package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels for classifying a *StatusError with errors.Is.
var (
	ErrAuth       = errors.New("authentication rejected")
	ErrConflict   = errors.New("conflict with existing account")
	ErrValidation = errors.New("request rejected by validation")
)

// TransportError means no usable response was received: the request could
// not be sent, the connection failed, or the response body was malformed.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response from the server.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is maps the status code onto ErrAuth, ErrConflict and ErrValidation.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrAuth:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	case ErrValidation:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	}
	return false
}
