package gateway

import (
	"errors"
	"fmt"

	domainerrors "github.com/secondbrain/brain-client/internal/errors"
)

// Messages used when the backend gives no message of its own.
const (
	DefaultFailureMessage = "API request failed"
	SignupFailureMessage  = "Signup failed"
	SigninFailureMessage  = "Sign in failed"
)

// ErrTransport marks failures that happened before a response arrived.
var ErrTransport = errors.New("transport failure")

// Error is a failed API call. Status is 0 when no response was received.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: %s", e.Message)
	}
	return fmt.Sprintf("api %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Message returns the user-facing text of err: the backend message for an
// *Error, the domain message otherwise, or fallback.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return domainerrors.Message(err, fallback)
}
