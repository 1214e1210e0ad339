package errs

import (
    "errors"
    "fmt"
    "strings"
)

// Common sentinel errors for cross-layer signaling.
var (
    ErrNotFound = errors.New("not_found")
    ErrInvalid  = errors.New("invalid")
)

// ValidationError is a client-caused failure carrying one or more
// standalone messages. It matches ErrInvalid.
type ValidationError struct {
    Messages []string
}

// Invalid builds a ValidationError from the given messages.
func Invalid(msgs ...string) *ValidationError {
    return &ValidationError{Messages: msgs}
}

// Invalidf builds a single-message ValidationError.
func Invalidf(format string, args ...any) *ValidationError {
    return &ValidationError{Messages: []string{fmt.Sprintf(format, args...)}}
}

func (e *ValidationError) Error() string { return strings.Join(e.Messages, "; ") }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// NotFoundError reports a well-formed identifier with no matching record.
// It matches ErrNotFound.
type NotFoundError struct {
    Message string
}

// NotFoundf builds a NotFoundError.
func NotFoundf(format string, args ...any) *NotFoundError {
    return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
