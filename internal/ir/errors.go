package ir

import (
	"errors"
	"fmt"
)

// Error represents a failure detected by the core.
//
// Errors include:
//   - Index out of range: an array access outside [0, len) (implementation bug)
//   - Invalid configuration: rejected before a run is constructed
//   - Run in flight: a second run was started on state that is already sorting
//
// Cancellation is never an Error; it is a normal run outcome.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Details contains additional context.
	Details map[string]string
}

// ErrorCode categorizes core errors.
type ErrorCode string

const (
	// ErrCodeIndexOutOfRange indicates an array index outside [0, len).
	ErrCodeIndexOutOfRange ErrorCode = "INDEX_OUT_OF_RANGE"

	// ErrCodeInvalidConfiguration indicates a run was requested with bad input.
	ErrCodeInvalidConfiguration ErrorCode = "INVALID_CONFIGURATION"

	// ErrCodeRunInFlight indicates the array is already owned by an active run.
	ErrCodeRunInFlight ErrorCode = "RUN_IN_FLIGHT"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewIndexOutOfRange creates an Error for an out-of-range array access.
func NewIndexOutOfRange(op string, index, length int) *Error {
	return &Error{
		Code:    ErrCodeIndexOutOfRange,
		Message: fmt.Sprintf("%s: index %d out of range [0, %d)", op, index, length),
		Details: map[string]string{
			"op":     op,
			"index":  fmt.Sprintf("%d", index),
			"length": fmt.Sprintf("%d", length),
		},
	}
}

// NewInvalidConfiguration creates an Error for a rejected configuration field.
func NewInvalidConfiguration(field, message string) *Error {
	return &Error{
		Code:    ErrCodeInvalidConfiguration,
		Message: message,
		Details: map[string]string{"field": field},
	}
}

// NewRunInFlight creates an Error for an overlapping run.
func NewRunInFlight(owner string) *Error {
	return &Error{
		Code:    ErrCodeRunInFlight,
		Message: fmt.Sprintf("array is already being sorted by run %s", owner),
		Details: map[string]string{"owner": owner},
	}
}

// IsIndexOutOfRange returns true if err is (or wraps) an index error.
func IsIndexOutOfRange(err error) bool {
	return hasCode(err, ErrCodeIndexOutOfRange)
}

// IsInvalidConfiguration returns true if err is (or wraps) a configuration error.
func IsInvalidConfiguration(err error) bool {
	return hasCode(err, ErrCodeInvalidConfiguration)
}

// IsRunInFlight returns true if err is (or wraps) an overlapping-run error.
func IsRunInFlight(err error) bool {
	return hasCode(err, ErrCodeRunInFlight)
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
