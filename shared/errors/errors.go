package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// NotFound is returned (wrapped) when a delete targets an id that is not stored.
var NotFound = errors.New("not found")

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Validation error: %s", e.Message)
}

// StoreError wraps a failed list store command. Err keeps the driver error for
// logs; Reason is the only part that may be shown to clients.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Reason classifies the failure without exposing addresses or credentials.
func (e *StoreError) Reason() string {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return "store timeout"
	}
	var netErr net.Error
	if errors.As(e.Err, &netErr) {
		if netErr.Timeout() {
			return "store timeout"
		}
		return "store unavailable"
	}
	return "store error"
}

// Check if err is instance of T for custom error types
func Is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

// DecodeError marks a stored list element that is not a valid record.
// It is never returned to clients; listings drop the element instead.
type DecodeError struct {
	Index int
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("element %d: %v", e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
