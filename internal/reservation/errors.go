// Package reservation implements the single-coach allocation and promotion
// engine: the fixed berth inventory, the RAC/Waiting overflow queues, the
// priority classifier, the booking allocator, the cancellation/promotion
// cascade, and the mutex-guarded coordinator that serializes all of it.
package reservation

import "fmt"

// Code is a short, stable identifier for a reservation error, suitable for
// returning to an HTTP layer without leaking internal detail.
type Code string

const (
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeNoAvailability    Code = "NO_AVAILABILITY"
	CodeNotFound          Code = "NOT_FOUND"
	CodeAlreadyCancelled  Code = "ALREADY_CANCELLED"
	CodeInternal          Code = "INTERNAL"
)

// Error is the tagged result type used for every failure the engine returns.
// The engine never uses panics/exceptions for flow control (see SPEC_FULL.md §9).
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func validationErrf(format string, args ...interface{}) *Error {
	return newError(CodeValidation, format, args...)
}

// ErrNoAvailability is returned when none of the Confirmed/RAC/Waiting paths
// can accept a booking group. It carries no per-call detail, matching the
// spec's fixed NO_AVAILABILITY code.
var ErrNoAvailability = newError(CodeNoAvailability, "no confirmed, RAC, or waiting capacity remains for this group")

// ErrTicketNotFound is returned when a ticket_id is unknown to the coordinator.
var ErrTicketNotFound = newError(CodeNotFound, "ticket not found")

// ErrAlreadyCancelled is returned when cancelling a ticket that is already cancelled.
var ErrAlreadyCancelled = newError(CodeAlreadyCancelled, "ticket is already cancelled")
