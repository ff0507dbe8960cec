package checkout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSubmitInFlight is returned when a submit is attempted while a previous
// submission has not yet resolved.
var ErrSubmitInFlight = errors.New("checkout: submission already in flight")

// ErrSessionNotFound indicates the checkout session does not exist or has
// expired.
var ErrSessionNotFound = errors.New("checkout: session not found")

// ErrAlreadySubmitted is returned when a submit is retried after the session
// already produced an order.
var ErrAlreadySubmitted = errors.New("checkout: order already submitted")

// ValidationError is a local, recoverable failure: the user stays on the
// current step and no network call is made.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// SubmitError wraps a repository failure during order submission. It is
// retry-able: the session stays on the payment step and the cart is
// untouched.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("checkout: order submission failed: %v", e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
