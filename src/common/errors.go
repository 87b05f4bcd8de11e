package common

import "errors"

// Error categories surfaced to handlers. Validation and conflict errors are
// rejected before any state mutation; external errors mean the dependency
// call failed and the triggering transition did not happen.
var (
	ErrNotFound          = errors.New("record not found")
	ErrForbidden         = errors.New("requester is not authorized for this resource")
	ErrConflict          = errors.New("resource is not in a state that allows this operation")
	ErrInsufficientFunds = errors.New("amount exceeds available balance")
)

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type ExternalError struct {
	Op    string
	Inner error
}

func (e *ExternalError) Error() string {
	return e.Op + ": " + e.Inner.Error()
}

func (e *ExternalError) Unwrap() error {
	return e.Inner
}

func NewExternalError(op string, inner error) error {
	return &ExternalError{Op: op, Inner: inner}
}

func IsExternalError(err error) bool {
	var ee *ExternalError
	return errors.As(err, &ee)
}
