package errors

import (
	"errors"
	"fmt"
)

var (
	ErrBudgetNotFound  = errors.New("budget not found")
	ErrNotBudgetAuthor = errors.New("only the budget author may change its shares")
)

// ValidationError marks malformed or conflicting input that maps to a 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

// ConflictError marks a write that collides with an existing unique value.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

func NewConflictError(msg string) error {
	return &ConflictError{Msg: msg}
}

func IsConflictError(err error) bool {
	var conflictError *ConflictError
	ok := errors.As(err, &conflictError)
	return ok
}

func NewFieldValidationError(field, msg string) error {
	return &ValidationError{Msg: fmt.Sprintf("%s: %s", field, msg)}
}
