package payoff

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for malformed construction or evaluation input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDomain is returned when a path violates a mathematical precondition of the payoff.
	ErrDomain = errors.New("domain error")
)

// ArgumentError describes a rejected argument.
type ArgumentError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func newArgumentError(field string, value interface{}, message string) *ArgumentError {
	return &ArgumentError{Field: field, Value: value, Message: message}
}

// DomainError reports the path observation that could not be summarized.
type DomainError struct {
	Index   int
	Value   float64
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: path[%d] = %v: %s", e.Index, e.Value, e.Message)
}

func (e *DomainError) Unwrap() error {
	return ErrDomain
}
