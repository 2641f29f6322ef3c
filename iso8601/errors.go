package iso8601

import (
	"errors"
	"fmt"
)

// Kinds of rejected input. Every error returned by this package wraps one of them.
var (
	ErrOutOfBounds = errors.New("out of bounds")
	ErrMissing     = errors.New("missing input")
	ErrConflict    = errors.New("conflicting input")
	ErrType        = errors.New("bad type")
	ErrUnsupported = errors.New("unsupported operation")
	ErrRecurrence  = errors.New("bad recurrence")
)

// inputError describes a rejected value of a named field.
type inputError struct {
	kind  error
	field string
	msg   string
}

func (e *inputError) Error() string {
	return fmt.Sprintf("%v: %s: %s", e.kind, e.field, e.msg)
}

func (e *inputError) Unwrap() error {
	return e.kind
}

func outOfBounds(field string, value any) error {
	return &inputError{ErrOutOfBounds, field, fmt.Sprint(value)}
}

func missing(field, requires string) error {
	return &inputError{ErrMissing, field, "requires " + requires}
}

func conflict(field, other string) error {
	return &inputError{ErrConflict, field, "conflicts with " + other}
}

func notInteger(field string, value float64) error {
	return &inputError{ErrType, field, fmt.Sprintf("%v is not an integer", value)}
}

// checkRange appends an out-of-bounds error to errs unless lo <= v <= hi.
func checkRange[T int | float64](errs []error, field string, v, lo, hi T) []error {
	if v < lo || v > hi {
		return append(errs, outOfBounds(field, v))
	}
	return errs
}

// checkUpper appends an out-of-bounds error to errs unless lo <= v < upper.
func checkUpper(errs []error, field string, v, lo, upper float64) []error {
	if v < lo || v >= upper {
		return append(errs, outOfBounds(field, v))
	}
	return errs
}
