package mapperkit

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested table or column does not exist.
	ErrNotFound = errors.New("mapperkit: not found")

	// ErrInvalidValue is returned when a criterion receives a value it cannot bind.
	ErrInvalidValue = errors.New("mapperkit: invalid value")
)

// NotFoundError is returned when a table, column or statement lookup fails.
type NotFoundError struct {
	label string
	name  string
}

func (e *NotFoundError) Error() string {
	if e.name != "" {
		return fmt.Sprintf("mapperkit: %s %q not found", e.label, e.name)
	}
	return fmt.Sprintf("mapperkit: %s not found", e.label)
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns what was looked up: "table", "column" or "statement".
func (e *NotFoundError) Label() string {
	return e.label
}

// Name returns the name that was searched for, if available.
func (e *NotFoundError) Name() string {
	return e.name
}

// NewNotFoundError returns a NotFoundError without a name.
func NewNotFoundError(label string) *NotFoundError {
	return &NotFoundError{label: label}
}

// NewNotFoundErrorWithName returns a NotFoundError for the named object.
func NewNotFoundErrorWithName(label, name string) *NotFoundError {
	return &NotFoundError{label: label, name: name}
}

// IsNotFound reports whether err is, or wraps, a failed lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// InvalidValueError is recorded by a criteria accumulator that cannot bind
// the value it was given.
type InvalidValueError struct {
	Property string
	Reason   string
}

func (e *InvalidValueError) Error() string {
	if e.Property == "" {
		return "mapperkit: invalid value: " + e.Reason
	}
	return fmt.Sprintf("mapperkit: invalid value for %s: %s", e.Property, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidValue) hold.
func (e *InvalidValueError) Is(err error) bool {
	return err == ErrInvalidValue
}

// NewInvalidValueError returns an InvalidValueError for the given property.
func NewInvalidValueError(property, reason string) *InvalidValueError {
	return &InvalidValueError{Property: property, Reason: reason}
}

// IsInvalidValue reports whether err, or any error it wraps or joins, is an
// invalid value error.
func IsInvalidValue(err error) bool {
	return errors.Is(err, ErrInvalidValue)
}
