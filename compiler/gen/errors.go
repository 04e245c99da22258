package gen

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSchema is matched by every SchemaError.
	ErrInvalidSchema = errors.New("mapperkit: invalid table descriptor")
	// ErrMissingConfig is matched by every ConfigError.
	ErrMissingConfig = errors.New("mapperkit: missing configuration")
	// ErrGenerationFailed is matched by every GenerationError.
	ErrGenerationFailed = errors.New("mapperkit: code generation failed")
	// ErrValidationFailed is matched by every ValidationError.
	ErrValidationFailed = errors.New("mapperkit: validation failed")
	// ErrDuplicateStatement is the cause recorded when two statements of a
	// document share an id.
	ErrDuplicateStatement = errors.New("mapperkit: duplicate statement id")
)

// join renders "head[ detail...][: msg][: cause]".
func join(head string, details []string, msg string, cause error) string {
	parts := []string{head}
	for _, d := range details {
		if d != "" {
			parts[0] += " " + d
		}
	}
	if msg != "" {
		parts = append(parts, msg)
	}
	if cause != nil {
		parts = append(parts, cause.Error())
	}
	return strings.Join(parts, ": ")
}

// SchemaError reports a table or column the generator cannot work with.
type SchemaError struct {
	Table   string
	Column  string
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	var table, column string
	if e.Table != "" {
		table = "on table " + e.Table
	}
	if e.Column != "" {
		column = "column " + e.Column
	}
	return join("mapperkit: schema error", []string{table, column}, e.Message, e.Cause)
}

func (e *SchemaError) Unwrap() error { return e.Cause }

func (e *SchemaError) Is(target error) bool { return target == ErrInvalidSchema }

// NewSchemaError returns a SchemaError. Column and cause may be empty.
func NewSchemaError(table, column, message string, cause error) *SchemaError {
	return &SchemaError{Table: table, Column: column, Message: message, Cause: cause}
}

// ConfigError reports a rejected option of the run configuration.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

func (e *ConfigError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("mapperkit: config error for %q: %s", e.Option, e.Message)
	}
	return fmt.Sprintf("mapperkit: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
}

func (e *ConfigError) Is(target error) bool { return target == ErrMissingConfig }

// NewConfigError returns a ConfigError for the named option.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// GenerationError wraps a failure of one table in one phase of the run.
// Phase is one of "synthesize", "document" or "emit".
type GenerationError struct {
	Phase   string
	Table   string
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	var phase, table string
	if e.Phase != "" {
		phase = "in phase " + e.Phase
	}
	if e.Table != "" {
		table = "(table: " + e.Table + ")"
	}
	return join("mapperkit: generation error", []string{phase, table}, e.Message, e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

// NewGenerationError returns a GenerationError.
func NewGenerationError(phase, table, message string, cause error) *GenerationError {
	return &GenerationError{Phase: phase, Table: table, Message: message, Cause: cause}
}

// ValidationError is returned by a synthesizer that cannot take part in the
// run under the current configuration. The generator leaves the synthesizer
// out and reports the error as a warning.
type ValidationError struct {
	Synthesizer string
	Option      string
	Value       any
	Message     string
}

func (e *ValidationError) Error() string {
	var synth, option string
	if e.Synthesizer != "" {
		synth = "in " + e.Synthesizer
	}
	if e.Option != "" {
		option = "option " + e.Option
		if e.Value != nil {
			option += fmt.Sprintf(" (value: %v)", e.Value)
		}
	}
	return join("mapperkit: validation error", []string{synth, option}, e.Message, nil)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }

// NewValidationError returns a ValidationError for the named synthesizer.
func NewValidationError(synth, option string, value any, message string) *ValidationError {
	return &ValidationError{Synthesizer: synth, Option: option, Value: value, Message: message}
}

// IsSchemaError reports whether err is or wraps a SchemaError.
func IsSchemaError(err error) bool {
	var e *SchemaError
	return errors.As(err, &e)
}

// IsConfigError reports whether err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// IsGenerationError reports whether err is or wraps a GenerationError.
func IsGenerationError(err error) bool {
	var e *GenerationError
	return errors.As(err, &e)
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsDuplicateStatement reports whether err was caused by a statement id
// collision.
func IsDuplicateStatement(err error) bool {
	return errors.Is(err, ErrDuplicateStatement)
}
