// Package errors provides structured error types and exit codes for reflectdiff.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess      = 0 // Success, or compared values are equal
	ExitRuntimeError = 1 // Values differ, cases failed, or the command failed
	ExitConfigError  = 2 // Configuration or usage error
	ExitInputError   = 3 // Input documents missing or unreadable
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindValidation
	KindInput
)

// Error is the base error type for the reflectdiff CLI.
type Error struct {
	Kind    ErrorKind
	Message string
	Suite   string // Suite name if applicable
	Case    string // Case name if applicable
	Cause   error  // Underlying error
}

func (e *Error) Error() string {
	if e.Suite != "" && e.Case != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Suite, e.Case, e.Message)
	}
	if e.Suite != "" {
		return fmt.Sprintf("[%s] %s", e.Suite, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindInput:
		return ExitInputError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...any) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...any) *Error {
	return Config(fmt.Sprintf(format, args...))
}

// Input creates an error for an input document that cannot be read.
func Input(err error, path string) *Error {
	return &Error{
		Kind:    KindInput,
		Message: fmt.Sprintf("cannot read %s: %v", path, err),
		Cause:   err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// CaseError creates an error for a specific case.
func CaseError(suite, name, message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Suite:   suite,
		Case:    name,
		Message: message,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return ExitRuntimeError
}
