// Package errors provides structured error types for the pillbox client.
//
// This package defines error codes and types that enable:
//   - Telling lookup, parse and transport failures apart with errors.Is-style checks
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages in the CLI
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes name the failure kind rather than the call site:
//   - UNRECOGNIZED_*: a value outside a closed enumeration (shape, color, image size)
//   - *_PARSE_ERROR / NUMERIC_FIELD_ERROR: a response or field could not be decoded
//   - NETWORK_ERROR: transport failures and non-success HTTP statuses
//   - INVALID_*: bad construction input or configuration
//
// # Usage
//
//	_, err := pillbox.Shapes.Code("hexagram")
//	if errors.Is(err, errors.ErrCodeUnrecognizedClassification) {
//	    // unknown shape name
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeResponseParse, xmlErr, "decode search response")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Closed enumeration lookups
	ErrCodeUnrecognizedClassification Code = "UNRECOGNIZED_CLASSIFICATION"
	ErrCodeUnrecognizedImageSize      Code = "UNRECOGNIZED_IMAGE_SIZE"

	// Response decoding
	ErrCodeResponseParse Code = "RESPONSE_PARSE_ERROR"
	ErrCodeNumericField  Code = "NUMERIC_FIELD_ERROR"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

	// Input and configuration errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It walks the whole error chain, including errors.Join trees, and matches
// the first *Error with that code.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	if e, ok := err.(*Error); ok && e.Code == code {
		return true
	}
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			if Is(inner, code) {
				return true
			}
		}
		return false
	case interface{ Unwrap() error }:
		return Is(u.Unwrap(), code)
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
