// Package errors provides structured error types for the graph visualizer.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The parse-time taxonomy mirrors the failure modes of the core:
//   - DATASOURCE_PARSE: malformed input syntax
//   - MALFORMED_VALUE: a value the graph model cannot store as an attribute
//   - UNKNOWN_NODE: an edge referencing a node that was never created
//   - GRAPH_TOO_LARGE: depth or node-count guard tripped
//
// All four are terminal for the parse that raised them: no partial graph
// is returned.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownFormat, "no datasource for %q", ext)
//	if errors.Is(err, errors.ErrCodeUnknownFormat) {
//	    // Handle unknown format
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParse, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Parse-time errors raised while building a graph
	ErrCodeParse          Code = "DATASOURCE_PARSE"
	ErrCodeMalformedValue Code = "MALFORMED_VALUE"
	ErrCodeUnknownNode    Code = "UNKNOWN_NODE"
	ErrCodeTooLarge       Code = "GRAPH_TOO_LARGE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeUnknownFormat Code = "UNKNOWN_FORMAT"
	ErrCodeUnknownViz    Code = "UNKNOWN_VISUALIZER"

	// Resource not found errors
	ErrCodeNotFound          Code = "NOT_FOUND"
	ErrCodeFileNotFound      Code = "FILE_NOT_FOUND"
	ErrCodeWorkspaceNotFound Code = "WORKSPACE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// It unwraps the error chain looking for a coded error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	var p *ParseError
	if errors.As(err, &p) {
		return code == ErrCodeParse
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var p *ParseError
	if errors.As(err, &p) {
		return ErrCodeParse
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

// ParseError reports malformed input syntax from a datasource, with the
// location of the failure when the underlying decoder can provide one.
// Line and Column are 1-based; zero means unknown.
type ParseError struct {
	Format  string // Datasource format identifier (e.g., "json")
	Line    int    // 1-based line of the failure, 0 if unknown
	Column  int    // 1-based column of the failure, 0 if unknown
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	loc := ""
	if e.Line > 0 {
		loc = fmt.Sprintf(" at line %d, column %d", e.Line, e.Column)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s%s: %v", ErrCodeParse, e.Message, loc, e.Cause)
	}
	return fmt.Sprintf("%s: %s%s", ErrCodeParse, e.Message, loc)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a ParseError without location information.
func NewParseError(format string, cause error, msg string, args ...any) *ParseError {
	return &ParseError{
		Format:  format,
		Message: fmt.Sprintf(msg, args...),
		Cause:   cause,
	}
}

// NewParseErrorAt creates a ParseError with a 1-based line/column location.
func NewParseErrorAt(format string, line, col int, msg string, args ...any) *ParseError {
	return &ParseError{
		Format:  format,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(msg, args...),
	}
}
