// Package errors provides structured error types for arcview.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the explorer server
//   - Machine-readable error codes for programmatic handling
//   - User-facing messages that name the offending file and line
//
// # Error Codes
//
//   - PARSE_ERROR: a line of an input file has the wrong token shape
//   - LOOKUP_ERROR: a vertex id outside the loaded range
//   - DUPLICATE_KEY: a repeated vertex id or derived edge id
//   - INVALID_*: validation failures at the CLI or HTTP boundary
//
// # Usage
//
//	err := errors.New(errors.ErrCodeLookup, "vertex %d out of range [0, %d)", id, n)
//	if errors.Is(err, errors.ErrCodeLookup) {
//	    // Handle lookup error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParse, perr, "load index %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input file errors
	ErrCodeParse        Code = "PARSE_ERROR"
	ErrCodeLookup       Code = "LOOKUP_ERROR"
	ErrCodeDuplicateKey Code = "DUPLICATE_KEY"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Boundary validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"
	ErrCodeInvalidPolicy Code = "INVALID_POLICY"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnavailable Code = "UNAVAILABLE"
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
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
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
// For *Error types the code prefix is dropped; a wrapped *ParseError is
// appended so the message still names the file and line.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	var pe *ParseError
	if errors.As(e.Cause, &pe) {
		return fmt.Sprintf("%s: %s", e.Message, pe.Error())
	}
	return e.Message
}

// ParseError locates a malformed line in an input file.
type ParseError struct {
	File   string // Name of the input (path or stream label)
	Line   int    // 1-based line number
	Text   string // The offending line, trimmed
	Reason string // What was expected
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s:%d: %s (got %q)", e.File, e.Line, e.Reason, e.Text)
}

// Parse builds a PARSE_ERROR wrapping a *ParseError for file:line.
func Parse(file string, line int, text, reason string, args ...any) *Error {
	pe := &ParseError{File: file, Line: line, Text: text, Reason: fmt.Sprintf(reason, args...)}
	return Wrap(ErrCodeParse, pe, "malformed line in %s", file)
}

// Location extracts the file and line of a wrapped *ParseError.
func Location(err error) (file string, line int, ok bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.File, pe.Line, true
	}
	return "", 0, false
}
