// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package refl

import "fmt"

// ErrorKind categorizes shdc errors.
type ErrorKind uint8

const (
	// ErrInput indicates a malformed input file.
	ErrInput ErrorKind = iota

	// ErrReflection indicates a shader could not be compiled or reflected.
	ErrReflection

	// ErrValidation indicates reflection data the emitters cannot represent.
	ErrValidation

	// ErrOutput indicates the output file could not be written.
	ErrOutput
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrInput:
		return "Input"
	case ErrReflection:
		return "Reflection"
	case ErrValidation:
		return "Validation"
	case ErrOutput:
		return "Output"
	default:
		return "Unknown"
	}
}

// ErrFormat selects the layout of formatted error messages.
type ErrFormat uint8

const (
	// ErrFormatGCC prints "file:line:0: error: message".
	ErrFormatGCC ErrFormat = iota

	// ErrFormatMSVC prints "file(line): error: message".
	ErrFormatMSVC
)

// ParseErrFormat resolves "gcc" or "msvc".
func ParseErrFormat(name string) (ErrFormat, error) {
	switch name {
	case "gcc", "":
		return ErrFormatGCC, nil
	case "msvc":
		return ErrFormatMSVC, nil
	default:
		return 0, fmt.Errorf("unknown error format %q (want gcc or msvc)", name)
	}
}

// Error is an error tied to a location in the input file.
type Error struct {
	Kind    ErrorKind
	File    string
	Line    int
	Message string
}

// Error implements the error interface using the gcc format.
func (e *Error) Error() string {
	return e.Format(ErrFormatGCC)
}

// Format renders the error in the given format.
func (e *Error) Format(f ErrFormat) string {
	if f == ErrFormatMSVC {
		return fmt.Sprintf("%s(%d): error: %s", e.File, e.Line, e.Message)
	}
	return fmt.Sprintf("%s:%d:0: error: %s", e.File, e.Line, e.Message)
}

// NewError creates an error at file:line.
func NewError(kind ErrorKind, file string, line int, message string) *Error {
	return &Error{
		Kind:    kind,
		File:    file,
		Line:    line,
		Message: message,
	}
}

// Errorf creates an error at file:line with a formatted message.
func Errorf(kind ErrorKind, file string, line int, format string, args ...any) *Error {
	return NewError(kind, file, line, fmt.Sprintf(format, args...))
}
