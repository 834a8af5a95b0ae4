package diagnostics

import (
	"errors"
	"fmt"

	"github.com/funvibe/minml/internal/token"
)

type ErrorCode string

// Lexer errors
const (
	ErrL001 ErrorCode = "L001" // unexpected character
	ErrL002 ErrorCode = "L002" // unterminated comment
	ErrL003 ErrorCode = "L003" // integer literal out of range
)

// Parser errors
const (
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // duplicate function
	ErrP003 ErrorCode = "P003" // empty case body
)

// Runtime errors
const (
	ErrR001 ErrorCode = "R001" // unknown function
	ErrR002 ErrorCode = "R002" // arity mismatch
	ErrR003 ErrorCode = "R003" // no matching clause
	ErrR004 ErrorCode = "R004" // stack overflow
	ErrR005 ErrorCode = "R005" // unbound variable
	ErrR006 ErrorCode = "R006" // interrupted
)

// Lint warnings
const (
	WarnW001 ErrorCode = "W001" // clause shadowed by an earlier wildcard
	WarnW002 ErrorCode = "W002" // duplicate literal pattern
	WarnW003 ErrorCode = "W003" // call to undefined function
	WarnW004 ErrorCode = "W004" // case has no wildcard clause
)

// Formatter errors
const (
	ErrF001 ErrorCode = "F001" // comment the formatter cannot place
)

// ErrX000 marks an error that did not come from any pipeline stage.
const ErrX000 ErrorCode = "X000"

type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelNote
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelNote:
		return "note"
	}
	return "error"
}

// DiagnosticError is a positioned, coded message reported by a pipeline stage.
type DiagnosticError struct {
	Code    ErrorCode
	Level   Level
	Pos     token.Position
	Message string
	File    string
	Err     error // originating stage error, if any
}

func (e *DiagnosticError) Error() string {
	loc := e.File
	if e.Pos.IsValid() {
		if loc != "" {
			loc += ":"
		}
		loc += e.Pos.String()
	}
	if loc == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", loc, e.Code, e.Message)
}

func (e *DiagnosticError) Unwrap() error { return e.Err }

func NewError(code ErrorCode, pos token.Position, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Level: LevelError, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func NewWarning(code ErrorCode, pos token.Position, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Level: LevelWarning, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Coded is implemented by the structured errors of every pipeline stage.
// Message excludes the position, which diagnostics print separately.
type Coded interface {
	error
	DiagnosticCode() ErrorCode
	Position() token.Position
	Message() string
}

// FromError converts a stage error into a diagnostic. Errors that are not
// Coded become X000 diagnostics without a position.
func FromError(err error) *DiagnosticError {
	if err == nil {
		return nil
	}
	var d *DiagnosticError
	if errors.As(err, &d) {
		return d
	}
	var c Coded
	if errors.As(err, &c) {
		return &DiagnosticError{
			Code:    c.DiagnosticCode(),
			Level:   LevelError,
			Pos:     c.Position(),
			Message: c.Message(),
			Err:     err,
		}
	}
	return &DiagnosticError{Code: ErrX000, Level: LevelError, Message: err.Error(), Err: err}
}
