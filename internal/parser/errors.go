package parser

import (
	"errors"
	"fmt"

	"github.com/funvibe/minml/internal/diagnostics"
	"github.com/funvibe/minml/internal/token"
)

var (
	ErrUnexpectedToken   = errors.New("unexpected token")
	ErrDuplicateFunction = errors.New("duplicate function")
	ErrEmptyCaseBody     = errors.New("empty case body")
)

// Error is a syntax error. Kind is one of the Err* sentinels.
type Error struct {
	Kind     error
	Expected string      // ErrUnexpectedToken: what the grammar allowed
	Found    token.Token // ErrUnexpectedToken: what was there instead
	Name     string      // ErrDuplicateFunction: the redefined name
	First    token.Position
	Pos      token.Position
}

func (e *Error) Error() string {
	return e.Message() + " at " + e.Pos.String()
}

// Message describes the error without its position.
func (e *Error) Message() string {
	switch e.Kind {
	case ErrUnexpectedToken:
		return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
	case ErrDuplicateFunction:
		return fmt.Sprintf("function %q is already defined at %s", e.Name, e.First)
	case ErrEmptyCaseBody:
		return "case expression has no clauses"
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

func (e *Error) Position() token.Position { return e.Pos }

func (e *Error) DiagnosticCode() diagnostics.ErrorCode {
	switch e.Kind {
	case ErrDuplicateFunction:
		return diagnostics.ErrP002
	case ErrEmptyCaseBody:
		return diagnostics.ErrP003
	}
	return diagnostics.ErrP001
}
