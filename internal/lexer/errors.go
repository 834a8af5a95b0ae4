package lexer

import (
	"errors"
	"fmt"

	"github.com/funvibe/minml/internal/diagnostics"
	"github.com/funvibe/minml/internal/token"
)

var (
	ErrUnexpectedChar      = errors.New("unexpected character")
	ErrUnterminatedComment = errors.New("unterminated comment")
	ErrIntegerOverflow     = errors.New("integer literal out of range")
)

// Error is a lexical error. Kind is one of the Err* sentinels and is
// reachable through errors.Is.
type Error struct {
	Kind error
	Pos  token.Position
	Char rune   // offending character, for ErrUnexpectedChar
	Text string // offending literal, for ErrIntegerOverflow
}

func (e *Error) Error() string {
	return e.Message() + " at " + e.Pos.String()
}

// Message describes the error without its position.
func (e *Error) Message() string {
	switch e.Kind {
	case ErrUnexpectedChar:
		return fmt.Sprintf("unexpected character %q", e.Char)
	case ErrUnterminatedComment:
		return "unterminated comment"
	case ErrIntegerOverflow:
		return fmt.Sprintf("integer literal %s does not fit in 64 bits", e.Text)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

func (e *Error) Position() token.Position { return e.Pos }

func (e *Error) DiagnosticCode() diagnostics.ErrorCode {
	switch e.Kind {
	case ErrUnterminatedComment:
		return diagnostics.ErrL002
	case ErrIntegerOverflow:
		return diagnostics.ErrL003
	}
	return diagnostics.ErrL001
}
