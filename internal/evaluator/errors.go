package evaluator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/funvibe/minml/internal/diagnostics"
	"github.com/funvibe/minml/internal/token"
)

var (
	ErrUnknownFunction  = errors.New("unknown function")
	ErrArityMismatch    = errors.New("arity mismatch")
	ErrNoMatchingClause = errors.New("no matching clause")
	ErrStackOverflow    = errors.New("stack overflow")
	ErrUnboundVariable  = errors.New("unbound variable")
	ErrInterrupted      = errors.New("evaluation interrupted")
)

// CallFrame represents a single frame in the call stack
type CallFrame struct {
	Name string         // Function name
	Arg  int64          // Argument value
	Pos  token.Position // Call site; zero for the entry call
}

func (f CallFrame) String() string {
	if f.Pos.IsValid() {
		return fmt.Sprintf("%s %d (called at %s)", f.Name, f.Arg, f.Pos)
	}
	return fmt.Sprintf("%s %d", f.Name, f.Arg)
}

// Error is a runtime failure. Kind is one of the Err* sentinels.
type Error struct {
	Kind  error
	Name  string // function or variable name, when relevant
	Value int64  // unmatched scrutinee, for ErrNoMatchingClause
	Want  int    // declared arity, for ErrArityMismatch
	Got   int    // supplied arguments, for ErrArityMismatch
	Limit int    // depth bound, for ErrStackOverflow
	Pos   token.Position
	Trace []CallFrame // active calls, innermost last
	Cause error       // context error, for ErrInterrupted
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return e.Message() + " at " + e.Pos.String()
	}
	return e.Message()
}

// Message describes the error without its position.
func (e *Error) Message() string {
	var msg string
	switch e.Kind {
	case ErrUnknownFunction:
		msg = fmt.Sprintf("unknown function %q", e.Name)
	case ErrArityMismatch:
		msg = fmt.Sprintf("function %q takes %d argument(s), got %d", e.Name, e.Want, e.Got)
	case ErrNoMatchingClause:
		msg = fmt.Sprintf("no clause matches value %d", e.Value)
	case ErrStackOverflow:
		msg = fmt.Sprintf("call depth exceeded %d in %q", e.Limit, e.Name)
	case ErrUnboundVariable:
		msg = fmt.Sprintf("unbound variable %q", e.Name)
	case ErrInterrupted:
		msg = fmt.Sprintf("evaluation interrupted: %v", e.Cause)
	default:
		msg = e.Kind.Error()
	}
	return msg
}

// Unwrap exposes both the kind and, for interruptions, the context error,
// so errors.Is(err, context.DeadlineExceeded) holds for timeouts.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func (e *Error) Position() token.Position { return e.Pos }

func (e *Error) DiagnosticCode() diagnostics.ErrorCode {
	switch e.Kind {
	case ErrUnknownFunction:
		return diagnostics.ErrR001
	case ErrArityMismatch:
		return diagnostics.ErrR002
	case ErrNoMatchingClause:
		return diagnostics.ErrR003
	case ErrStackOverflow:
		return diagnostics.ErrR004
	case ErrUnboundVariable:
		return diagnostics.ErrR005
	}
	return diagnostics.ErrR006
}

// FormatTrace renders the call stack outermost first, eliding the middle of
// very deep stacks.
func (e *Error) FormatTrace() string {
	const keep = 10
	var sb strings.Builder
	frames := e.Trace
	for i, f := range frames {
		if len(frames) > 2*keep && i == keep {
			fmt.Fprintf(&sb, "  ... %d more frames\n", len(frames)-2*keep)
		}
		if len(frames) > 2*keep && i >= keep && i < len(frames)-keep {
			continue
		}
		fmt.Fprintf(&sb, "  at %s\n", f)
	}
	return sb.String()
}
