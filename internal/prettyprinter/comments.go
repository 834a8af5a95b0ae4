package prettyprinter

import (
	"errors"
	"fmt"

	"github.com/funvibe/minml/internal/ast"
	"github.com/funvibe/minml/internal/diagnostics"
	"github.com/funvibe/minml/internal/token"
)

var ErrInnerComment = errors.New("comment inside a definition")

// CommentError reports a comment inside a function definition. The tree
// does not record where such a comment belongs, so it cannot be printed.
type CommentError struct {
	Func string
	Pos  token.Position
}

func (e *CommentError) Error() string {
	return e.Message() + " at " + e.Pos.String()
}

func (e *CommentError) Message() string {
	return fmt.Sprintf("cannot format: comment inside function %q would be lost", e.Func)
}

func (e *CommentError) Unwrap() error { return ErrInnerComment }

func (e *CommentError) Position() token.Position { return e.Pos }

func (e *CommentError) DiagnosticCode() diagnostics.ErrorCode { return diagnostics.ErrF001 }

// FormatWithComments is Format for a program parsed from source that had
// comments. Comments before a definition are kept above it and comments
// after the last definition are kept at the end. A comment anywhere else
// fails with a *CommentError.
func FormatWithComments(program *ast.Program, comments []token.Comment) (string, error) {
	p := NewCodePrinter()
	defs := program.Defs()
	for _, c := range comments {
		switch c.Next.Type {
		case token.FUN:
			if p.leading == nil {
				p.leading = make(map[int][]string)
			}
			p.leading[c.Next.Pos.Offset] = append(p.leading[c.Next.Pos.Offset], c.Text)
		case token.EOF:
			p.trailing = append(p.trailing, c.Text)
		default:
			return "", &CommentError{Func: enclosing(defs, c.Pos), Pos: c.Pos}
		}
	}
	program.Accept(p)
	return p.String(), nil
}

// enclosing names the last definition starting before pos.
func enclosing(defs []*ast.FunctionDef, pos token.Position) string {
	name := ""
	for _, fn := range defs {
		if fn.Token.Pos.Offset > pos.Offset {
			break
		}
		name = fn.Name.Value
	}
	return name
}
