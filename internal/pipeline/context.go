package pipeline

import (
	"context"

	"github.com/funvibe/minml/internal/ast"
	"github.com/funvibe/minml/internal/diagnostics"
	"github.com/funvibe/minml/internal/token"
)

// TokenStream is the pull interface the lexer hands to the parser.
type TokenStream interface {
	Next() token.Token
	Peek(n int) []token.Token
	Err() error
	Close()
}

// PipelineContext carries one source unit through lexing, parsing, linting
// and evaluation.
type PipelineContext struct {
	Context context.Context

	SourceCode string
	FilePath   string

	TokenStream TokenStream
	AstRoot     *ast.Program

	// Entry and Args select the function to evaluate. An empty Entry stops
	// the pipeline after analysis.
	Entry string
	Args  []int64

	Result    int64
	HasResult bool
	Calls     int // function bodies evaluated
	MaxDepth  int // deepest call nesting reached

	Errors   []*diagnostics.DiagnosticError
	Warnings []*diagnostics.DiagnosticError
}

func NewPipelineContext(sourceCode string) *PipelineContext {
	return &PipelineContext{
		Context:    context.Background(),
		SourceCode: sourceCode,
	}
}

// Failed reports whether any stage has recorded an error.
func (c *PipelineContext) Failed() bool {
	return len(c.Errors) > 0
}

// AddError records err as a diagnostic, tagging it with the source file.
func (c *PipelineContext) AddError(err error) {
	d := diagnostics.FromError(err)
	if d == nil {
		return
	}
	if d.File == "" {
		d.File = c.FilePath
	}
	c.Errors = append(c.Errors, d)
}

// FirstError returns the underlying error of the first diagnostic, or nil.
func (c *PipelineContext) FirstError() error {
	if len(c.Errors) == 0 {
		return nil
	}
	if c.Errors[0].Err != nil {
		return c.Errors[0].Err
	}
	return c.Errors[0]
}
