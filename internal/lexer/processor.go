package lexer

import (
	"github.com/funvibe/minml/internal/pipeline"
)

type LexerProcessor struct{}

// Process installs a lazy token stream over ctx.SourceCode. Lexical errors
// surface when the parser pulls the offending token.
func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	ctx.TokenStream = NewTokenStream(ctx.SourceCode)
	return ctx
}
