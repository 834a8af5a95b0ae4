package parser

import (
	"errors"

	"github.com/funvibe/minml/internal/pipeline"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	if ctx.TokenStream == nil {
		// This case should ideally not be hit if lexer runs first, but as a safeguard:
		ctx.AddError(errors.New("parser: token stream is nil"))
		return ctx
	}

	program, err := Parse(ctx.TokenStream)
	if err != nil {
		ctx.AddError(err)
		return ctx
	}
	program.File = ctx.FilePath
	ctx.AstRoot = program
	return ctx
}
