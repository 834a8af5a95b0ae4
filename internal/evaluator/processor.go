package evaluator

import (
	"github.com/funvibe/minml/internal/pipeline"
)

// EvaluatorProcessor calls ctx.Entry with ctx.Args. Options configure every
// evaluation it runs.
type EvaluatorProcessor struct {
	Options []Option
}

func (ep *EvaluatorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.Failed() || ctx.Entry == "" {
		return ctx
	}

	out, err := New(ctx.AstRoot, ep.Options...).Exec(ctx.Context, ctx.Entry, ctx.Args)
	ctx.Calls = out.Calls
	ctx.MaxDepth = out.MaxDepth
	if err != nil {
		ctx.AddError(err)
		return ctx
	}
	ctx.Result = out.Value
	ctx.HasResult = true
	return ctx
}
