package analyzer

import (
	"github.com/funvibe/minml/internal/pipeline"
)

type AnalyzerProcessor struct{}

func (ap *AnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.Failed() {
		return ctx
	}
	for _, w := range Analyze(ctx.AstRoot) {
		if w.File == "" {
			w.File = ctx.FilePath
		}
		ctx.Warnings = append(ctx.Warnings, w)
	}
	return ctx
}
