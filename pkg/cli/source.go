package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/funvibe/minml/internal/diagnostics"
	"github.com/funvibe/minml/internal/pipeline"
)

// readSource reads path, or stdin when path is "-".
func (e *env) readSource(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(e.stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}

// newContext reads path into a fresh pipeline context. A read failure is
// recorded as an error diagnostic.
func (e *env) newContext(path string) *pipeline.PipelineContext {
	src, err := e.readSource(path)
	ctx := pipeline.NewPipelineContext(src)
	ctx.FilePath = displayName(path)
	if err != nil {
		ctx.AddError(err)
	}
	return ctx
}

// report prints the diagnostics of ctx to stderr and reports whether any
// errors were among them.
func (e *env) report(ctx *pipeline.PipelineContext, warnings bool) bool {
	em := diagnostics.NewTTYEmitter(e.stderr, diagnostics.NewSourceFile(ctx.FilePath, ctx.SourceCode), e.color)
	if warnings {
		diagnostics.EmitAll(em, ctx.Warnings)
	}
	diagnostics.EmitAll(em, ctx.Errors)
	return ctx.Failed()
}
