package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/funvibe/minml/internal/analyzer"
	"github.com/funvibe/minml/internal/lexer"
	"github.com/funvibe/minml/internal/parser"
	"github.com/funvibe/minml/internal/pipeline"
)

// checkEnv provides the environment for the check command.
type checkEnv struct {
	*env

	flagStrict bool
}

// getCheckCmd returns the definition of the check command.
func (e *env) getCheckCmd() *cobra.Command {
	c := &checkEnv{env: e}

	ret := &cobra.Command{
		Use:   "check FILE...",
		Short: "Report syntax errors and lint warnings",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.runCheckCmd,
	}
	ret.Flags().BoolVar(&c.flagStrict, "strict", false, "Treat warnings as errors")
	return ret
}

func (c *checkEnv) runCheckCmd(cmd *cobra.Command, args []string) error {
	failed := false
	for _, path := range args {
		ctx := pipeline.New(
			&lexer.LexerProcessor{},
			&parser.ParserProcessor{},
			&analyzer.AnalyzerProcessor{},
		).Run(c.newContext(path))

		if c.report(ctx, true) || (c.flagStrict && len(ctx.Warnings) > 0) {
			failed = true
			continue
		}
		if len(ctx.Warnings) == 0 {
			fmt.Fprintf(c.stdout, "%s: ok\n", ctx.FilePath)
		} else {
			fmt.Fprintf(c.stdout, "%s: %d warning(s)\n", ctx.FilePath, len(ctx.Warnings))
		}
	}
	if failed {
		return reported()
	}
	return nil
}
