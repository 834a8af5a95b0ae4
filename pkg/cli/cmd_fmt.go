package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/funvibe/minml/internal/lexer"
	"github.com/funvibe/minml/internal/parser"
	"github.com/funvibe/minml/internal/pipeline"
	"github.com/funvibe/minml/internal/prettyprinter"
)

// fmtEnv provides the environment for the fmt command.
type fmtEnv struct {
	*env

	flagWrite bool
	flagList  bool
}

// getFmtCmd returns the definition of the fmt command.
func (e *env) getFmtCmd() *cobra.Command {
	f := &fmtEnv{env: e}

	ret := &cobra.Command{
		Use:   "fmt FILE...",
		Short: "Print source in canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE:  f.runFmtCmd,
	}
	ret.Flags().BoolVarP(&f.flagWrite, "write", "w", false, "Write the result back to the source file")
	ret.Flags().BoolVarP(&f.flagList, "list", "l", false, "List files whose formatting differs")
	return ret
}

func (f *fmtEnv) runFmtCmd(cmd *cobra.Command, args []string) error {
	if f.flagWrite {
		for _, path := range args {
			if path == "-" {
				return usageErr("cannot use -w with stdin")
			}
		}
	}

	failed := false
	for _, path := range args {
		ctx := pipeline.New(
			&lexer.LexerProcessor{},
			&parser.ParserProcessor{},
		).Run(f.newContext(path))
		if f.report(ctx, false) {
			failed = true
			continue
		}

		formatted, err := format(ctx)
		if err != nil {
			ctx.AddError(err)
			f.report(ctx, false)
			failed = true
			continue
		}

		changed := formatted != ctx.SourceCode
		switch {
		case f.flagList:
			if changed {
				fmt.Fprintln(f.stdout, ctx.FilePath)
			}
		case f.flagWrite:
			if !changed {
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				return failure(err)
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return failure(fmt.Errorf("writing %s: %w", path, err))
			}
		default:
			fmt.Fprint(f.stdout, formatted)
		}
	}
	if failed {
		return reported()
	}
	return nil
}

// format prints the parsed program of ctx with its comments. Files with a
// comment inside a definition are refused rather than rewritten without it.
func format(ctx *pipeline.PipelineContext) (string, error) {
	comments, err := lexer.Comments(ctx.SourceCode)
	if err != nil {
		return "", err
	}
	return prettyprinter.FormatWithComments(ctx.AstRoot, comments)
}
