package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/funvibe/minml/internal/lexer"
)

// getTokensCmd returns the definition of the tokens command.
func (e *env) getTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runTokensCmd,
	}
}

func (e *env) runTokensCmd(cmd *cobra.Command, args []string) error {
	ctx := e.newContext(args[0])
	if e.report(ctx, false) {
		return reported()
	}

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	for tok, err := range lexer.Tokenize(ctx.SourceCode) {
		if err != nil {
			tw.Flush()
			ctx.AddError(err)
			e.report(ctx, false)
			return reported()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%q\n", tok.Pos, tok.Type, tok.Type.Category(), tok.Lexeme)
	}
	return tw.Flush()
}
