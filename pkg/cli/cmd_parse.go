package cli

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/funvibe/minml/internal/lexer"
	"github.com/funvibe/minml/internal/parser"
	"github.com/funvibe/minml/internal/pipeline"
	"github.com/funvibe/minml/internal/prettyprinter"
)

// parseEnv provides the environment for the parse command.
type parseEnv struct {
	*env

	flagTree bool
	flagDump bool
}

// getParseCmd returns the definition of the parse command.
func (e *env) getParseCmd() *cobra.Command {
	p := &parseEnv{env: e}

	ret := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a file and list its functions",
		Args:  cobra.ExactArgs(1),
		RunE:  p.runParseCmd,
	}
	ret.Flags().BoolVar(&p.flagTree, "tree", false, "Print the syntax tree")
	ret.Flags().BoolVar(&p.flagDump, "dump", false, "Print the raw Go structures of the syntax tree")
	return ret
}

func (p *parseEnv) runParseCmd(cmd *cobra.Command, args []string) error {
	ctx := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
	).Run(p.newContext(args[0]))
	if p.report(ctx, false) {
		return reported()
	}

	switch {
	case p.flagDump:
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		fmt.Fprint(p.stdout, cfg.Sdump(ctx.AstRoot))
	case p.flagTree:
		fmt.Fprint(p.stdout, prettyprinter.Dump(ctx.AstRoot))
	default:
		for _, fn := range ctx.AstRoot.Defs() {
			fmt.Fprintf(p.stdout, "fun %s %s\t(%s)\n", fn.Name.Value, fn.Parameter.Value, fn.Token.Pos)
		}
	}
	return nil
}
