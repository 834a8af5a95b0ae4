package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/funvibe/minml/internal/analyzer"
	"github.com/funvibe/minml/internal/ast"
	"github.com/funvibe/minml/internal/config"
	"github.com/funvibe/minml/internal/evaluator"
	"github.com/funvibe/minml/internal/lexer"
	"github.com/funvibe/minml/internal/parser"
	"github.com/funvibe/minml/internal/pipeline"
	"github.com/funvibe/minml/internal/store"
)

// runEnv provides the environment for the run command.
type runEnv struct {
	*env

	flagEntry    string
	flagMemo     bool
	flagMaxDepth int
	flagTimeout  time.Duration
	flagStats    bool
	flagWarnings bool
	flagStore    string
}

// getRunCmd returns the definition of the run command.
func (e *env) getRunCmd() *cobra.Command {
	r := &runEnv{env: e}

	ret := &cobra.Command{
		Use:   "run FILE [ARGS...]",
		Short: "Evaluate a function and print its result",
		Long: `
Evaluate one function of FILE (use - for stdin) with ARGS and print the
integer result. Put negative arguments after --.

The function is chosen with --entry. Without it, main is used if defined,
otherwise the only function of the file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.runRunCmd,
	}
	ret.Flags().StringVarP(&r.flagEntry, "entry", "e", "", "Function to call")
	ret.Flags().BoolVar(&r.flagMemo, "memo", false, "Cache call results (overrides eval.memoize)")
	ret.Flags().IntVar(&r.flagMaxDepth, "max-depth", 0, "Maximum call depth (overrides eval.max_depth)")
	ret.Flags().DurationVar(&r.flagTimeout, "timeout", 0, "Abort evaluation after this long (overrides eval.timeout)")
	ret.Flags().BoolVar(&r.flagStats, "stats", false, "Print call statistics to stderr")
	ret.Flags().BoolVarP(&r.flagWarnings, "warnings", "W", false, "Print lint warnings before running")
	ret.Flags().StringVar(&r.flagStore, "store", "", "SQLite file of earlier results to reuse and extend (overrides eval.store)")
	return ret
}

// runRunCmd lexes, parses, lints and evaluates one file.
func (r *runEnv) runRunCmd(cmd *cobra.Command, args []string) error {
	var callArgs []int64
	for _, a := range args[1:] {
		n, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return usageErr("argument %q is not a 64-bit integer", a)
		}
		callArgs = append(callArgs, n)
	}

	maxDepth, err := r.maxDepth(cmd)
	if err != nil {
		return err
	}
	opts, err := r.evalOptions(cmd, maxDepth)
	if err != nil {
		return err
	}

	ctx := r.newContext(args[0])
	ctx.Args = callArgs

	timeout := r.cfg.Eval.Timeout
	if cmd.Flags().Changed("timeout") {
		timeout = r.flagTimeout
	}
	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, timeout)
		defer cancel()
	}
	ctx.Context = runCtx

	storePath := r.cfg.Eval.Store
	if cmd.Flags().Changed("store") {
		storePath = r.flagStore
	}
	sp := &storeProcessor{next: &evaluator.EvaluatorProcessor{Options: opts}, logger: r.logger, maxDepth: maxDepth}
	if storePath != "" {
		st, err := store.Open(runCtx, storePath)
		if err != nil {
			return failure(err)
		}
		defer st.Close()
		sp.store = st
	}

	start := time.Now()
	ctx = pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.AnalyzerProcessor{},
		&entryProcessor{explicit: r.flagEntry},
		sp,
	).Run(ctx)
	elapsed := time.Since(start)

	r.logger.Debug("run finished",
		zap.String("file", ctx.FilePath),
		zap.String("entry", ctx.Entry),
		zap.Int("calls", ctx.Calls),
		zap.Int("max_depth", ctx.MaxDepth),
		zap.Duration("elapsed", elapsed),
		zap.Bool("stored", sp.hit),
		zap.Bool("ok", !ctx.Failed()))

	if r.report(ctx, r.flagWarnings) {
		var eerr *evaluator.Error
		if errors.As(ctx.FirstError(), &eerr) && len(eerr.Trace) > 0 {
			fmt.Fprintf(r.stderr, "Stack trace:\n%s", eerr.FormatTrace())
		}
		return reported()
	}
	fmt.Fprintln(r.stdout, ctx.Result)
	if r.flagStats {
		fmt.Fprintf(r.stderr, "calls: %d, max depth: %d, elapsed: %s", ctx.Calls, ctx.MaxDepth, elapsed.Round(time.Microsecond))
		if sp.hit {
			fmt.Fprint(r.stderr, " (stored)")
		}
		fmt.Fprintln(r.stderr)
	}
	return nil
}

func (r *runEnv) maxDepth(cmd *cobra.Command) (int, error) {
	if !cmd.Flags().Changed("max-depth") {
		return r.cfg.Eval.MaxDepth, nil
	}
	if r.flagMaxDepth < 1 {
		return 0, usageErr("--max-depth must be positive, got %d", r.flagMaxDepth)
	}
	return r.flagMaxDepth, nil
}

func (r *runEnv) evalOptions(cmd *cobra.Command, maxDepth int) ([]evaluator.Option, error) {
	opts := []evaluator.Option{
		evaluator.WithMaxDepth(maxDepth),
		evaluator.WithLogger(r.logger),
	}

	memoize := r.cfg.Eval.Memoize
	if cmd.Flags().Changed("memo") {
		memoize = r.flagMemo
	}
	if memoize {
		memo, err := evaluator.NewMemo(r.cfg.Eval.MemoSize)
		if err != nil {
			return nil, err
		}
		opts = append(opts, evaluator.WithMemo(memo))
	}
	return opts, nil
}

// entryProcessor picks the function to run once the program is parsed.
type entryProcessor struct {
	explicit string
}

func (ep *entryProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.Failed() {
		return ctx
	}
	entry, err := resolveEntry(ctx.AstRoot, ep.explicit)
	if err != nil {
		ctx.AddError(err)
		return ctx
	}
	ctx.Entry = entry
	return ctx
}

func resolveEntry(prog *ast.Program, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if _, ok := prog.Lookup(config.DefaultEntry); ok {
		return config.DefaultEntry, nil
	}
	switch len(prog.Order) {
	case 0:
		return "", fmt.Errorf("no functions defined")
	case 1:
		return prog.Order[0], nil
	}
	return "", fmt.Errorf("several functions defined and none is %q; choose one with --entry", config.DefaultEntry)
}
