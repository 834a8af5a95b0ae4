package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/funvibe/minml/internal/pipeline"
	"github.com/funvibe/minml/internal/store"
)

// storeProcessor answers an evaluation from the result store when it can
// and records fresh results. A stored result that needed more than maxDepth
// frames is ignored so the bound still fails the run. Store failures are
// logged and never fail the run.
type storeProcessor struct {
	store    *store.Store
	next     pipeline.Processor
	logger   *zap.Logger
	maxDepth int

	hit bool
}

func (sp *storeProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if sp.store == nil || ctx.AstRoot == nil || ctx.Failed() || ctx.Entry == "" {
		return sp.next.Process(ctx)
	}
	key := store.Key{Source: ctx.SourceCode, Entry: ctx.Entry, Args: ctx.Args}

	rec, ok, err := sp.store.Get(ctx.Context, key)
	switch {
	case err != nil:
		sp.logger.Warn("result store lookup failed", zap.Error(err))
	case ok && rec.MaxDepth > sp.maxDepth:
		sp.logger.Debug("result store hit exceeds depth bound",
			zap.String("entry", ctx.Entry), zap.Int("max_depth", rec.MaxDepth), zap.Int("limit", sp.maxDepth))
	case ok:
		sp.hit = true
		sp.logger.Debug("result store hit", zap.String("entry", ctx.Entry), zap.Time("created", rec.Created))
		ctx.Result = rec.Value
		ctx.HasResult = true
		ctx.Calls = rec.Calls
		ctx.MaxDepth = rec.MaxDepth
		return ctx
	}

	ctx = sp.next.Process(ctx)
	if ctx.Failed() || !ctx.HasResult {
		return ctx
	}
	err = sp.store.Put(ctx.Context, key, store.Record{Value: ctx.Result, Calls: ctx.Calls, MaxDepth: ctx.MaxDepth})
	if err != nil {
		sp.logger.Warn("result store update failed", zap.Error(err))
	}
	return ctx
}

// storeEnv provides the environment for the store command.
type storeEnv struct {
	*env

	flagPrune time.Duration
}

// getStoreCmd returns the definition of the store command.
func (e *env) getStoreCmd() *cobra.Command {
	s := &storeEnv{env: e}

	ret := &cobra.Command{
		Use:   "store DB",
		Short: "Inspect or prune a result store",
		Long: `
Print the number of results kept in the SQLite database DB, as written by
run --store. With --prune, first delete results older than the given age.`,
		Args: cobra.ExactArgs(1),
		RunE: s.runStoreCmd,
	}
	ret.Flags().DurationVar(&s.flagPrune, "prune", 0, "Delete results older than this age")
	return ret
}

func (s *storeEnv) runStoreCmd(cmd *cobra.Command, args []string) error {
	if s.flagPrune < 0 {
		return usageErr("--prune must not be negative, got %s", s.flagPrune)
	}
	ctx := cmd.Context()
	st, err := store.Open(ctx, args[0])
	if err != nil {
		return failure(err)
	}
	defer st.Close()

	if s.flagPrune > 0 {
		n, err := st.Prune(ctx, time.Now().Add(-s.flagPrune))
		if err != nil {
			return failure(err)
		}
		fmt.Fprintf(s.stdout, "pruned: %d\n", n)
	}
	n, err := st.Len(ctx)
	if err != nil {
		return failure(err)
	}
	fmt.Fprintf(s.stdout, "results: %d\n", n)
	return nil
}
