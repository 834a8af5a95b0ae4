package evaluator

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/funvibe/minml/internal/ast"
	"github.com/funvibe/minml/internal/config"
	"github.com/funvibe/minml/internal/token"
)

// Evaluator runs functions of one parsed Program. It holds configuration
// only; each Evaluate call keeps its own activation state, so one Evaluator
// may serve concurrent calls.
type Evaluator struct {
	program  *ast.Program
	maxDepth int
	logger   *zap.Logger
	memo     *Memo
}

type Option func(*Evaluator)

// WithMaxDepth bounds the number of nested calls. Values below 1 keep the
// default.
func WithMaxDepth(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// WithLogger enables debug-level call tracing.
func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMemo caches call results in m. A nil m disables caching.
func WithMemo(m *Memo) Option {
	return func(e *Evaluator) { e.memo = m }
}

func New(program *ast.Program, opts ...Option) *Evaluator {
	e := &Evaluator{
		program:  program,
		maxDepth: config.DefaultMaxDepth,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Outcome is the result of one evaluation together with its cost.
type Outcome struct {
	Value    int64
	Calls    int // function bodies evaluated; memo hits are not counted
	MaxDepth int // deepest call nesting needed; a memo hit counts the depth its body used
}

// Evaluate is a convenience wrapper that runs name with default options.
func Evaluate(program *ast.Program, name string, args []int64) (int64, error) {
	return New(program).Evaluate(context.Background(), name, args)
}

func (e *Evaluator) Evaluate(ctx context.Context, name string, args []int64) (int64, error) {
	out, err := e.Exec(ctx, name, args)
	return out.Value, err
}

// Exec calls the function name with args. Cancelling ctx stops the
// evaluation with ErrInterrupted.
func (e *Evaluator) Exec(ctx context.Context, name string, args []int64) (Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	fn, ok := e.program.Lookup(name)
	if !ok {
		return Outcome{}, &Error{Kind: ErrUnknownFunction, Name: name}
	}
	if len(args) != fn.Arity() {
		return Outcome{}, &Error{Kind: ErrArityMismatch, Name: name, Want: fn.Arity(), Got: len(args)}
	}

	r := &activation{Evaluator: e, ctx: ctx, done: ctx.Done()}
	if err := r.interrupted(); err != nil {
		return Outcome{}, err
	}
	v, err := r.call(fn, args[0], token.Position{})
	out := Outcome{Calls: r.calls, MaxDepth: r.deepest}
	if err != nil {
		return out, err
	}
	out.Value = v
	return out, nil
}

// checkInterval is how many calls pass between context polls.
const checkInterval = 256

// activation is the mutable state of one Exec.
type activation struct {
	*Evaluator
	ctx  context.Context
	done <-chan struct{}

	stack []CallFrame
	calls int
	// deepest is the highest stack depth needed so far, including depth
	// skipped by memo hits.
	deepest int
}

func (r *activation) interrupted() error {
	if r.done == nil {
		return nil
	}
	select {
	case <-r.done:
		return r.fail(&Error{Kind: ErrInterrupted, Cause: r.ctx.Err()})
	default:
		return nil
	}
}

// fail attaches the current call stack to err.
func (r *activation) fail(err *Error) *Error {
	err.Trace = append([]CallFrame(nil), r.stack...)
	return err
}

func (r *activation) call(fn *ast.FunctionDef, arg int64, site token.Position) (int64, error) {
	name := fn.Name.Value
	base := len(r.stack)
	if base >= r.maxDepth {
		return 0, r.fail(&Error{Kind: ErrStackOverflow, Name: name, Limit: r.maxDepth, Pos: site})
	}
	// A hit counts only if re-evaluating would stay within the bound.
	if r.memo != nil {
		if ent, ok := r.memo.get(r.program, name, arg); ok && base+ent.depth <= r.maxDepth {
			r.deepest = max(r.deepest, base+ent.depth)
			return ent.value, nil
		}
	}

	r.calls++
	if r.calls%checkInterval == 0 {
		if err := r.interrupted(); err != nil {
			return 0, err
		}
	}

	r.stack = append(r.stack, CallFrame{Name: name, Arg: arg, Pos: site})
	if ce := r.logger.Check(zapcore.DebugLevel, "call"); ce != nil {
		ce.Write(zap.String("fn", name), zap.Int64("arg", arg), zap.Int("depth", len(r.stack)))
	}

	outer := r.deepest
	r.deepest = len(r.stack)

	env := NewEnvironment()
	env.Set(fn.Parameter.Value, arg)
	v, err := r.eval(fn.Body, env)
	r.stack = r.stack[:len(r.stack)-1]
	used := r.deepest - base
	r.deepest = max(outer, r.deepest)
	if err != nil {
		return 0, err
	}

	if r.memo != nil {
		r.memo.add(r.program, name, arg, v, used)
	}
	return v, nil
}
