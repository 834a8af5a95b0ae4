// Package minml embeds the minml evaluator in Go programs.
//
// The simplest entry point is Run:
//
//	n, err := minml.Run(`fun fib n = case n in 0 => 0 | 1 => 1 | _ => fib (n - 1) + fib (n - 2)`, "fib", []int64{10})
//
// Compile parses once and returns a Script whose functions can be called
// any number of times, concurrently.
package minml

import (
	"context"
	"fmt"
	"os"
	"reflect"

	"go.uber.org/zap"

	"github.com/funvibe/minml/internal/analyzer"
	"github.com/funvibe/minml/internal/ast"
	"github.com/funvibe/minml/internal/config"
	"github.com/funvibe/minml/internal/evaluator"
	"github.com/funvibe/minml/internal/lexer"
	"github.com/funvibe/minml/internal/parser"
	"github.com/funvibe/minml/internal/pipeline"
)

// Errors reported by Compile and Call, for use with errors.Is.
var (
	ErrUnexpectedChar      = lexer.ErrUnexpectedChar
	ErrUnterminatedComment = lexer.ErrUnterminatedComment
	ErrIntegerOverflow     = lexer.ErrIntegerOverflow

	ErrUnexpectedToken   = parser.ErrUnexpectedToken
	ErrDuplicateFunction = parser.ErrDuplicateFunction
	ErrEmptyCaseBody     = parser.ErrEmptyCaseBody

	ErrUnknownFunction  = evaluator.ErrUnknownFunction
	ErrArityMismatch    = evaluator.ErrArityMismatch
	ErrNoMatchingClause = evaluator.ErrNoMatchingClause
	ErrStackOverflow    = evaluator.ErrStackOverflow
	ErrUnboundVariable  = evaluator.ErrUnboundVariable
	ErrInterrupted      = evaluator.ErrInterrupted
)

// Outcome is a call result together with its cost.
type Outcome = evaluator.Outcome

// Options configure a Script. The zero value uses the defaults.
type Options struct {
	// MaxDepth bounds nested calls; 0 means config.DefaultMaxDepth.
	MaxDepth int
	// Memoize caches results of calls by function and argument.
	Memoize bool
	// MemoSize is the cache capacity; 0 means config.DefaultMemoSize.
	MemoSize int
	// Logger receives debug-level call traces. Nil disables logging.
	Logger *zap.Logger
	// Filename labels diagnostics.
	Filename string
}

// OptionsFromConfig maps the eval section of a configuration file onto
// Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxDepth: cfg.Eval.MaxDepth,
		Memoize:  cfg.Eval.Memoize,
		MemoSize: cfg.Eval.MemoSize,
	}
}

// Script is a compiled source unit. It is immutable and safe for
// concurrent use.
type Script struct {
	program    *ast.Program
	eval       *evaluator.Evaluator
	memo       *evaluator.Memo
	warnings   []error
	marshaller *Marshaller
}

// Run compiles source and calls entry with args.
func Run(source, entry string, args []int64) (int64, error) {
	s, err := Compile(source)
	if err != nil {
		return 0, err
	}
	return s.Call(context.Background(), entry, args...)
}

// Compile lexes, parses and lints source with default options.
func Compile(source string) (*Script, error) {
	return CompileWithOptions(source, Options{})
}

// CompileWithOptions lexes, parses and lints source. The returned error is
// the first lexical or syntax error.
func CompileWithOptions(source string, opts Options) (*Script, error) {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = opts.Filename

	ctx = pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.AnalyzerProcessor{},
	).Run(ctx)

	if err := ctx.FirstError(); err != nil {
		return nil, err
	}

	s := &Script{program: ctx.AstRoot, marshaller: NewMarshaller()}
	for _, w := range ctx.Warnings {
		s.warnings = append(s.warnings, w)
	}

	evalOpts := []evaluator.Option{evaluator.WithMaxDepth(opts.MaxDepth)}
	if opts.Logger != nil {
		evalOpts = append(evalOpts, evaluator.WithLogger(opts.Logger))
	}
	if opts.Memoize {
		size := opts.MemoSize
		if size <= 0 {
			size = config.DefaultMemoSize
		}
		memo, err := evaluator.NewMemo(size)
		if err != nil {
			return nil, err
		}
		s.memo = memo
		evalOpts = append(evalOpts, evaluator.WithMemo(memo))
	}
	s.eval = evaluator.New(s.program, evalOpts...)
	return s, nil
}

// LoadFile compiles the source file at path.
func LoadFile(path string, opts Options) (*Script, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if opts.Filename == "" {
		opts.Filename = path
	}
	return CompileWithOptions(string(content), opts)
}

// Call evaluates the function name with args.
func (s *Script) Call(ctx context.Context, name string, args ...int64) (int64, error) {
	return s.eval.Evaluate(ctx, name, args)
}

// Exec is Call that also reports how many calls the evaluation made.
func (s *Script) Exec(ctx context.Context, name string, args ...int64) (Outcome, error) {
	return s.eval.Exec(ctx, name, args)
}

// Invoke converts Go arguments with the Marshaller and calls name.
func (s *Script) Invoke(ctx context.Context, name string, args ...interface{}) (int64, error) {
	ints, err := s.marshaller.ToValues(args)
	if err != nil {
		return 0, err
	}
	return s.Call(ctx, name, ints...)
}

// CallInto calls name and stores the result in out, which must be a
// non-nil pointer to a numeric or string variable.
func (s *Script) CallInto(ctx context.Context, out interface{}, name string, args ...interface{}) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("CallInto: out must be a non-nil pointer, got %T", out)
	}
	n, err := s.Invoke(ctx, name, args...)
	if err != nil {
		return err
	}
	v, err := s.marshaller.FromValue(n, rv.Elem().Type())
	if err != nil {
		return err
	}
	rv.Elem().Set(reflect.ValueOf(v))
	return nil
}

// Functions returns the names of the defined functions in source order.
func (s *Script) Functions() []string {
	return append([]string(nil), s.program.Order...)
}

// HasFunction reports whether name is defined.
func (s *Script) HasFunction(name string) bool {
	_, ok := s.program.Lookup(name)
	return ok
}

// Warnings returns the lint warnings found at compile time.
func (s *Script) Warnings() []error {
	return s.warnings
}

// CacheSize reports how many results the memo cache holds, or 0 when
// memoization is off.
func (s *Script) CacheSize() int {
	if s.memo == nil {
		return 0
	}
	return s.memo.Len()
}
