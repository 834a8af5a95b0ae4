package prettyprinter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/minml/internal/ast"
	"github.com/funvibe/minml/internal/diagnostics"
	"github.com/funvibe/minml/internal/lexer"
	"github.com/funvibe/minml/internal/parser"
	"github.com/funvibe/minml/internal/prettyprinter"
)

const fibSource = `fun fib n = case n in 0 => 0 | 1 => 1 | _ => fib (n - 1) + fib (n - 2)`

var roundTripSeeds = []string{
	fibSource,
	"fun f x = 1 + 2 * 3",
	"fun f x = (1 + 2) * 3",
	"fun f x = 1 - (2 - 3)",
	"fun f x = (1 - 2) - 3",
	"fun f x = g (h x)",
	"fun f x = g ((x))",
	"fun f x = case x in 0 => (case x in 1 => 2) | _ => 3",
	"fun f x = case x in 0 => case x in 1 => 2 | _ => 3",
	"fun f x = case case x in _ => 1 in 1 => 2",
	"fun f x = 1 + (case x in _ => 2) * 3",
	"fun f x = g (case x in 0 => 1 | _ => 2)",
	"fun even n = case n in 0 => 1 | _ => odd (n - 1)\nfun odd n = case n in 0 => 0 | _ => even (n - 1)",
	"",
}

func TestFormatFib(t *testing.T) {
	prog, err := parser.ParseSource(fibSource)
	require.NoError(t, err)

	want := "fun fib n =\n" +
		"    case n in\n" +
		"          0 => 0\n" +
		"        | 1 => 1\n" +
		"        | _ => fib (n - 1) + fib (n - 2)\n"
	assert.Equal(t, want, prettyprinter.Format(prog))
}

func TestFormatMinimalParens(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"fun f x = ((x + 1))", "fun f x = x + 1\n"},
		{"fun f x = (1 + 2) + 3", "fun f x = 1 + 2 + 3\n"},
		{"fun f x = 1 + (2 + 3)", "fun f x = 1 + (2 + 3)\n"},
		{"fun f x = (2 * 3) + 1", "fun f x = 2 * 3 + 1\n"},
		{"fun f x = (g x) - 1", "fun f x = g x - 1\n"},
		{"fun f x = g (x)", "fun f x = g x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog, err := parser.ParseSource(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, prettyprinter.Format(prog))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, src := range roundTripSeeds {
		checkRoundTrip(t, src)
	}
}

func TestFormatKeepsComments(t *testing.T) {
	src := "(* header *)\n(* about f *)\nfun f x = x+1\n(* about g\n   spans lines *)\nfun g y = f y\n(* tail *)\n"
	want := "(* header *)\n(* about f *)\nfun f x = x + 1\n\n" +
		"(* about g\n   spans lines *)\nfun g y = f y\n\n(* tail *)\n"

	got := formatSource(t, src)
	assert.Equal(t, want, got)
	assert.Equal(t, want, formatSource(t, got), "formatting is not idempotent")

	assert.Equal(t, "(* only a comment *)\n", formatSource(t, "(* only a comment *)"))
}

func TestFormatRejectsInnerComment(t *testing.T) {
	src := "fun f x = x\nfun g y = (* why *) f y\n"
	prog, err := parser.ParseSource(src)
	require.NoError(t, err)
	comments, err := lexer.Comments(src)
	require.NoError(t, err)

	_, err = prettyprinter.FormatWithComments(prog, comments)
	var cerr *prettyprinter.CommentError
	require.ErrorAs(t, err, &cerr)
	assert.ErrorIs(t, err, prettyprinter.ErrInnerComment)
	assert.Equal(t, "g", cerr.Func)
	assert.Equal(t, "2:11", cerr.Pos.String())
	assert.Equal(t, diagnostics.ErrF001, diagnostics.FromError(err).Code)
}

func formatSource(t *testing.T, src string) string {
	t.Helper()
	prog, err := parser.ParseSource(src)
	require.NoError(t, err)
	comments, err := lexer.Comments(src)
	require.NoError(t, err)
	out, err := prettyprinter.FormatWithComments(prog, comments)
	require.NoError(t, err)
	return out
}

func TestDump(t *testing.T) {
	prog, err := parser.ParseSource("fun f x = g (x - 1)")
	require.NoError(t, err)
	want := "Program (1 functions)\n" +
		"  FunctionDef f x @1:1\n" +
		"    CallExpression g\n" +
		"      InfixExpression -\n" +
		"        Identifier x\n" +
		"        IntegerLiteral 1\n"
	assert.Equal(t, want, prettyprinter.Dump(prog))
}

func FuzzRoundTrip(f *testing.F) {
	for _, src := range roundTripSeeds {
		f.Add(src)
	}
	f.Fuzz(func(t *testing.T, src string) {
		if _, err := parser.ParseSource(src); err != nil {
			t.Skip()
		}
		checkRoundTrip(t, src)
	})
}

func checkRoundTrip(t *testing.T, src string) {
	t.Helper()
	prog, err := parser.ParseSource(src)
	require.NoError(t, err, "source: %q", src)

	printed := prettyprinter.Format(prog)
	reparsed, err := parser.ParseSource(printed)
	require.NoError(t, err, "printed: %q", printed)
	assert.True(t, ast.Equal(prog, reparsed), "round trip changed the tree:\n%s", printed)
	assert.Equal(t, printed, prettyprinter.Format(reparsed), "formatting is not idempotent")
}
