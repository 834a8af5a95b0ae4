package minml_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	minml "github.com/funvibe/minml/pkg/embed"
)

const fibSource = `fun fib n = case n in 0 => 0 | 1 => 1 | _ => fib (n - 1) + fib (n - 2)`

func TestRun(t *testing.T) {
	got, err := minml.Run(fibSource, "fib", []int64{10})
	require.NoError(t, err)
	assert.Equal(t, int64(55), got)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		entry  string
		args   []int64
		kind   error
	}{
		{"lex", "fun f x = x # 1", "f", []int64{1}, minml.ErrUnexpectedChar},
		{"comment", "fun f x = 1 (*", "f", []int64{1}, minml.ErrUnterminatedComment},
		{"overflow literal", "fun f x = 99999999999999999999", "f", []int64{1}, minml.ErrIntegerOverflow},
		{"syntax", "fun f = 1", "f", []int64{1}, minml.ErrUnexpectedToken},
		{"duplicate", "fun f x = 1 fun f x = 2", "f", []int64{1}, minml.ErrDuplicateFunction},
		{"empty case", "fun f x = case x in", "f", []int64{1}, minml.ErrEmptyCaseBody},
		{"unknown", fibSource, "nonexistent", []int64{1}, minml.ErrUnknownFunction},
		{"arity zero", fibSource, "fib", nil, minml.ErrArityMismatch},
		{"arity two", fibSource, "fib", []int64{1, 2}, minml.ErrArityMismatch},
		{"no clause", "fun f x = case x in 0 => 1", "f", []int64{5}, minml.ErrNoMatchingClause},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := minml.Run(tt.source, tt.entry, tt.args)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestScriptReuse(t *testing.T) {
	s, err := minml.Compile(fibSource + "\nfun double x = x + x")
	require.NoError(t, err)
	assert.Equal(t, []string{"fib", "double"}, s.Functions())
	assert.True(t, s.HasFunction("double"))
	assert.False(t, s.HasFunction("triple"))
	assert.Empty(t, s.Warnings())

	for n, want := range map[int64]int64{0: 0, 1: 1, 7: 13, 10: 55} {
		got, err := s.Call(context.Background(), "fib", n)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	got, err := s.Call(context.Background(), "double", 21)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)
}

func TestMemoizedScript(t *testing.T) {
	s, err := minml.CompileWithOptions(fibSource, minml.Options{Memoize: true, MemoSize: 64})
	require.NoError(t, err)

	out, err := s.Exec(context.Background(), "fib", 30)
	require.NoError(t, err)
	assert.Equal(t, int64(832040), out.Value)
	assert.Equal(t, 31, out.Calls)
	assert.Equal(t, 31, s.CacheSize())
}

func TestMaxDepthOption(t *testing.T) {
	s, err := minml.CompileWithOptions("fun down n = case n in 0 => 0 | _ => down (n - 1)", minml.Options{MaxDepth: 10})
	require.NoError(t, err)

	_, err = s.Call(context.Background(), "down", 9)
	assert.NoError(t, err)
	_, err = s.Call(context.Background(), "down", 10)
	assert.ErrorIs(t, err, minml.ErrStackOverflow)
}

func TestWarnings(t *testing.T) {
	s, err := minml.Compile("fun f x = case x in _ => 1 | 0 => 2")
	require.NoError(t, err)
	require.Len(t, s.Warnings(), 1)
	assert.Contains(t, s.Warnings()[0].Error(), "W001")
}

func TestInvokeAndCallInto(t *testing.T) {
	s, err := minml.Compile(fibSource)
	require.NoError(t, err)

	got, err := s.Invoke(context.Background(), "fib", uint8(12))
	require.NoError(t, err)
	assert.Equal(t, int64(144), got)

	got, err = s.Invoke(context.Background(), "fib", "11")
	require.NoError(t, err)
	assert.Equal(t, int64(89), got)

	_, err = s.Invoke(context.Background(), "fib", 1.5)
	assert.Error(t, err)

	var small int8
	require.NoError(t, s.CallInto(context.Background(), &small, "fib", 10))
	assert.Equal(t, int8(55), small)

	var text string
	require.NoError(t, s.CallInto(context.Background(), &text, "fib", 10))
	assert.Equal(t, "55", text)

	assert.Error(t, s.CallInto(context.Background(), &small, "fib", 20), "6765 does not fit in int8")
	assert.Error(t, s.CallInto(context.Background(), small, "fib", 1))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fib.mml")
	require.NoError(t, os.WriteFile(path, []byte(fibSource), 0o644))

	s, err := minml.LoadFile(path, minml.Options{})
	require.NoError(t, err)
	got, err := s.Call(context.Background(), "fib", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(55), got)

	_, err = minml.LoadFile(filepath.Join(t.TempDir(), "missing.mml"), minml.Options{})
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func ExampleRun() {
	n, err := minml.Run(fibSource, "fib", []int64{10})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(n)
	// Output: 55
}
