package diagnostics

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/minml/internal/token"
)

type codedErr struct{ pos token.Position }

func (e codedErr) Error() string             { return "boom" }
func (e codedErr) DiagnosticCode() ErrorCode { return ErrP001 }
func (e codedErr) Position() token.Position  { return e.pos }
func (e codedErr) Message() string           { return "boom" }

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	pos := token.Position{Line: 2, Column: 4}
	wrapped := fmt.Errorf("context: %w", codedErr{pos: pos})
	d := FromError(wrapped)
	assert.Equal(t, ErrP001, d.Code)
	assert.Equal(t, "boom", d.Message)
	assert.Equal(t, pos, d.Pos)
	assert.Equal(t, LevelError, d.Level)
	assert.True(t, errors.Is(d, wrapped))

	plain := errors.New("disk on fire")
	d = FromError(plain)
	assert.Equal(t, ErrX000, d.Code)
	assert.False(t, d.Pos.IsValid())
	assert.ErrorIs(t, d, plain)

	existing := NewWarning(WarnW004, pos, "x")
	assert.Same(t, existing, FromError(existing))
}

func TestDiagnosticErrorString(t *testing.T) {
	d := NewError(ErrR001, token.Position{Line: 1, Column: 3}, "unknown function %q", "g")
	assert.Equal(t, `1:3: [R001] unknown function "g"`, d.Error())
	d.File = "a.mml"
	assert.Equal(t, `a.mml:1:3: [R001] unknown function "g"`, d.Error())
	d.Pos = token.Position{}
	assert.Equal(t, `a.mml: [R001] unknown function "g"`, d.Error())
}

func TestSourceFile(t *testing.T) {
	src := "fun f x =\r\n  x + ü\rend"
	f := NewSourceFile("a.mml", src)
	assert.Equal(t, 3, f.LineCount())

	line, ok := f.Line(2)
	require.True(t, ok)
	assert.Equal(t, "  x + ü", line)
	_, ok = f.Line(4)
	assert.False(t, ok)

	pos := f.Lookup(len("fun f x =\r\n  x + ü"))
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 8, pos.Column)
}

func TestParseColorMode(t *testing.T) {
	for in, want := range map[string]ColorMode{"": ColorAuto, "AUTO": ColorAuto, "always": ColorAlways, " never ": ColorNever} {
		got, err := ParseColorMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, UseColor(ColorAlways, &buf))
	assert.False(t, UseColor(ColorNever, &buf))
	assert.False(t, UseColor(ColorAuto, &buf))
}

func TestTTYEmitter(t *testing.T) {
	src := "fun f x 3\n"
	var buf bytes.Buffer
	e := NewTTYEmitter(&buf, NewSourceFile("bad.mml", src), ColorNever)
	e.Emit(NewError(ErrP001, token.Position{Offset: 8, Line: 1, Column: 9}, `expected "=", found integer 3`))

	want := "error[P001]: expected \"=\", found integer 3\n" +
		"  --> bad.mml:1:9\n" +
		"   |\n" +
		" 1 | fun f x 3\n" +
		"   |         ^\n"
	assert.Equal(t, want, buf.String())
}

func TestTTYEmitterWithoutPosition(t *testing.T) {
	var buf bytes.Buffer
	e := NewTTYEmitter(&buf, nil, ColorNever)
	EmitAll(e, []*DiagnosticError{
		{Code: ErrX000, Level: LevelError, Message: "cannot read file"},
		NewWarning(WarnW003, token.Position{Line: 3, Column: 1}, "call to undefined function %q", "g"),
	})
	assert.Equal(t, "error[X000]: cannot read file\n"+
		"warning[W003]: call to undefined function \"g\"\n"+
		"  --> <input>:3:1\n", buf.String())
}

func TestTTYEmitterColor(t *testing.T) {
	var buf bytes.Buffer
	e := NewTTYEmitter(&buf, nil, ColorAlways)
	e.Emit(NewError(ErrR003, token.Position{}, "no clause matches value 5"))
	assert.Contains(t, buf.String(), "\x1b[")
}
