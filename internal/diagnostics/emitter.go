package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Emitter reports diagnostics to a user.
type Emitter interface {
	Emit(d *DiagnosticError)
}

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// UseColor resolves a mode against the writer it will print to.
func UseColor(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// TTYEmitter prints diagnostics in a compiler-style layout:
//
//	error[P001]: expected "=", found integer 3
//	  --> fib.mml:1:9
//	   |
//	 1 | fun f x 3
//	   |         ^
type TTYEmitter struct {
	out    io.Writer
	source *SourceFile

	levelColors map[Level]*color.Color
	bold        *color.Color
	gutter      *color.Color
}

func NewTTYEmitter(out io.Writer, source *SourceFile, mode ColorMode) *TTYEmitter {
	e := &TTYEmitter{
		out:    out,
		source: source,
		levelColors: map[Level]*color.Color{
			LevelError:   color.New(color.FgRed, color.Bold),
			LevelWarning: color.New(color.FgYellow, color.Bold),
			LevelNote:    color.New(color.FgBlue, color.Bold),
		},
		bold:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
	}
	enabled := UseColor(mode, out)
	for _, c := range e.all() {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return e
}

func (e *TTYEmitter) all() []*color.Color {
	return []*color.Color{e.levelColors[LevelError], e.levelColors[LevelWarning], e.levelColors[LevelNote], e.bold, e.gutter}
}

func (e *TTYEmitter) Emit(d *DiagnosticError) {
	if d == nil {
		return
	}
	fmt.Fprintf(e.out, "%s%s\n",
		e.levelColors[d.Level].Sprintf("%s[%s]", d.Level, d.Code),
		e.bold.Sprintf(": %s", d.Message))

	if !d.Pos.IsValid() || d.Level == LevelNote {
		return
	}
	file := d.File
	if file == "" && e.source != nil {
		file = e.source.Name
	}
	if file == "" {
		file = "<input>"
	}
	fmt.Fprintf(e.out, "  %s %s:%d:%d\n", e.gutter.Sprint("-->"), file, d.Pos.Line, d.Pos.Column)

	if e.source == nil {
		return
	}
	line, ok := e.source.Line(d.Pos.Line)
	if !ok {
		return
	}
	num := fmt.Sprintf("%d", d.Pos.Line)
	pad := strings.Repeat(" ", len(num))
	caretPad := strings.Repeat(" ", max(d.Pos.Column-1, 0))
	fmt.Fprintf(e.out, " %s %s\n", pad, e.gutter.Sprint("|"))
	fmt.Fprintf(e.out, " %s %s %s\n", e.gutter.Sprint(num), e.gutter.Sprint("|"), expandTabs(line))
	fmt.Fprintf(e.out, " %s %s %s%s\n", pad, e.gutter.Sprint("|"), caretPad, e.levelColors[d.Level].Sprint("^"))
}

// EmitAll emits every diagnostic in order.
func EmitAll(e Emitter, ds []*DiagnosticError) {
	for _, d := range ds {
		e.Emit(d)
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}
