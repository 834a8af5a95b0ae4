package diagnostics

import (
	"sort"
	"strings"

	"github.com/funvibe/minml/internal/token"
)

// SourceFile caches the line starts of one source text so diagnostics can
// map byte offsets back to lines and quote the offending line.
type SourceFile struct {
	Name  string
	src   string
	lines []int // byte offset of the first character of each line
}

func NewSourceFile(name, src string) *SourceFile {
	f := &SourceFile{Name: name, src: src, lines: []int{0}}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			f.lines = append(f.lines, i+1)
		case '\r':
			// A lone CR is a line break; CRLF is counted once at the LF.
			if i+1 >= len(src) || src[i+1] != '\n' {
				f.lines = append(f.lines, i+1)
			}
		}
	}
	return f
}

func (f *SourceFile) LineCount() int { return len(f.lines) }

// Lookup returns the 1-based line and column of a byte offset.
// Columns count runes, not bytes.
func (f *SourceFile) Lookup(offset int) token.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.src) {
		offset = len(f.src)
	}
	idx := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	col := len([]rune(f.src[f.lines[idx]:offset])) + 1
	return token.Position{Offset: offset, Line: idx + 1, Column: col}
}

// Line returns the text of the 1-based line n without its line break.
func (f *SourceFile) Line(n int) (string, bool) {
	if n < 1 || n > len(f.lines) {
		return "", false
	}
	start := f.lines[n-1]
	end := len(f.src)
	if n < len(f.lines) {
		end = f.lines[n]
	}
	return strings.TrimRight(f.src[start:end], "\r\n"), true
}
