package evaluator

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/funvibe/minml/internal/ast"
)

// Memo caches successful call results. Every function in the language is
// pure, so a hit is indistinguishable from re-evaluating the body as long
// as the body's calls would fit under the caller's depth bound. Each entry
// records how many nested frames the evaluation needed for that check. A
// Memo is safe for concurrent use and may be shared by several Evaluators.
type Memo struct {
	cache *lru.Cache
}

type memoKey struct {
	prog *ast.Program
	fn   string
	arg  int64
}

type memoEntry struct {
	value int64
	depth int // frames used, counting the call itself
}

// NewMemo returns a cache holding at most size results.
func NewMemo(size int) (*Memo, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("memo cache: %w", err)
	}
	return &Memo{cache: c}, nil
}

func (m *Memo) get(prog *ast.Program, fn string, arg int64) (memoEntry, bool) {
	v, ok := m.cache.Get(memoKey{prog, fn, arg})
	if !ok {
		return memoEntry{}, false
	}
	return v.(memoEntry), true
}

func (m *Memo) add(prog *ast.Program, fn string, arg int64, val int64, depth int) {
	m.cache.Add(memoKey{prog, fn, arg}, memoEntry{value: val, depth: depth})
}

// Len reports the number of cached results.
func (m *Memo) Len() int { return m.cache.Len() }

// Purge drops every cached result.
func (m *Memo) Purge() { m.cache.Purge() }
