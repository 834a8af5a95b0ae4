package lexer

import (
	"iter"

	"github.com/funvibe/minml/internal/token"
)

// TokenStream pulls tokens from a lazy Tokenize sequence on demand and
// buffers lookahead. Once the lexer fails, Next and Peek return EOF tokens
// and Err reports the failure.
type TokenStream struct {
	next   func() (token.Token, error, bool)
	stop   func()
	buffer []token.Token
	err    error
	last   token.Token
}

func NewTokenStream(input string) *TokenStream {
	return FromSeq(Tokenize(input))
}

func FromSeq(seq iter.Seq2[token.Token, error]) *TokenStream {
	next, stop := iter.Pull2(seq)
	return &TokenStream{next: next, stop: stop}
}

func (s *TokenStream) fill(n int) {
	for len(s.buffer) < n {
		if s.next == nil {
			s.buffer = append(s.buffer, s.eof())
			continue
		}
		tok, err, ok := s.next()
		if !ok {
			s.Close()
			s.buffer = append(s.buffer, s.eof())
			continue
		}
		if err != nil {
			s.err = err
			s.Close()
			s.buffer = append(s.buffer, s.eof())
			continue
		}
		s.last = tok
		s.buffer = append(s.buffer, tok)
		if tok.Type == token.EOF {
			s.Close()
		}
	}
}

func (s *TokenStream) eof() token.Token {
	return token.Token{Type: token.EOF, Pos: s.last.Pos}
}

// Next consumes and returns the next token.
func (s *TokenStream) Next() token.Token {
	s.fill(1)
	tok := s.buffer[0]
	s.buffer = s.buffer[1:]
	return tok
}

// Peek returns up to n upcoming tokens without consuming them.
func (s *TokenStream) Peek(n int) []token.Token {
	s.fill(n)
	return s.buffer[:n]
}

// Err returns the lexical error that ended the stream, if any.
func (s *TokenStream) Err() error { return s.err }

// Close releases the underlying lexer. It is safe to call more than once.
func (s *TokenStream) Close() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
		s.next = nil
	}
}
