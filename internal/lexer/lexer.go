package lexer

import (
	"iter"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/minml/internal/token"
)

type Lexer struct {
	input        string
	position     int    // current position in input (points to current char)
	readPosition int    // current reading position in input (after current char)
	ch           rune   // current char under examination
	line         int    // current line number
	column       int    // current column number
	err          *Error // first error, repeated by later calls
	comments     []token.Comment
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize returns the tokens of input as a lazy sequence. Each range over
// the sequence scans input from the beginning. The sequence ends after the
// EOF token or after the first error.
func Tokenize(input string) iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		l := New(input)
		for {
			tok, err := l.NextToken()
			if !yield(tok, err) || err != nil || tok.Type == token.EOF {
				return
			}
		}
	}
}

// Comments scans input and returns its comments in source order, each
// paired with the token after it.
func Comments(input string) ([]token.Comment, error) {
	l := New(input)
	var out []token.Comment
	for {
		seen := len(l.comments)
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		for _, c := range l.comments[seen:] {
			c.Next = tok
			out = append(out, c)
		}
		if tok.Type == token.EOF {
			return out, nil
		}
	}
}

// All scans input eagerly. It is a convenience for tests and tooling.
func All(input string) ([]token.Token, error) {
	var toks []token.Token
	for tok, err := range Tokenize(input) {
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) pos() token.Position {
	return token.Position{Offset: l.position, Line: l.line, Column: l.column}
}

// NextToken returns the next token. After EOF it keeps returning EOF; after
// an error it keeps returning that error.
func (l *Lexer) NextToken() (token.Token, error) {
	if l.err != nil {
		return token.Token{Type: token.ILLEGAL, Pos: l.err.Pos}, l.err
	}
	if err := l.skipWhitespace(); err != nil {
		l.err = err
		return token.Token{Type: token.ILLEGAL, Pos: err.Pos}, err
	}

	start := l.pos()
	if l.atEOF() {
		return token.Token{Type: token.EOF, Lexeme: "", Literal: "", Pos: start}, nil
	}

	var tok token.Token
	switch l.ch {
	case '=':
		if l.peekChar() == '>' {
			l.readChar()
			tok = newToken(token.DARROW, "=>", start)
		} else {
			tok = newToken(token.ASSIGN, "=", start)
		}
	case '+':
		tok = newToken(token.PLUS, "+", start)
	case '-':
		tok = newToken(token.MINUS, "-", start)
	case '*':
		tok = newToken(token.ASTERISK, "*", start)
	case '|':
		tok = newToken(token.PIPE, "|", start)
	case '(':
		tok = newToken(token.LPAREN, "(", start)
	case ')':
		tok = newToken(token.RPAREN, ")", start)
	case '_':
		// A lone underscore is the wildcard; identifiers never start with one.
		if isIdentPart(l.peekChar()) {
			return token.Token{Type: token.ILLEGAL, Lexeme: "_", Pos: start}, l.unexpected(start)
		}
		tok = newToken(token.UNDERSCORE, "_", start)
	default:
		if isLetter(l.ch) {
			lexeme := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(lexeme), Lexeme: lexeme, Literal: lexeme, Pos: start}, nil
		} else if isDigit(l.ch) {
			return l.readNumber(start)
		}
		return token.Token{Type: token.ILLEGAL, Lexeme: string(l.ch), Pos: start}, l.unexpected(start)
	}

	l.readChar()
	return tok, nil
}

func (l *Lexer) unexpected(pos token.Position) *Error {
	l.err = &Error{Kind: ErrUnexpectedChar, Pos: pos, Char: l.ch}
	return l.err
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber(start token.Position) (token.Token, error) {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.input[position:l.position]
	val, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		l.err = &Error{Kind: ErrIntegerOverflow, Pos: start, Text: lexeme}
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Pos: start}, l.err
	}
	return token.Token{Type: token.INT, Lexeme: lexeme, Literal: val, Pos: start}, nil
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || (ch >= 0x80 && unicode.IsLetter(ch))
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentPart(ch rune) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_' || ch == '\''
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func newToken(tokenType token.TokenType, lexeme string, pos token.Position) token.Token {
	return token.Token{Type: tokenType, Lexeme: lexeme, Literal: lexeme, Pos: pos}
}

// skipWhitespace skips blanks and (* ... *) comments. Comments do not nest:
// the first "*)" closes the comment.
func (l *Lexer) skipWhitespace() *Error {
	for {
		for !l.atEOF() && (l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n') {
			l.readChar()
		}
		if l.ch == '(' && l.peekChar() == '*' && !l.atEOF() {
			start := l.pos()
			l.readChar() // consume (
			l.readChar() // consume *
			for {
				if l.atEOF() {
					return &Error{Kind: ErrUnterminatedComment, Pos: start}
				}
				if l.ch == '*' && l.peekChar() == ')' {
					l.readChar() // consume *
					l.readChar() // consume )
					l.comments = append(l.comments, token.Comment{Text: l.input[start.Offset:l.position], Pos: start})
					break
				}
				l.readChar()
			}
			continue
		}
		return nil
	}
}
