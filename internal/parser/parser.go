package parser

import (
	"github.com/funvibe/minml/internal/ast"
	"github.com/funvibe/minml/internal/lexer"
	"github.com/funvibe/minml/internal/token"
)

const (
	_ int = iota
	LOWEST
	SUM     // + -
	PRODUCT // *
)

var precedences = map[token.TokenType]int{
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// TokenSource is what the parser consumes; *lexer.TokenStream implements it.
type TokenSource interface {
	Next() token.Token
	Peek(n int) []token.Token
	Err() error
	Close()
}

// Parser is a Pratt parser. It stops at the first error: every parse method
// returns nil once err is set.
type Parser struct {
	stream TokenSource

	curToken  token.Token
	peekToken token.Token

	err error

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(stream TokenSource) *Parser {
	p := &Parser{stream: stream}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.INT:    p.parseIntegerLiteral,
		token.IDENT:  p.parseIdentifierOrCall,
		token.LPAREN: p.parseGroupedExpression,
		token.CASE:   p.parseCaseExpression,
	}
	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression,
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

// Parse reads a whole source unit from stream and closes it.
func Parse(stream TokenSource) (*ast.Program, error) {
	defer stream.Close()
	return New(stream).ParseProgram()
}

// ParseSource lexes and parses src.
func ParseSource(src string) (*ast.Program, error) {
	return Parse(lexer.NewTokenStream(src))
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.stream.Next()
	if p.err == nil && p.stream.Err() != nil {
		p.err = p.stream.Err()
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances if the next token has type t and records an
// unexpected-token error otherwise.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.err != nil {
		return false
	}
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.unexpected(describe(t), p.peekToken)
	return false
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) fail(err *Error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Parser) unexpected(expected string, found token.Token) {
	p.fail(&Error{Kind: ErrUnexpectedToken, Expected: expected, Found: found, Pos: found.Pos})
}

func describe(t token.TokenType) string {
	switch t {
	case token.IDENT:
		return "identifier"
	case token.INT:
		return "integer"
	case token.EOF:
		return "end of input"
	case token.FUN:
		return `"fun"`
	case token.CASE:
		return `"case"`
	case token.IN:
		return `"in"`
	}
	return `"` + string(t) + `"`
}
