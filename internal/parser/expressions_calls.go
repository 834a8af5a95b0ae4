package parser

import (
	"github.com/funvibe/minml/internal/ast"
	"github.com/funvibe/minml/internal/token"
)

// startsAtom reports whether t can begin a function argument.
func startsAtom(t token.TokenType) bool {
	return t == token.INT || t == token.IDENT || t == token.LPAREN
}

// parseIdentifierOrCall parses a variable reference, or an application
// when the identifier is directly followed by an argument. Application
// binds tighter than every binary operator: f n - 1 is (f n) - 1.
func (p *Parser) parseIdentifierOrCall() ast.Expression {
	ident := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !startsAtom(p.peekToken.Type) {
		return ident
	}

	call := &ast.CallExpression{Token: p.curToken, Function: ident.Value}
	p.nextToken()
	call.Argument = p.parseAtom()
	if call.Argument == nil {
		return nil
	}
	return call
}

// parseAtom parses a call argument: a literal, a variable or a
// parenthesized expression. Application is not curried, so an identifier
// here is never itself applied.
func (p *Parser) parseAtom() ast.Expression {
	switch p.curToken.Type {
	case token.INT:
		return p.parseIntegerLiteral()
	case token.IDENT:
		return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	case token.LPAREN:
		return p.parseGroupedExpression()
	}
	p.unexpected("argument", p.curToken)
	return nil
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, ok := p.curToken.Literal.(int64)
	if !ok {
		p.unexpected("integer", p.curToken)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}
