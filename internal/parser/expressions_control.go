package parser

import (
	"github.com/funvibe/minml/internal/ast"
	"github.com/funvibe/minml/internal/token"
)

// parseCaseExpression parses
//
//	case <expr> in <pattern> => <expr> | <pattern> => <expr> ...
//
// The last clause body extends as far right as possible, so a nested case
// claims every following clause.
func (p *Parser) parseCaseExpression() ast.Expression {
	ce := &ast.CaseExpression{Token: p.curToken}

	p.nextToken() // consume 'case'
	ce.Scrutinee = p.parseExpression(LOWEST)
	if ce.Scrutinee == nil {
		return nil
	}

	if !p.expectPeek(token.IN) {
		return nil
	}

	if !startsPattern(p.peekToken.Type) {
		switch p.peekToken.Type {
		case token.EOF, token.FUN, token.RPAREN:
			p.fail(&Error{Kind: ErrEmptyCaseBody, Pos: ce.Token.Pos})
		default:
			p.unexpected("pattern", p.peekToken)
		}
		return nil
	}

	for {
		p.nextToken()
		clause := p.parseClause()
		if clause == nil {
			return nil
		}
		ce.Clauses = append(ce.Clauses, clause)

		if !p.peekTokenIs(token.PIPE) {
			break
		}
		p.nextToken() // consume '|'
		if !startsPattern(p.peekToken.Type) {
			p.unexpected("pattern", p.peekToken)
			return nil
		}
	}

	return ce
}

func startsPattern(t token.TokenType) bool {
	return t == token.INT || t == token.UNDERSCORE
}

// parseClause parses <pattern> => <expr> with curToken on the pattern.
func (p *Parser) parseClause() *ast.Clause {
	clause := &ast.Clause{}

	switch p.curToken.Type {
	case token.UNDERSCORE:
		clause.Pattern = &ast.WildcardPattern{Token: p.curToken}
	case token.INT:
		value, _ := p.curToken.Literal.(int64)
		clause.Pattern = &ast.LiteralPattern{Token: p.curToken, Value: value}
	default:
		p.unexpected("pattern", p.curToken)
		return nil
	}

	if !p.expectPeek(token.DARROW) {
		return nil
	}
	p.nextToken()

	clause.Body = p.parseExpression(LOWEST)
	if clause.Body == nil {
		return nil
	}
	return clause
}
