package parser

import (
	"github.com/funvibe/minml/internal/ast"
	"github.com/funvibe/minml/internal/token"
)

// ParseProgram parses a sequence of function definitions up to EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := ast.NewProgram()

	for p.err == nil && !p.curTokenIs(token.EOF) {
		if !p.curTokenIs(token.FUN) {
			p.unexpected(describe(token.FUN), p.curToken)
			break
		}
		fn := p.parseFunctionDef(program)
		if fn == nil {
			break
		}
		program.Functions[fn.Name.Value] = fn
		program.Order = append(program.Order, fn.Name.Value)
		p.nextToken()
	}

	if p.err != nil {
		return nil, p.err
	}
	return program, nil
}

// parseFunctionDef parses
//
//	fun <name> <param> = <expr>
//
// Redefining a name already in program is an error.
func (p *Parser) parseFunctionDef(program *ast.Program) *ast.FunctionDef {
	fn := &ast.FunctionDef{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fn.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if prev, ok := program.Lookup(fn.Name.Value); ok {
		p.fail(&Error{
			Kind:  ErrDuplicateFunction,
			Name:  fn.Name.Value,
			First: prev.Name.Token.Pos,
			Pos:   fn.Name.Token.Pos,
		})
		return nil
	}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fn.Parameter = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()

	fn.Body = p.parseExpression(LOWEST)
	if fn.Body == nil {
		return nil
	}
	return fn
}
