package ast

import (
	"github.com/funvibe/minml/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
}

// Expression is a Node that produces an integer when evaluated.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Pattern is a Node that appears on the left of a case clause.
type Pattern interface {
	Node
	patternNode()
	GetToken() token.Token
}

// Visitor walks the AST. Nodes dispatch to the matching method in Accept.
type Visitor interface {
	VisitProgram(p *Program)
	VisitFunctionDef(f *FunctionDef)
	VisitIntegerLiteral(n *IntegerLiteral)
	VisitIdentifier(n *Identifier)
	VisitInfixExpression(n *InfixExpression)
	VisitCallExpression(n *CallExpression)
	VisitCaseExpression(n *CaseExpression)
	VisitLiteralPattern(p *LiteralPattern)
	VisitWildcardPattern(p *WildcardPattern)
}

// Program is the root node of every AST our parser produces: the set of
// function definitions of one source unit. It is never mutated after parsing.
type Program struct {
	File      string
	Functions map[string]*FunctionDef
	Order     []string // definition names in source order
}

func NewProgram() *Program {
	return &Program{Functions: make(map[string]*FunctionDef)}
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Order) > 0 {
		return p.Functions[p.Order[0]].TokenLiteral()
	}
	return ""
}

// Lookup returns the definition of name.
func (p *Program) Lookup(name string) (*FunctionDef, bool) {
	if p == nil {
		return nil, false
	}
	fn, ok := p.Functions[name]
	return fn, ok
}

// Defs returns the definitions in source order.
func (p *Program) Defs() []*FunctionDef {
	defs := make([]*FunctionDef, 0, len(p.Order))
	for _, name := range p.Order {
		defs = append(defs, p.Functions[name])
	}
	return defs
}

// FunctionDef represents a function definition.
// fun <Name> <Parameter> = <Body>
type FunctionDef struct {
	Token     token.Token // The 'fun' token
	Name      *Identifier
	Parameter *Identifier
	Body      Expression
}

func (f *FunctionDef) Accept(v Visitor)     { v.VisitFunctionDef(f) }
func (f *FunctionDef) TokenLiteral() string { return f.Token.Lexeme }
func (f *FunctionDef) GetToken() token.Token {
	if f == nil {
		return token.Token{}
	}
	return f.Token
}

// Arity is the number of declared parameters. Every function in this
// language takes exactly one.
func (f *FunctionDef) Arity() int { return 1 }
