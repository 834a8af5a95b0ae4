package ast

import (
	"github.com/funvibe/minml/internal/token"
)

// IntegerLiteral: 42
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) Accept(v Visitor)      { v.VisitIntegerLiteral(il) }
func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

// Identifier is a variable reference, and also names functions and
// parameters in definitions.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) Accept(v Visitor)      { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// InfixExpression is a binary arithmetic operation.
// <Left> <Operator> <Right>
type InfixExpression struct {
	Token    token.Token // The operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) Accept(v Visitor)      { v.VisitInfixExpression(ie) }
func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

// CallExpression applies a named function to one argument.
// <Function> <Argument>
type CallExpression struct {
	Token    token.Token // The function name token
	Function string
	Argument Expression
}

func (ce *CallExpression) Accept(v Visitor)      { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// Clause is one arm of a case expression.
// <Pattern> => <Body>
type Clause struct {
	Pattern Pattern
	Body    Expression
}

// CaseExpression selects the first clause whose pattern matches.
// case <Scrutinee> in <Clause> | <Clause> ...
type CaseExpression struct {
	Token     token.Token // case
	Scrutinee Expression
	Clauses   []*Clause
}

func (ce *CaseExpression) Accept(v Visitor)      { v.VisitCaseExpression(ce) }
func (ce *CaseExpression) expressionNode()       {}
func (ce *CaseExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CaseExpression) GetToken() token.Token { return ce.Token }
