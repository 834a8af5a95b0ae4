package ast

import (
	"github.com/funvibe/minml/internal/token"
)

// LiteralPattern: 0, 1, 42
type LiteralPattern struct {
	Token token.Token
	Value int64
}

func (p *LiteralPattern) Accept(v Visitor)      { v.VisitLiteralPattern(p) }
func (p *LiteralPattern) patternNode()          {}
func (p *LiteralPattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *LiteralPattern) GetToken() token.Token { return p.Token }

// WildcardPattern: _
type WildcardPattern struct {
	Token token.Token
}

func (p *WildcardPattern) Accept(v Visitor)      { v.VisitWildcardPattern(p) }
func (p *WildcardPattern) patternNode()          {}
func (p *WildcardPattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *WildcardPattern) GetToken() token.Token { return p.Token }
