package token

import "fmt"

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT TokenType = "IDENT"
	INT   TokenType = "INT"

	// Keywords
	FUN  TokenType = "FUN"
	CASE TokenType = "CASE"
	IN   TokenType = "IN"

	// Operators
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	ASSIGN   TokenType = "="
	DARROW   TokenType = "=>"
	PIPE     TokenType = "|"

	// Punctuation
	LPAREN     TokenType = "("
	RPAREN     TokenType = ")"
	UNDERSCORE TokenType = "_"
)

// Category groups token types into the coarse classes clients care about.
type Category int

const (
	CategoryInvalid Category = iota
	CategoryIdentifier
	CategoryIntLiteral
	CategoryKeyword
	CategoryOperator
	CategoryPunctuation
	CategoryEndOfInput
)

func (c Category) String() string {
	switch c {
	case CategoryIdentifier:
		return "identifier"
	case CategoryIntLiteral:
		return "integer literal"
	case CategoryKeyword:
		return "keyword"
	case CategoryOperator:
		return "operator"
	case CategoryPunctuation:
		return "punctuation"
	case CategoryEndOfInput:
		return "end of input"
	}
	return "invalid"
}

func (t TokenType) Category() Category {
	switch t {
	case IDENT:
		return CategoryIdentifier
	case INT:
		return CategoryIntLiteral
	case FUN, CASE, IN:
		return CategoryKeyword
	case PLUS, MINUS, ASTERISK, ASSIGN, DARROW, PIPE:
		return CategoryOperator
	case LPAREN, RPAREN, UNDERSCORE:
		return CategoryPunctuation
	case EOF:
		return CategoryEndOfInput
	}
	return CategoryInvalid
}

var keywords = map[string]TokenType{
	"fun":  FUN,
	"case": CASE,
	"in":   IN,
}

// LookupIdent classifies an identifier lexeme as a keyword or a plain IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether name is reserved.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}

// Position is a location in source text. Offset is a 0-based byte index,
// Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position was set by the lexer.
func (p Position) IsValid() bool { return p.Line > 0 }

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // int64 for INT, string otherwise
	Pos     Position
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case IDENT:
		return fmt.Sprintf("identifier %q", t.Lexeme)
	case INT:
		return fmt.Sprintf("integer %s", t.Lexeme)
	}
	return fmt.Sprintf("%q", t.Lexeme)
}

// Comment is a (* ... *) comment. Next is the token that follows it, which
// tells whether the comment sits between definitions.
type Comment struct {
	Text string
	Pos  Position
	Next Token
}
