package prettyprinter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/funvibe/minml/internal/ast"
)

// --- Tree Printer (Output shows AST structure) ---

type TreePrinter struct {
	buf   bytes.Buffer
	depth int
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

// Dump returns the indented AST of program.
func Dump(program *ast.Program) string {
	p := NewTreePrinter()
	program.Accept(p)
	return p.String()
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

func (p *TreePrinter) line(format string, args ...interface{}) {
	p.buf.WriteString(strings.Repeat("  ", p.depth))
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *TreePrinter) nested(fn func()) {
	p.depth++
	fn()
	p.depth--
}

func (p *TreePrinter) VisitProgram(n *ast.Program) {
	p.line("Program (%d functions)", len(n.Order))
	p.nested(func() {
		for _, fn := range n.Defs() {
			fn.Accept(p)
		}
	})
}

func (p *TreePrinter) VisitFunctionDef(n *ast.FunctionDef) {
	p.line("FunctionDef %s %s @%s", n.Name.Value, n.Parameter.Value, n.Token.Pos)
	p.nested(func() { n.Body.Accept(p) })
}

func (p *TreePrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) {
	p.line("IntegerLiteral %d", n.Value)
}

func (p *TreePrinter) VisitIdentifier(n *ast.Identifier) {
	p.line("Identifier %s", n.Value)
}

func (p *TreePrinter) VisitInfixExpression(n *ast.InfixExpression) {
	p.line("InfixExpression %s", n.Operator)
	p.nested(func() {
		n.Left.Accept(p)
		n.Right.Accept(p)
	})
}

func (p *TreePrinter) VisitCallExpression(n *ast.CallExpression) {
	p.line("CallExpression %s", n.Function)
	p.nested(func() { n.Argument.Accept(p) })
}

func (p *TreePrinter) VisitCaseExpression(n *ast.CaseExpression) {
	p.line("CaseExpression (%d clauses)", len(n.Clauses))
	p.nested(func() {
		n.Scrutinee.Accept(p)
		for _, clause := range n.Clauses {
			p.line("Clause")
			p.nested(func() {
				clause.Pattern.Accept(p)
				clause.Body.Accept(p)
			})
		}
	})
}

func (p *TreePrinter) VisitLiteralPattern(n *ast.LiteralPattern) {
	p.line("LiteralPattern %d", n.Value)
}

func (p *TreePrinter) VisitWildcardPattern(n *ast.WildcardPattern) {
	p.line("WildcardPattern")
}
