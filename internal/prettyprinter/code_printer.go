package prettyprinter

import (
	"bytes"
	"strconv"

	"github.com/funvibe/minml/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter). Application binds tighter
// than any operator and is handled separately.
var operatorPrecedence = map[string]int{
	"+": 1,
	"-": 1,
	"*": 2,
}

const lowestPrec = 0

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 3 // Default high precedence for unknown ops
}

// CodePrinter prints a Program as canonical source. Parsing the output
// yields a structurally identical Program.
//
// A case expression extends as far right as possible, so one that is not
// in tail position is wrapped in parentheses.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int

	leading  map[int][]string // comments keyed by the offset of the next fun
	trailing []string
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Format returns the canonical source of program.
func Format(program *ast.Program) string {
	p := NewCodePrinter()
	program.Accept(p)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

// printExpr prints an expression, adding parentheses only if needed.
// tail reports that nothing follows the expression before the enclosing
// construct ends.
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool, tail bool) {
	switch e := expr.(type) {
	case nil:
		p.write("<???>")
	case *ast.InfixExpression:
		prec := getPrecedence(e.Operator)
		// All operators are left-associative
		needParens := prec < parentPrec || (prec == parentPrec && isRight)
		if needParens {
			p.write("(")
		}
		p.printExpr(e.Left, prec, false, false)
		p.write(" " + e.Operator + " ")
		p.printExpr(e.Right, prec, true, false)
		if needParens {
			p.write(")")
		}
	case *ast.CaseExpression:
		p.printCase(e, tail)
	default:
		expr.Accept(p)
	}
}

func (p *CodePrinter) printCase(n *ast.CaseExpression, tail bool) {
	if !tail {
		p.write("(")
	}
	p.write("case ")
	p.printExpr(n.Scrutinee, lowestPrec, false, false)
	p.write(" in")

	p.indent++
	for i, clause := range n.Clauses {
		p.writeln()
		p.writeIndent()
		if i == 0 {
			p.write("  ")
		} else {
			p.write("| ")
		}
		if clause.Pattern != nil {
			clause.Pattern.Accept(p)
		} else {
			p.write("<???>")
		}
		p.write(" => ")
		p.printExpr(clause.Body, lowestPrec, false, i == len(n.Clauses)-1)
	}
	p.indent--

	if !tail {
		p.write(")")
	}
}

func (p *CodePrinter) VisitProgram(n *ast.Program) {
	defs := n.Defs()
	for i, fn := range defs {
		if i > 0 {
			p.writeln()
		}
		for _, c := range p.leading[fn.Token.Pos.Offset] {
			p.write(c)
			p.writeln()
		}
		fn.Accept(p)
		p.writeln()
	}
	if len(p.trailing) > 0 && len(defs) > 0 {
		p.writeln()
	}
	for _, c := range p.trailing {
		p.write(c)
		p.writeln()
	}
}

func (p *CodePrinter) VisitFunctionDef(n *ast.FunctionDef) {
	p.write("fun ")
	p.write(n.Name.Value)
	p.write(" ")
	p.write(n.Parameter.Value)
	p.write(" =")

	if _, ok := n.Body.(*ast.CaseExpression); ok {
		p.indent++
		p.writeln()
		p.writeIndent()
		p.printExpr(n.Body, lowestPrec, false, true)
		p.indent--
		return
	}
	p.write(" ")
	p.printExpr(n.Body, lowestPrec, false, true)
}

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) {
	if n == nil {
		p.write("nil")
		return
	}
	p.write(n.Value)
}

func (p *CodePrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) {
	if n == nil {
		p.write("nil")
		return
	}
	p.write(strconv.FormatInt(n.Value, 10))
}

func (p *CodePrinter) VisitInfixExpression(n *ast.InfixExpression) {
	p.printExpr(n, lowestPrec, false, true)
}

// VisitCallExpression prints f x. Only literals and variables may follow
// the function name without parentheses.
func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	p.write(n.Function)
	p.write(" ")
	switch arg := n.Argument.(type) {
	case *ast.IntegerLiteral, *ast.Identifier:
		arg.Accept(p)
	default:
		p.write("(")
		p.printExpr(arg, lowestPrec, false, true)
		p.write(")")
	}
}

func (p *CodePrinter) VisitCaseExpression(n *ast.CaseExpression) {
	p.printCase(n, true)
}

func (p *CodePrinter) VisitLiteralPattern(n *ast.LiteralPattern) {
	p.write(strconv.FormatInt(n.Value, 10))
}

func (p *CodePrinter) VisitWildcardPattern(n *ast.WildcardPattern) {
	p.write("_")
}
