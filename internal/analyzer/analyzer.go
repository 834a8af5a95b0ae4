package analyzer

import (
	"github.com/funvibe/minml/internal/ast"
	"github.com/funvibe/minml/internal/diagnostics"
)

// Analyzer is a lint pass over a parsed Program. It reports suspicious
// code as warnings and never rejects a program.
type Analyzer struct {
	program  *ast.Program
	warnings []*diagnostics.DiagnosticError
}

func New(program *ast.Program) *Analyzer {
	return &Analyzer{program: program}
}

// Analyze returns the warnings for program in source order.
func Analyze(program *ast.Program) []*diagnostics.DiagnosticError {
	a := New(program)
	program.Accept(a)
	return a.warnings
}

func (a *Analyzer) warn(code diagnostics.ErrorCode, node ast.TokenProvider, format string, args ...interface{}) {
	w := diagnostics.NewWarning(code, node.GetToken().Pos, format, args...)
	w.File = a.program.File
	a.warnings = append(a.warnings, w)
}

func (a *Analyzer) VisitProgram(p *ast.Program) {
	for _, fn := range p.Defs() {
		fn.Accept(a)
	}
}

func (a *Analyzer) VisitFunctionDef(f *ast.FunctionDef) {
	f.Body.Accept(a)
}

func (a *Analyzer) VisitIntegerLiteral(n *ast.IntegerLiteral) {}

func (a *Analyzer) VisitIdentifier(n *ast.Identifier) {}

func (a *Analyzer) VisitInfixExpression(n *ast.InfixExpression) {
	n.Left.Accept(a)
	n.Right.Accept(a)
}

func (a *Analyzer) VisitCallExpression(n *ast.CallExpression) {
	if _, ok := a.program.Lookup(n.Function); !ok {
		a.warn(diagnostics.WarnW003, n, "call to undefined function %q", n.Function)
	}
	n.Argument.Accept(a)
}

func (a *Analyzer) VisitLiteralPattern(p *ast.LiteralPattern) {}

func (a *Analyzer) VisitWildcardPattern(p *ast.WildcardPattern) {}
