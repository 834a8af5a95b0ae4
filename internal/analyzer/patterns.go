package analyzer

import (
	"github.com/funvibe/minml/internal/ast"
	"github.com/funvibe/minml/internal/diagnostics"
)

// VisitCaseExpression checks clause reachability. A clause after a
// wildcard, or repeating an earlier literal, can never be selected.
func (a *Analyzer) VisitCaseExpression(n *ast.CaseExpression) {
	n.Scrutinee.Accept(a)

	var wildcard *ast.WildcardPattern
	seen := make(map[int64]bool)
	for _, clause := range n.Clauses {
		switch {
		case wildcard != nil:
			a.warn(diagnostics.WarnW001, clause.Pattern,
				"unreachable clause: the wildcard at %s matches every value", wildcard.Token.Pos)
		default:
			switch p := clause.Pattern.(type) {
			case *ast.WildcardPattern:
				wildcard = p
			case *ast.LiteralPattern:
				if seen[p.Value] {
					a.warn(diagnostics.WarnW002, p, "pattern %d already matched by an earlier clause", p.Value)
				}
				seen[p.Value] = true
			}
		}
		clause.Body.Accept(a)
	}

	if wildcard == nil {
		a.warn(diagnostics.WarnW004, n, "case has no wildcard clause and fails for unlisted values")
	}
}
