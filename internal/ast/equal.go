package ast

// Equal reports whether two programs define the same functions with
// structurally identical bodies. Tokens and positions are ignored.
func Equal(a, b *Program) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Order) != len(b.Order) {
		return false
	}
	for i, name := range a.Order {
		if b.Order[i] != name {
			return false
		}
		fa, fb := a.Functions[name], b.Functions[name]
		if fa.Name.Value != fb.Name.Value || fa.Parameter.Value != fb.Parameter.Value {
			return false
		}
		if !EqualExpr(fa.Body, fb.Body) {
			return false
		}
	}
	return true
}

func EqualExpr(a, b Expression) bool {
	switch x := a.(type) {
	case *IntegerLiteral:
		y, ok := b.(*IntegerLiteral)
		return ok && x.Value == y.Value
	case *Identifier:
		y, ok := b.(*Identifier)
		return ok && x.Value == y.Value
	case *InfixExpression:
		y, ok := b.(*InfixExpression)
		return ok && x.Operator == y.Operator && EqualExpr(x.Left, y.Left) && EqualExpr(x.Right, y.Right)
	case *CallExpression:
		y, ok := b.(*CallExpression)
		return ok && x.Function == y.Function && EqualExpr(x.Argument, y.Argument)
	case *CaseExpression:
		y, ok := b.(*CaseExpression)
		if !ok || len(x.Clauses) != len(y.Clauses) || !EqualExpr(x.Scrutinee, y.Scrutinee) {
			return false
		}
		for i := range x.Clauses {
			if !equalPattern(x.Clauses[i].Pattern, y.Clauses[i].Pattern) ||
				!EqualExpr(x.Clauses[i].Body, y.Clauses[i].Body) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	}
	return false
}

func equalPattern(a, b Pattern) bool {
	switch x := a.(type) {
	case *LiteralPattern:
		y, ok := b.(*LiteralPattern)
		return ok && x.Value == y.Value
	case *WildcardPattern:
		_, ok := b.(*WildcardPattern)
		return ok
	}
	return false
}
