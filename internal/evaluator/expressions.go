package evaluator

import (
	"fmt"

	"github.com/funvibe/minml/internal/ast"
)

func (r *activation) eval(node ast.Expression, env *Environment) (int64, error) {
	switch node := node.(type) {
	case *ast.IntegerLiteral:
		return node.Value, nil
	case *ast.Identifier:
		return r.evalIdentifier(node, env)
	case *ast.InfixExpression:
		return r.evalInfixExpression(node, env)
	case *ast.CallExpression:
		return r.evalCallExpression(node, env)
	case *ast.CaseExpression:
		return r.evalCaseExpression(node, env)
	}
	return 0, fmt.Errorf("evaluator: unsupported node %T", node)
}

func (r *activation) evalIdentifier(node *ast.Identifier, env *Environment) (int64, error) {
	if v, ok := env.Get(node.Value); ok {
		return v, nil
	}
	return 0, r.fail(&Error{Kind: ErrUnboundVariable, Name: node.Value, Pos: node.Token.Pos})
}

// evalInfixExpression evaluates left before right. Arithmetic wraps
// around on overflow.
func (r *activation) evalInfixExpression(node *ast.InfixExpression, env *Environment) (int64, error) {
	left, err := r.eval(node.Left, env)
	if err != nil {
		return 0, err
	}
	right, err := r.eval(node.Right, env)
	if err != nil {
		return 0, err
	}
	switch node.Operator {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	}
	return 0, fmt.Errorf("evaluator: unknown operator %q at %s", node.Operator, node.Token.Pos)
}

// evalCallExpression evaluates the argument in the caller's environment,
// then resolves the callee by name.
func (r *activation) evalCallExpression(node *ast.CallExpression, env *Environment) (int64, error) {
	arg, err := r.eval(node.Argument, env)
	if err != nil {
		return 0, err
	}
	fn, ok := r.program.Lookup(node.Function)
	if !ok {
		return 0, r.fail(&Error{Kind: ErrUnknownFunction, Name: node.Function, Pos: node.Token.Pos})
	}
	return r.call(fn, arg, node.Token.Pos)
}

// evalCaseExpression tries clauses in order and evaluates only the body of
// the first match.
func (r *activation) evalCaseExpression(node *ast.CaseExpression, env *Environment) (int64, error) {
	value, err := r.eval(node.Scrutinee, env)
	if err != nil {
		return 0, err
	}
	for _, clause := range node.Clauses {
		if matchPattern(clause.Pattern, value) {
			return r.eval(clause.Body, env)
		}
	}
	return 0, r.fail(&Error{Kind: ErrNoMatchingClause, Value: value, Pos: node.Token.Pos})
}

func matchPattern(pat ast.Pattern, value int64) bool {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return true
	case *ast.LiteralPattern:
		return p.Value == value
	}
	return false
}
