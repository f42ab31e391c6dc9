package collect

import "github.com/taylorlang/taylorc/internal/ast"

// Monoid pairs a zero value with an associative combine, the shape every
// Fold accumulator in this file reduces through.
type Monoid[M any] struct {
	Zero    M
	Combine func(a, b M) M
}

// Fold walks e and every expression reachable from it, applying f to each
// node and combining the results through m. It does not descend into
// Pattern nodes (MatchCase.Pattern, ConstructorPattern bindings), so the
// condition expression of a GuardPattern is not visited.
func Fold[M any](e ast.Expression, m Monoid[M], f func(ast.Expression) M) M {
	if e == nil {
		return m.Zero
	}
	acc := f(e)
	for _, child := range children(e) {
		acc = m.Combine(acc, Fold(child, m, f))
	}
	return acc
}

// children returns e's immediate Expression operands, the traversal edges
// Fold recurses across.
func children(e ast.Expression) []ast.Expression {
	switch n := e.(type) {
	case *ast.Literal:
		out := append([]ast.Expression{}, n.Elements...)
		for _, entry := range n.Entries {
			out = append(out, entry.Key, entry.Value)
		}
		return out
	case *ast.Identifier:
		return nil
	case *ast.BinaryOp:
		return []ast.Expression{n.Left, n.Right}
	case *ast.UnaryOp:
		return []ast.Expression{n.Operand}
	case *ast.FunctionCall:
		out := append([]ast.Expression{n.Callee}, n.Args...)
		return out
	case *ast.PropertyAccess:
		return []ast.Expression{n.Target}
	case *ast.IndexAccess:
		return []ast.Expression{n.Target, n.Index}
	case *ast.ConstructorCall:
		return n.Args
	case *ast.LambdaExpression:
		return []ast.Expression{n.Body}
	case *ast.IfExpression:
		return []ast.Expression{n.Cond, n.Then, n.Else}
	case *ast.MatchExpression:
		out := []ast.Expression{n.Target}
		for _, c := range n.Cases {
			out = append(out, c.Body)
		}
		return out
	case *ast.TryExpression:
		out := []ast.Expression{n.Expr}
		for _, c := range n.Catches {
			out = append(out, c.Body)
		}
		return out
	default:
		return nil
	}
}

// CollectIdentifiers returns the set of every identifier name referenced
// anywhere in e, a Fold over the union-of-sets monoid.
func CollectIdentifiers(e ast.Expression) map[string]bool {
	m := Monoid[map[string]bool]{
		Zero: map[string]bool{},
		Combine: func(a, b map[string]bool) map[string]bool {
			for k := range b {
				a[k] = true
			}
			return a
		},
	}
	return Fold(e, m, func(n ast.Expression) map[string]bool {
		if id, ok := n.(*ast.Identifier); ok {
			return map[string]bool{id.Name: true}
		}
		return map[string]bool{}
	})
}

// ComplexityScore counts branching nodes (if, match, try, lambda) reachable
// from e, a cheap proxy for how much decision-tree and catch-range
// machinery lowering e will need to emit.
func ComplexityScore(e ast.Expression) int {
	m := Monoid[int]{Zero: 0, Combine: func(a, b int) int { return a + b }}
	return Fold(e, m, func(n ast.Expression) int {
		switch n.(type) {
		case *ast.IfExpression, *ast.MatchExpression, *ast.TryExpression, *ast.LambdaExpression:
			return 1
		default:
			return 0
		}
	})
}

// UnusedBindings returns the names bound by params that never appear as an
// identifier reference anywhere in body, in declaration order.
func UnusedBindings(params []*ast.Param, body ast.Expression) []string {
	used := CollectIdentifiers(body)
	var out []string
	for _, p := range params {
		if !used[p.Name] {
			out = append(out, p.Name)
		}
	}
	return out
}
