// Package match is MatchLower (spec.md §2 "Pattern-Match Bytecode
// Lowering"): it consumes the fully-solved typedast tree and produces a
// JVM instruction stream per internal/classfile, coordinating dedicated
// sub-lowerers for arithmetic, comparison, constructor and variable-access
// subexpressions that appear inside match arm bodies.
//
// Exhaustiveness checking lives here rather than in internal/collect:
// spec.md §7's error taxonomy attributes NonExhaustiveMatch to a
// "Lowerer pre-pass", run once the scrutinee's type is fully known (the
// Collector only has a tentative, possibly-still-Var type to work with).
package match

import (
	"github.com/taylorlang/taylorc/internal/typedast"
	"github.com/taylorlang/taylorc/internal/types"
)

// CheckExhaustiveness walks every match expression in prog, setting each
// TypedMatch.Exhaustive flag and returning a NonExhaustiveMatchError for
// every match that leaves one or more declared variants uncovered
// (spec.md §8 S6). LowerMatch does not read Exhaustive; it emits the
// MatchError fallthrough for every match.
func CheckExhaustiveness(prog *typedast.TypedProgram) types.ErrorList {
	var errs types.ErrorList
	for _, stmt := range prog.Statements {
		walkStatement(stmt, prog.Variants, &errs)
	}
	return errs
}

func walkStatement(stmt typedast.TypedStatement, variants map[string][]typedast.VariantShape, errs *types.ErrorList) {
	switch s := stmt.(type) {
	case *typedast.TypedFunctionDecl:
		walkNode(s.Body, variants, errs)
	case *typedast.TypedValDecl:
		walkNode(s.Value, variants, errs)
	case *typedast.TypedExprStatement:
		walkNode(s.Expr, variants, errs)
	}
}

func walkNode(n typedast.TypedNode, variants map[string][]typedast.VariantShape, errs *types.ErrorList) {
	if n == nil {
		return
	}
	switch t := n.(type) {
	case *typedast.TypedMatch:
		checkMatch(t, variants, errs)
		walkNode(t.Scrutinee, variants, errs)
		for _, c := range t.Cases {
			walkNode(c.Body, variants, errs)
		}
	case *typedast.TypedBinaryOp:
		walkNode(t.Left, variants, errs)
		walkNode(t.Right, variants, errs)
	case *typedast.TypedUnaryOp:
		walkNode(t.Operand, variants, errs)
	case *typedast.TypedFunctionCall:
		walkNode(t.Callee, variants, errs)
		for _, a := range t.Args {
			walkNode(a, variants, errs)
		}
	case *typedast.TypedPropertyAccess:
		walkNode(t.Target, variants, errs)
	case *typedast.TypedIndexAccess:
		walkNode(t.Target, variants, errs)
		walkNode(t.Index, variants, errs)
	case *typedast.TypedConstructorCall:
		for _, a := range t.Args {
			walkNode(a, variants, errs)
		}
	case *typedast.TypedLambda:
		walkNode(t.Body, variants, errs)
	case *typedast.TypedIf:
		walkNode(t.Cond, variants, errs)
		walkNode(t.Then, variants, errs)
		walkNode(t.Else, variants, errs)
	case *typedast.TypedTry:
		walkNode(t.Expr, variants, errs)
		for _, c := range t.Catches {
			walkNode(c.Body, variants, errs)
		}
	}
}

// checkMatch decides one match expression's exhaustiveness. A wildcard
// or bare identifier arm always makes the match exhaustive regardless of
// declared variants; a guarded arm never does on its own, since the
// guard may reject at runtime and fall through.
func checkMatch(m *typedast.TypedMatch, variants map[string][]typedast.VariantShape, errs *types.ErrorList) {
	unionName := unionNameOf(m.Scrutinee.GetType())
	shapes, known := variants[unionName]
	if !known {
		m.Exhaustive = true
		return
	}

	covered := make(map[string]bool)
	catchAll := false
	for _, c := range m.Cases {
		switch p := c.Pattern.(type) {
		case *typedast.TypedConstructorPattern:
			covered[p.Name] = true
		case *typedast.TypedWildcardPattern, *typedast.TypedIdentifierPattern:
			catchAll = true
		}
	}

	if catchAll {
		m.Exhaustive = true
		return
	}

	var missing []string
	for _, shape := range shapes {
		if !covered[shape.Name] {
			missing = append(missing, shape.Name)
		}
	}

	if len(missing) == 0 {
		m.Exhaustive = true
		return
	}

	m.Exhaustive = false
	*errs = append(*errs, types.NewNonExhaustiveMatchError(m.Span.String(), missing))
}

func unionNameOf(t types.Type) string {
	switch tt := t.(type) {
	case *types.Named:
		return tt.Name
	case *types.Generic:
		return tt.Name
	default:
		return ""
	}
}
