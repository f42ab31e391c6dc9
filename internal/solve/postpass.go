package solve

import (
	"github.com/taylorlang/taylorc/internal/typedast"
	"github.com/taylorlang/taylorc/internal/types"
)

// PostPass applies the final substitution to every TypedExpression.type
// in the typed tree (spec.md §4.3 "Post-pass") and reports an
// AmbiguousType error for any Var left unresolved, other than a variable
// that a declaration's scheme quantifies over. Every node's Type field in
// prog is rewritten in place; only the errors are returned.
func PostPass(sub types.Substitution, prog *typedast.TypedProgram) types.ErrorList {
	var errs types.ErrorList
	seen := make(map[uint64]bool)
	for _, stmt := range prog.Statements {
		var scheme *types.Scheme
		switch s := stmt.(type) {
		case *typedast.TypedFunctionDecl:
			scheme = s.Scheme
		case *typedast.TypedValDecl:
			scheme = s.Scheme
		}
		if scheme != nil {
			for _, q := range scheme.Quantified {
				seen[q.ID] = true
			}
		}
	}

	report := func(pos string, t types.Type) types.Type {
		resolved := types.Apply(sub, t)
		for _, v := range types.FreeVars(resolved) {
			if !seen[v.ID] {
				seen[v.ID] = true
				errs = append(errs, types.NewAmbiguousTypeError(pos, v))
			}
		}
		return resolved
	}

	for _, stmt := range prog.Statements {
		walkStatement(stmt, sub, report)
	}
	return errs
}

func walkStatement(stmt typedast.TypedStatement, sub types.Substitution, report func(string, types.Type) types.Type) {
	switch s := stmt.(type) {
	case *typedast.TypedFunctionDecl:
		s.Scheme.Body = report(s.Span.String(), s.Scheme.Body)
		walkNode(s.Body, sub, report)
	case *typedast.TypedValDecl:
		s.Scheme.Body = report(s.Span.String(), s.Scheme.Body)
		walkNode(s.Value, sub, report)
	case *typedast.TypedExprStatement:
		walkNode(s.Expr, sub, report)
	}
}

// walkNode applies the substitution to n's own type and recurses into
// its children. It mutates the embedded TypedExpr.Type field in place.
func walkNode(n typedast.TypedNode, sub types.Substitution, report func(string, types.Type) types.Type) {
	if n == nil {
		return
	}
	pos := n.GetSpan().String()

	switch t := n.(type) {
	case *typedast.TypedLiteral:
		t.Type = report(pos, t.Type)
		for _, e := range t.Elements {
			walkNode(e, sub, report)
		}
		for _, e := range t.Entries {
			walkNode(e.Key, sub, report)
			walkNode(e.Value, sub, report)
		}
	case *typedast.TypedIdentifier:
		t.Type = report(pos, t.Type)
	case *typedast.TypedBinaryOp:
		t.Type = report(pos, t.Type)
		walkNode(t.Left, sub, report)
		walkNode(t.Right, sub, report)
	case *typedast.TypedUnaryOp:
		t.Type = report(pos, t.Type)
		walkNode(t.Operand, sub, report)
	case *typedast.TypedFunctionCall:
		t.Type = report(pos, t.Type)
		walkNode(t.Callee, sub, report)
		for _, a := range t.Args {
			walkNode(a, sub, report)
		}
	case *typedast.TypedPropertyAccess:
		t.Type = report(pos, t.Type)
		walkNode(t.Target, sub, report)
	case *typedast.TypedIndexAccess:
		t.Type = report(pos, t.Type)
		walkNode(t.Target, sub, report)
		walkNode(t.Index, sub, report)
	case *typedast.TypedConstructorCall:
		t.Type = report(pos, t.Type)
		for _, a := range t.Args {
			walkNode(a, sub, report)
		}
	case *typedast.TypedLambda:
		t.Type = report(pos, t.Type)
		for i, pt := range t.ParamTypes {
			t.ParamTypes[i] = report(pos, pt)
		}
		walkNode(t.Body, sub, report)
	case *typedast.TypedIf:
		t.Type = report(pos, t.Type)
		walkNode(t.Cond, sub, report)
		walkNode(t.Then, sub, report)
		walkNode(t.Else, sub, report)
	case *typedast.TypedMatch:
		t.Type = report(pos, t.Type)
		walkNode(t.Scrutinee, sub, report)
		for _, c := range t.Cases {
			walkPattern(c.Pattern, sub, report)
			walkNode(c.Body, sub, report)
		}
	case *typedast.TypedTry:
		t.Type = report(pos, t.Type)
		walkNode(t.Expr, sub, report)
		for _, c := range t.Catches {
			walkNode(c.Body, sub, report)
		}
	}
}

func walkPattern(p typedast.TypedPattern, sub types.Substitution, report func(string, types.Type) types.Type) {
	switch pat := p.(type) {
	case *typedast.TypedWildcardPattern:
		pat.Type = report("", pat.Type)
	case *typedast.TypedIdentifierPattern:
		pat.Type = report("", pat.Type)
	case *typedast.TypedLiteralPattern:
		pat.Type = report("", pat.Type)
	case *typedast.TypedConstructorPattern:
		pat.Type = report("", pat.Type)
		for _, sp := range pat.Subpatterns {
			walkPattern(sp, sub, report)
		}
	case *typedast.TypedGuardPattern:
		pat.Type = report("", pat.Type)
		walkPattern(pat.Inner, sub, report)
		walkNode(pat.Cond, sub, report)
	}
}
