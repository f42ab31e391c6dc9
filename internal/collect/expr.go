package collect

import (
	"fmt"

	"github.com/taylorlang/taylorc/internal/ast"
	"github.com/taylorlang/taylorc/internal/constraints"
	"github.com/taylorlang/taylorc/internal/typedast"
	"github.com/taylorlang/taylorc/internal/types"
)

// collectExpr elaborates e in env, returning the typed node, its
// (possibly still-Var) type, and the constraints generated. This is the
// `⊢ e ⇒ (t, C)` judgment of spec.md §4.2.
func (c *Collector) collectExpr(env *env, expr ast.Expression) (typedast.TypedNode, types.Type, *constraints.ConstraintSet) {
	switch e := expr.(type) {
	case *ast.Literal:
		return c.collectLiteral(env, e)
	case *ast.Identifier:
		return c.collectIdentifier(env, e)
	case *ast.BinaryOp:
		return c.collectBinaryOp(env, e)
	case *ast.UnaryOp:
		return c.collectUnaryOp(env, e)
	case *ast.FunctionCall:
		return c.collectFunctionCall(env, e)
	case *ast.PropertyAccess:
		return c.collectPropertyAccess(env, e)
	case *ast.IndexAccess:
		return c.collectIndexAccess(env, e)
	case *ast.ConstructorCall:
		return c.collectConstructorCall(env, e)
	case *ast.LambdaExpression:
		return c.collectLambda(env, e)
	case *ast.IfExpression:
		return c.collectIf(env, e)
	case *ast.MatchExpression:
		return c.collectMatch(env, e)
	case *ast.TryExpression:
		return c.collectTry(env, e)
	default:
		panic(fmt.Sprintf("collect: unhandled expression %T", expr))
	}
}

func (c *Collector) collectLiteral(env *env, lit *ast.Literal) (typedast.TypedNode, types.Type, *constraints.ConstraintSet) {
	cs := constraints.Empty()
	switch lit.Kind {
	case ast.ListLit:
		elemVar := c.factory.Fresh()
		elems := make([]typedast.TypedNode, len(lit.Elements))
		for i, el := range lit.Elements {
			typed, t, ecs := c.collectExpr(env, el)
			cs = cs.Merge(ecs)
			cs = cs.Add(constraints.NewEquality(el.Position(), t, elemVar))
			elems[i] = typed
		}
		var listType types.Type = &types.Generic{Name: "List", Args: []types.Type{elemVar}}
		return &typedast.TypedLiteral{
			TypedExpr: typedast.TypedExpr{Span: lit.Pos, Type: listType},
			Kind:      lit.Kind, Elements: elems,
		}, listType, cs

	case ast.TupleLit:
		elems := make([]typedast.TypedNode, len(lit.Elements))
		elemTypes := make([]types.Type, len(lit.Elements))
		for i, el := range lit.Elements {
			typed, t, ecs := c.collectExpr(env, el)
			cs = cs.Merge(ecs)
			elems[i] = typed
			elemTypes[i] = t
		}
		var tupleType types.Type = &types.Tuple{Elems: elemTypes}
		return &typedast.TypedLiteral{
			TypedExpr: typedast.TypedExpr{Span: lit.Pos, Type: tupleType},
			Kind:      lit.Kind, Elements: elems,
		}, tupleType, cs

	case ast.MapLit:
		keyVar := c.factory.Fresh()
		valVar := c.factory.Fresh()
		entries := make([]typedast.TypedMapEntry, len(lit.Entries))
		for i, ent := range lit.Entries {
			kTyped, kt, kcs := c.collectExpr(env, ent.Key)
			vTyped, vt, vcs := c.collectExpr(env, ent.Value)
			cs = cs.Merge(kcs).Merge(vcs)
			cs = cs.Add(constraints.NewEquality(ent.Key.Position(), kt, keyVar))
			cs = cs.Add(constraints.NewEquality(ent.Value.Position(), vt, valVar))
			entries[i] = typedast.TypedMapEntry{Key: kTyped, Value: vTyped}
		}
		var mapType types.Type = &types.Generic{Name: "Map", Args: []types.Type{keyVar, valVar}}
		return &typedast.TypedLiteral{
			TypedExpr: typedast.TypedExpr{Span: lit.Pos, Type: mapType},
			Kind:      lit.Kind, Entries: entries,
		}, mapType, cs

	default:
		t := scalarLiteralType(lit.Kind)
		return &typedast.TypedLiteral{
			TypedExpr: typedast.TypedExpr{Span: lit.Pos, Type: t},
			Kind:      lit.Kind, Value: lit.Value,
		}, t, cs
	}
}

func (c *Collector) collectIdentifier(env *env, id *ast.Identifier) (typedast.TypedNode, types.Type, *constraints.ConstraintSet) {
	scheme, ok := env.lookup(id.Name)
	if !ok {
		c.errs = append(c.errs, types.NewUnboundIdentifierError(id.Pos.String(), id.Name))
		v := c.factory.Fresh()
		return &typedast.TypedIdentifier{TypedExpr: typedast.TypedExpr{Span: id.Pos, Type: v}, Name: id.Name}, v, constraints.Empty()
	}
	t := types.Instantiate(c.factory, scheme)
	return &typedast.TypedIdentifier{TypedExpr: typedast.TypedExpr{Span: id.Pos, Type: t}, Name: id.Name}, t, constraints.Empty()
}

// arithmeticOps and comparisonOps partition spec.md §3's BinaryOp
// vocabulary for the dispatch in collectBinaryOp.
var arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}
var comparisonOps = map[string]bool{"<": true, "<=": true, ">": true, ">=": true, "==": true, "!=": true}
var logicalOps = map[string]bool{"&&": true, "||": true}

func (c *Collector) collectBinaryOp(env *env, b *ast.BinaryOp) (typedast.TypedNode, types.Type, *constraints.ConstraintSet) {
	leftTyped, lt, lcs := c.collectExpr(env, b.Left)
	rightTyped, rt, rcs := c.collectExpr(env, b.Right)
	cs := lcs.Merge(rcs)

	var result types.Type
	switch {
	case arithmeticOps[b.Op]:
		result = c.arithmeticResult(b.Pos, lt, rt, b.Op, &cs)
	case comparisonOps[b.Op]:
		cs = cs.Add(constraints.NewEquality(b.Pos, lt, rt))
		result = types.TBoolean
	case logicalOps[b.Op]:
		cs = cs.Add(constraints.NewEquality(b.Pos, lt, types.TBoolean))
		cs = cs.Add(constraints.NewEquality(b.Pos, rt, types.TBoolean))
		result = types.TBoolean
	case b.Op == "?:":
		beta := c.factory.Fresh()
		cs = cs.Add(constraints.NewEquality(b.Pos, lt, &types.Nullable{Base: beta}))
		cs = cs.Add(constraints.NewEquality(b.Pos, rt, beta))
		result = beta
	default:
		beta := c.factory.Fresh()
		cs = cs.Add(constraints.NewEquality(b.Pos, lt, beta))
		cs = cs.Add(constraints.NewEquality(b.Pos, rt, beta))
		result = beta
	}

	return &typedast.TypedBinaryOp{
		TypedExpr: typedast.TypedExpr{Span: b.Pos, Type: result},
		Op:        b.Op, Left: leftTyped, Right: rightTyped,
	}, result, cs
}

// arithmeticResult implements spec.md §4.2's three-way dispatch directly
// when both operand types are already concrete (the common case: typed
// parameters, literals, or previously-resolved identifiers), and falls
// back to constraint-based resolution when one side is still a bare
// type variable (e.g. an un-annotated lambda parameter) — deferring to
// the Solver rather than guessing, per the "never local heuristics"
// requirement.
func (c *Collector) arithmeticResult(pos ast.Pos, lt, rt types.Type, op string, cs **constraints.ConstraintSet) types.Type {
	lp, lok := lt.(*types.Primitive)
	rp, rok := rt.(*types.Primitive)

	if op == "+" && ((lok && lp.Name == "String") || (rok && rp.Name == "String")) {
		return types.TString
	}

	if lok && rok {
		if lp.Name == "Int" && rp.Name == "Int" {
			return types.TInt
		}
		if types.IsFloating(lp) || types.IsFloating(rp) {
			return types.TDouble
		}
		*cs = (*cs).Add(constraints.NewEquality(pos, lt, rt))
		return lt
	}

	beta := c.factory.Fresh()
	*cs = (*cs).Add(constraints.NewEquality(pos, lt, rt))
	*cs = (*cs).Add(constraints.NewEquality(pos, beta, lt))
	return beta
}

func (c *Collector) collectUnaryOp(env *env, u *ast.UnaryOp) (typedast.TypedNode, types.Type, *constraints.ConstraintSet) {
	typed, t, cs := c.collectExpr(env, u.Operand)
	var result types.Type
	if u.Op == "!" || u.Op == "¬" {
		cs = cs.Add(constraints.NewEquality(u.Pos, t, types.TBoolean))
		result = types.TBoolean
	} else {
		result = t
	}
	return &typedast.TypedUnaryOp{TypedExpr: typedast.TypedExpr{Span: u.Pos, Type: result}, Op: u.Op, Operand: typed}, result, cs
}

func (c *Collector) collectFunctionCall(env *env, call *ast.FunctionCall) (typedast.TypedNode, types.Type, *constraints.ConstraintSet) {
	calleeTyped, tf, cs := c.collectExpr(env, call.Callee)
	args := make([]typedast.TypedNode, len(call.Args))
	argTypes := make([]types.Type, len(call.Args))
	for i, a := range call.Args {
		typed, t, acs := c.collectExpr(env, a)
		cs = cs.Merge(acs)
		args[i] = typed
		argTypes[i] = t
	}
	beta := c.factory.Fresh()
	cs = cs.Add(constraints.NewEquality(call.Pos, tf, &types.Function{Params: argTypes, Ret: beta}))
	return &typedast.TypedFunctionCall{
		TypedExpr: typedast.TypedExpr{Span: call.Pos, Type: beta}, Callee: calleeTyped, Args: args,
	}, beta, cs
}

// collectPropertyAccess has no structural field-type table to consult
// (this module carries no open record/row type, per spec.md §1
// Non-goals), so the accessed field's type is a fresh variable resolved
// only by later unification against its use (e.g. passed to a typed
// function parameter) rather than by a lookup here.
func (c *Collector) collectPropertyAccess(env *env, p *ast.PropertyAccess) (typedast.TypedNode, types.Type, *constraints.ConstraintSet) {
	typed, _, cs := c.collectExpr(env, p.Target)
	beta := c.factory.Fresh()
	return &typedast.TypedPropertyAccess{
		TypedExpr: typedast.TypedExpr{Span: p.Pos, Type: beta}, Target: typed, Name: p.Name,
	}, beta, cs
}

// collectIndexAccess assumes a List target, the only built-in indexable
// collection in this module's scope; Map lookup uses a different surface
// form in this language.
func (c *Collector) collectIndexAccess(env *env, ix *ast.IndexAccess) (typedast.TypedNode, types.Type, *constraints.ConstraintSet) {
	targetTyped, tt, tcs := c.collectExpr(env, ix.Target)
	idxTyped, it, ics := c.collectExpr(env, ix.Index)
	cs := tcs.Merge(ics)
	elem := c.factory.Fresh()
	cs = cs.Add(constraints.NewEquality(ix.Pos, tt, &types.Generic{Name: "List", Args: []types.Type{elem}}))
	cs = cs.Add(constraints.NewEquality(ix.Pos, it, types.TInt))
	return &typedast.TypedIndexAccess{
		TypedExpr: typedast.TypedExpr{Span: ix.Pos, Type: elem}, Target: targetTyped, Index: idxTyped,
	}, elem, cs
}

func (c *Collector) collectConstructorCall(env *env, call *ast.ConstructorCall) (typedast.TypedNode, types.Type, *constraints.ConstraintSet) {
	scheme, ok := env.lookup(call.Name)
	if !ok {
		c.errs = append(c.errs, types.NewNotInstantiableError(call.Pos.String(), call.Name))
		beta := c.factory.Fresh()
		return &typedast.TypedConstructorCall{TypedExpr: typedast.TypedExpr{Span: call.Pos, Type: beta}, Name: call.Name}, beta, constraints.Empty()
	}

	fnType := types.Instantiate(c.factory, scheme)
	fn, ok := fnType.(*types.Function)
	if !ok {
		beta := c.factory.Fresh()
		return &typedast.TypedConstructorCall{TypedExpr: typedast.TypedExpr{Span: call.Pos, Type: beta}, Name: call.Name}, beta, constraints.Empty()
	}

	cs := constraints.Empty()
	args := make([]typedast.TypedNode, len(call.Args))
	for i, a := range call.Args {
		typed, t, acs := c.collectExpr(env, a)
		cs = cs.Merge(acs)
		args[i] = typed
		if i < len(fn.Params) {
			cs = cs.Add(constraints.NewEquality(a.Position(), t, fn.Params[i]))
		}
	}

	return &typedast.TypedConstructorCall{
		TypedExpr: typedast.TypedExpr{Span: call.Pos, Type: fn.Ret}, Name: call.Name, Args: args,
	}, fn.Ret, cs
}

func (c *Collector) collectLambda(env *env, lam *ast.LambdaExpression) (typedast.TypedNode, types.Type, *constraints.ConstraintSet) {
	bodyEnv := env.child()
	paramNames := make([]string, len(lam.Params))
	paramTypes := make([]types.Type, len(lam.Params))
	for i, p := range lam.Params {
		var pt types.Type
		if p.Type != nil {
			pt = typeExprToType(p.Type)
		} else {
			pt = c.factory.Fresh()
		}
		paramNames[i] = p.Name
		paramTypes[i] = pt
		bodyEnv.bind(p.Name, types.Mono(pt))
	}

	bodyTyped, bodyType, cs := c.collectExpr(bodyEnv, lam.Body)
	fnType := &types.Function{Params: paramTypes, Ret: bodyType}
	return &typedast.TypedLambda{
		TypedExpr: typedast.TypedExpr{Span: lam.Pos, Type: fnType},
		Params:    paramNames, ParamTypes: paramTypes, Body: bodyTyped,
	}, fnType, cs
}

func (c *Collector) collectIf(env *env, ife *ast.IfExpression) (typedast.TypedNode, types.Type, *constraints.ConstraintSet) {
	condTyped, ct, ccs := c.collectExpr(env, ife.Cond)
	thenTyped, tt, tcs := c.collectExpr(env, ife.Then)
	elseTyped, et, ecs := c.collectExpr(env, ife.Else)
	cs := ccs.Merge(tcs).Merge(ecs)
	cs = cs.Add(constraints.NewEquality(ife.Pos, ct, types.TBoolean))
	cs = cs.Add(constraints.NewEquality(ife.Pos, tt, et))
	return &typedast.TypedIf{
		TypedExpr: typedast.TypedExpr{Span: ife.Pos, Type: tt}, Cond: condTyped, Then: thenTyped, Else: elseTyped,
	}, tt, cs
}

// collectMatch elaborates a match expression: the scrutinee's type seeds
// each case's pattern elaboration, and every case body is unified to a
// single shared result type. Exhaustiveness is not decided here — per
// spec.md §7's error taxonomy, NonExhaustiveMatch belongs to the
// internal/match pre-pass over the solved typed tree, so Exhaustive is
// left false and corrected by that later pass.
func (c *Collector) collectMatch(env *env, m *ast.MatchExpression) (typedast.TypedNode, types.Type, *constraints.ConstraintSet) {
	scrutTyped, scrutType, cs := c.collectExpr(env, m.Target)
	resultType := c.factory.Fresh()

	cases := make([]typedast.TypedMatchCase, len(m.Cases))
	for i, mc := range m.Cases {
		caseEnv, patTyped, pcs := c.collectPattern(env, mc.Pattern, scrutType)
		cs = cs.Merge(pcs)
		bodyTyped, bodyType, bcs := c.collectExpr(caseEnv, mc.Body)
		cs = cs.Merge(bcs)
		cs = cs.Add(constraints.NewEquality(mc.Pos, bodyType, resultType))
		cases[i] = typedast.TypedMatchCase{Pattern: patTyped, Body: bodyTyped}
	}

	return &typedast.TypedMatch{
		TypedExpr: typedast.TypedExpr{Span: m.Pos, Type: resultType},
		Scrutinee: scrutTyped, Cases: cases, Exhaustive: false,
	}, resultType, cs
}

// collectTry implements spec.md §4.2's try pass-through/auto-wrap rule:
// when the enclosing function's declared return type and the try's inner
// expression type are both structurally Result<_,_>, the error channel
// is threaded through via Subtype against the Throwable hierarchy
// (pass-through); otherwise the inner expression's type is unified
// directly against the enclosing return type and the try is marked
// AutoWrap; no Ok(...) wrapping is emitted for it, here or in lowering.
//
// Per spec.md §4.2, the pass-through case "surrounds [the try] with a
// generated exception catch that converts any thrown E-compatible to
// Error(e)" even when the source has no explicit catch clause at all
// (spec.md §8 S4's literal input has none) — so a source-absent catch is
// synthesized here rather than left for the lowerer to invent.
func (c *Collector) collectTry(env *env, t *ast.TryExpression) (typedast.TypedNode, types.Type, *constraints.ConstraintSet) {
	innerTyped, te, cs := c.collectExpr(env, t.Expr)

	autoWrap := true
	var resultType types.Type
	var errType types.Type

	if ret, ok := c.currentReturnType.(*types.Generic); ok && ret.Name == "Result" && len(ret.Args) == 2 {
		if inner, ok := te.(*types.Generic); ok && inner.Name == "Result" && len(inner.Args) == 2 {
			cs = cs.Add(constraints.NewEquality(t.Pos, inner.Args[0], ret.Args[0]))
			cs = cs.Add(constraints.NewSubtype(t.Pos, inner.Args[1], ret.Args[1]))
			resultType = ret.Args[0]
			errType = ret.Args[1]
			autoWrap = false
		}
	}

	if autoWrap {
		if c.currentReturnType != nil {
			cs = cs.Add(constraints.NewEquality(t.Pos, te, c.currentReturnType))
			resultType = c.currentReturnType
		} else {
			resultType = te
		}
	}

	var catches []typedast.TypedCatchClause
	if len(t.Catches) > 0 {
		catches = make([]typedast.TypedCatchClause, len(t.Catches))
		for i, cc := range t.Catches {
			catchEnv := env.child()
			catchEnv.bind(cc.Binding, types.Mono(&types.Named{Name: cc.ExceptionType}))
			bodyTyped, bodyType, bcs := c.collectExpr(catchEnv, cc.Body)
			cs = cs.Merge(bcs)
			cs = cs.Add(constraints.NewEquality(cc.Pos, bodyType, resultType))
			catches[i] = typedast.TypedCatchClause{ExceptionType: cc.ExceptionType, Binding: cc.Binding, Body: bodyTyped}
		}
	} else if !autoWrap {
		catches = []typedast.TypedCatchClause{synthesizeErrorCatch(t.Pos, errType, c.currentReturnType)}
	}

	return &typedast.TypedTry{
		TypedExpr: typedast.TypedExpr{Span: t.Pos, Type: resultType},
		Expr:      innerTyped, Catches: catches, AutoWrap: autoWrap,
	}, resultType, cs
}

// synthesizeErrorCatch builds the generated `catch (E e) { return
// Error(e) }` clause spec.md §4.2 requires for a catch-less pass-through
// try: its body is typed as the enclosing function's full Result<T,E>
// return type (what the generated `return` statement actually hands
// back), not the try expression's own unwrapped success type.
func synthesizeErrorCatch(pos ast.Pos, errType, returnType types.Type) typedast.TypedCatchClause {
	return typedast.TypedCatchClause{
		ExceptionType: throwableNameOf(errType),
		Binding:       "e",
		Body: &typedast.TypedConstructorCall{
			TypedExpr: typedast.TypedExpr{Span: pos, Type: returnType},
			Name:      "Error",
			Args: []typedast.TypedNode{
				&typedast.TypedIdentifier{TypedExpr: typedast.TypedExpr{Span: pos, Type: errType}, Name: "e"},
			},
		},
	}
}

// throwableNameOf renders a Throwable-hierarchy type's declared name for
// use as a JVM catch clause's exception type.
func throwableNameOf(t types.Type) string {
	switch tt := t.(type) {
	case *types.Named:
		return tt.Name
	case *types.Generic:
		return tt.Name
	default:
		return t.String()
	}
}

// collectPattern elaborates pat against an expected scrutinee/field type,
// returning an env extended with any identifier bindings the pattern
// introduces (visible to the case body and, for ConstructorPattern, to
// sibling subpatterns' guard conditions).
func (c *Collector) collectPattern(env *env, pat ast.Pattern, expected types.Type) (*env, typedast.TypedPattern, *constraints.ConstraintSet) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return env, &typedast.TypedWildcardPattern{Type: expected}, constraints.Empty()

	case *ast.IdentifierPattern:
		child := env.child()
		child.bind(p.Name, types.Mono(expected))
		return child, &typedast.TypedIdentifierPattern{Name: p.Name, Type: expected}, constraints.Empty()

	case *ast.LiteralPattern:
		lt := literalPatternType(p.Value)
		cs := constraints.Empty().Add(constraints.NewEquality(p.Pos, lt, expected))
		return env, &typedast.TypedLiteralPattern{Value: p.Value, Type: expected}, cs

	case *ast.ConstructorPattern:
		scheme, ok := env.lookup(p.Name)
		if !ok {
			c.errs = append(c.errs, types.NewNotInstantiableError(p.Pos.String(), p.Name))
			return env, &typedast.TypedConstructorPattern{Name: p.Name, Type: expected}, constraints.Empty()
		}
		fn, ok := types.Instantiate(c.factory, scheme).(*types.Function)
		if !ok {
			return env, &typedast.TypedConstructorPattern{Name: p.Name, Type: expected}, constraints.Empty()
		}

		cs := constraints.Empty().Add(constraints.NewEquality(p.Pos, fn.Ret, expected))
		cur := env
		subs := make([]typedast.TypedPattern, len(p.Subpatterns))
		for i, sp := range p.Subpatterns {
			fieldType := c.factory.Fresh()
			if i < len(fn.Params) {
				fieldType = fn.Params[i]
			}
			var typedSub typedast.TypedPattern
			var subcs *constraints.ConstraintSet
			cur, typedSub, subcs = c.collectPattern(cur, sp, fieldType)
			cs = cs.Merge(subcs)
			subs[i] = typedSub
		}
		return cur, &typedast.TypedConstructorPattern{Name: p.Name, Subpatterns: subs, Type: expected}, cs

	case *ast.GuardPattern:
		innerEnv, innerTyped, cs := c.collectPattern(env, p.Inner, expected)
		condTyped, condType, ccs := c.collectExpr(innerEnv, p.Cond)
		cs = cs.Merge(ccs)
		cs = cs.Add(constraints.NewEquality(p.Pos, condType, types.TBoolean))
		return innerEnv, &typedast.TypedGuardPattern{Inner: innerTyped, Cond: condTyped, Type: expected}, cs

	default:
		panic(fmt.Sprintf("collect: unhandled pattern %T", pat))
	}
}

// literalPatternType infers a literal pattern's ground type from the Go
// value the ASTBuilder attached to it.
func literalPatternType(v interface{}) types.Type {
	switch v.(type) {
	case int, int64, int32:
		return types.TInt
	case float64, float32:
		return types.TDouble
	case string:
		return types.TString
	case bool:
		return types.TBoolean
	default:
		return types.TUnit
	}
}
