// Package collect implements the Constraint Collector (spec.md §4.2): an
// AST visitor that walks internal/ast, introduces fresh type variables,
// emits constraints into a constraints.ConstraintSet, and produces a
// typedast tree annotated with tentative (possibly still-Var) types.
package collect

import (
	"fmt"

	"github.com/taylorlang/taylorc/internal/ast"
	"github.com/taylorlang/taylorc/internal/constraints"
	"github.com/taylorlang/taylorc/internal/typedast"
	"github.com/taylorlang/taylorc/internal/types"
)

// Collector holds the mutable state threaded through one compilation
// unit's elaboration pass: the fresh-variable factory, the declared-union
// registry, and the accumulated constraints/errors.
type Collector struct {
	factory  *types.TypeVarFactory
	registry *registry
	cs       *constraints.ConstraintSet
	errs     types.ErrorList

	// currentReturnType is the enclosing function's declared return type,
	// used by TryExpression elaboration (spec.md §4.2 "Try"); nil at the
	// top level or inside a function with no declared return type.
	currentReturnType types.Type
}

// Result is everything the Solver needs, plus the union registry needed
// later by internal/match's exhaustiveness pre-pass.
type Result struct {
	Program     *typedast.TypedProgram
	Constraints *constraints.ConstraintSet
	Errors      types.ErrorList
}

// Collect runs the Collector over prog using factory as the shared
// fresh-variable source (spec.md §5: the factory, not a package
// singleton, is what callers share across a compilation unit).
func Collect(factory *types.TypeVarFactory, prog *ast.Program) Result {
	c := &Collector{factory: factory, registry: newRegistry(), cs: constraints.Empty()}
	e := preludeEnv(factory)

	// First pass: register every declared union's constructors so forward
	// references (a function using a type declared later in the file)
	// resolve (spec.md §9 "Recursive type definitions").
	for _, stmt := range prog.Statements {
		if td, ok := stmt.(*ast.TypeDecl); ok {
			c.registry.registerTypeDecl(e, td)
		}
	}

	var typedStmts []typedast.TypedStatement
	for _, stmt := range prog.Statements {
		if ts := c.collectStatement(e, stmt); ts != nil {
			typedStmts = append(typedStmts, ts)
		}
	}

	return Result{
		Program:     &typedast.TypedProgram{Statements: typedStmts, Variants: c.registry.variantShapes()},
		Constraints: c.cs,
		Errors:      c.errs,
	}
}

func (c *Collector) addConstraint(con constraints.Constraint) {
	c.cs = c.cs.Add(con)
}

func (c *Collector) merge(other *constraints.ConstraintSet) {
	c.cs = c.cs.Merge(other)
}

func (c *Collector) collectStatement(e *env, stmt ast.Statement) typedast.TypedStatement {
	switch s := stmt.(type) {
	case *ast.TypeDecl:
		return nil // constructors already registered; nothing to type

	case *ast.FunctionDecl:
		return c.collectFunctionDecl(e, s)

	case *ast.ValDecl:
		return c.collectValDecl(e, s)

	case *ast.ExprStatement:
		typed, t, cs := c.collectExpr(e, s.Expr)
		c.merge(cs)
		_ = t
		return &typedast.TypedExprStatement{Expr: typed, Span: s.Pos}

	default:
		panic(fmt.Sprintf("collect: unhandled statement %T", stmt))
	}
}

func (c *Collector) collectFunctionDecl(e *env, decl *ast.FunctionDecl) *typedast.TypedFunctionDecl {
	fnEnv := e.child()
	paramTypes := make([]types.Type, len(decl.Params))
	paramNames := make([]string, len(decl.Params))
	for i, p := range decl.Params {
		var pt types.Type
		if p.Type != nil {
			pt = typeExprToType(p.Type)
		} else {
			pt = c.factory.Fresh()
		}
		paramTypes[i] = pt
		paramNames[i] = p.Name
		fnEnv.bind(p.Name, types.Mono(pt))
	}

	var declaredReturn types.Type
	if decl.ReturnType != nil {
		declaredReturn = typeExprToType(decl.ReturnType)
	}

	prevReturn := c.currentReturnType
	c.currentReturnType = declaredReturn
	body, bodyType, bodyCS := c.collectExpr(fnEnv, decl.Body)
	c.currentReturnType = prevReturn
	c.merge(bodyCS)

	if declaredReturn != nil {
		c.addConstraint(constraints.NewEquality(decl.Pos, bodyType, declaredReturn))
	}

	fnType := &types.Function{Params: paramTypes, Ret: bodyType}
	scheme := types.Generalize(e.freeVars(), fnType)
	e.bind(decl.Name, scheme)

	return &typedast.TypedFunctionDecl{
		Name:       decl.Name,
		ParamNames: paramNames,
		Scheme:     scheme,
		Body:       body,
		Span:       decl.Pos,
	}
}

func (c *Collector) collectValDecl(e *env, decl *ast.ValDecl) *typedast.TypedValDecl {
	typed, t, cs := c.collectExpr(e, decl.Value)
	c.merge(cs)
	if decl.Annotation != nil {
		c.addConstraint(constraints.NewEquality(decl.Pos, t, typeExprToType(decl.Annotation)))
	}
	scheme := types.Generalize(e.freeVars(), t)
	e.bind(decl.Name, scheme)
	return &typedast.TypedValDecl{Name: decl.Name, Scheme: scheme, Value: typed, Span: decl.Pos}
}
