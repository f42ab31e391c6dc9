package ast

import (
	"fmt"
	"strings"
)

// TypeExpr is a surface-syntax type annotation, as written by the
// programmer (or synthesized by the ASTBuilder from a parsed annotation).
// The Collector elaborates a TypeExpr into a types.Type; TypeExpr itself
// performs no unification and carries no Var.
type TypeExpr interface {
	Node
	typeExprNode()
}

// PrimitiveTypeExpr names one of the fixed primitive types.
type PrimitiveTypeExpr struct {
	Name string // Int, Long, Float, Double, Boolean, String, Unit, Char
	Pos  Pos
}

func (p *PrimitiveTypeExpr) typeExprNode() {}
func (p *PrimitiveTypeExpr) Position() Pos { return p.Pos }
func (p *PrimitiveTypeExpr) String() string { return p.Name }

// NamedTypeExpr refers to a user-declared union or product type with no
// type arguments.
type NamedTypeExpr struct {
	Name string
	Pos  Pos
}

func (n *NamedTypeExpr) typeExprNode() {}
func (n *NamedTypeExpr) Position() Pos { return n.Pos }
func (n *NamedTypeExpr) String() string { return n.Name }

// GenericTypeExpr is a parameterised application, e.g. Result<Int, IOException>.
type GenericTypeExpr struct {
	Name string
	Args []TypeExpr
	Pos  Pos
}

func (g *GenericTypeExpr) typeExprNode() {}
func (g *GenericTypeExpr) Position() Pos { return g.Pos }
func (g *GenericTypeExpr) String() string {
	args := make([]string, len(g.Args))
	for i, a := range g.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", g.Name, strings.Join(args, ", "))
}

// TupleTypeExpr is a fixed-arity tuple of heterogeneous element types.
type TupleTypeExpr struct {
	Elements []TypeExpr
	Pos      Pos
}

func (t *TupleTypeExpr) typeExprNode() {}
func (t *TupleTypeExpr) Position() Pos { return t.Pos }
func (t *TupleTypeExpr) String() string {
	elems := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(elems, ", "))
}

// NullableTypeExpr is surface sugar for Option<Base>; the Collector
// elaborates it to types.Nullable, which unification treats as
// Option<Base> (spec.md §9 Open Questions).
type NullableTypeExpr struct {
	Base TypeExpr
	Pos  Pos
}

func (n *NullableTypeExpr) typeExprNode() {}
func (n *NullableTypeExpr) Position() Pos { return n.Pos }
func (n *NullableTypeExpr) String() string { return fmt.Sprintf("%s?", n.Base) }

// FunctionTypeExpr is a function type annotation.
type FunctionTypeExpr struct {
	Params []TypeExpr
	Return TypeExpr
	Pos    Pos
}

func (f *FunctionTypeExpr) typeExprNode() {}
func (f *FunctionTypeExpr) Position() Pos { return f.Pos }
func (f *FunctionTypeExpr) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), f.Return)
}
