// Package ast defines the input contract consumed by the type inference
// and pattern-match lowering core. Construction of these nodes (lexing,
// parsing, ASTBuilder) lives outside this module; the core only ever
// reads them.
package ast

import (
	"fmt"
	"strings"
)

// Pos is a source location. Every node carries one for diagnostics.
type Pos struct {
	Line   int
	Column int
	File   string
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Node is the base interface implemented by every AST node.
type Node interface {
	String() string
	Position() Pos
}

// Program is the root node: an ordered sequence of statements.
type Program struct {
	Statements []Statement
	Pos        Pos
}

func (p *Program) Position() Pos { return p.Pos }
func (p *Program) String() string {
	parts := make([]string, len(p.Statements))
	for i, s := range p.Statements {
		parts[i] = s.String()
	}
	return strings.Join(parts, "\n")
}

// Statement is the base interface for top-level statements.
type Statement interface {
	Node
	stmtNode()
}

// FunctionDecl declares a named function with typed parameters and an
// optional declared return type. The declared return type drives the
// Collector's try/wrap-pass-through decision (spec.md §4.2, §9).
type FunctionDecl struct {
	Name       string
	Params     []*Param
	ReturnType TypeExpr // nil if inferred
	Body       Expression
	Pos        Pos
}

type Param struct {
	Name string
	Type TypeExpr // nil if inferred (lambda-parameter style inference applies)
	Pos  Pos
}

func (f *FunctionDecl) stmtNode()    {}
func (f *FunctionDecl) Position() Pos { return f.Pos }
func (f *FunctionDecl) String() string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("fn %s(%s) = %s", f.Name, strings.Join(names, ", "), f.Body)
}

// VariantDecl is a single constructor of a union TypeDecl, e.g.
// Some(value: T) in `type Option<T> = Some(T) | None`.
type VariantDecl struct {
	Name   string
	Fields []*Param // field names are synthetic if the source is positional
	Pos    Pos
}

// TypeDecl declares a union of product variants, optionally parameterised.
type TypeDecl struct {
	Name     string
	TypeParams []string
	Variants []*VariantDecl
	Pos      Pos
}

func (t *TypeDecl) stmtNode()    {}
func (t *TypeDecl) Position() Pos { return t.Pos }
func (t *TypeDecl) String() string {
	names := make([]string, len(t.Variants))
	for i, v := range t.Variants {
		names[i] = v.Name
	}
	return fmt.Sprintf("type %s<%s> = %s", t.Name, strings.Join(t.TypeParams, ", "), strings.Join(names, " | "))
}

// ValDecl declares a top-level immutable binding.
type ValDecl struct {
	Name       string
	Annotation TypeExpr // optional
	Value      Expression
	Pos        Pos
}

func (v *ValDecl) stmtNode()    {}
func (v *ValDecl) Position() Pos { return v.Pos }
func (v *ValDecl) String() string {
	return fmt.Sprintf("val %s = %s", v.Name, v.Value)
}

// ExprStatement wraps a bare top-level expression.
type ExprStatement struct {
	Expr Expression
	Pos  Pos
}

func (e *ExprStatement) stmtNode()    {}
func (e *ExprStatement) Position() Pos { return e.Pos }
func (e *ExprStatement) String() string { return e.Expr.String() }

// Expression is the base interface for every expression node.
type Expression interface {
	Node
	exprNode()
}

// LiteralKind enumerates the literal forms spec.md §3 names.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	StringLit
	BoolLit
	NullLit
	ListLit
	MapLit
	TupleLit
)

// Literal is a literal value. ListLit/MapLit/TupleLit carry their
// elements in Elements/Entries rather than Value.
type Literal struct {
	Kind     LiteralKind
	Value    interface{} // scalar literals
	Elements []Expression // ListLit, TupleLit
	Entries  []*MapEntry  // MapLit
	Pos      Pos
}

type MapEntry struct {
	Key   Expression
	Value Expression
}

func (l *Literal) exprNode()      {}
func (l *Literal) Position() Pos  { return l.Pos }
func (l *Literal) String() string {
	switch l.Kind {
	case ListLit:
		return fmt.Sprintf("%v", l.Elements)
	case TupleLit:
		return fmt.Sprintf("(%v)", l.Elements)
	case MapLit:
		return fmt.Sprintf("%v", l.Entries)
	default:
		return fmt.Sprintf("%v", l.Value)
	}
}

// Identifier is a variable reference.
type Identifier struct {
	Name string
	Pos  Pos
}

func (i *Identifier) exprNode()     {}
func (i *Identifier) Position() Pos { return i.Pos }
func (i *Identifier) String() string { return i.Name }

// BinaryOp covers arithmetic, comparison, logical and elvis operators.
type BinaryOp struct {
	Op    string // + - * / % < <= > >= == != && || ?:
	Left  Expression
	Right Expression
	Pos   Pos
}

func (b *BinaryOp) exprNode()     {}
func (b *BinaryOp) Position() Pos { return b.Pos }
func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// UnaryOp covers negation (-) and logical not (!).
type UnaryOp struct {
	Op      string
	Operand Expression
	Pos     Pos
}

func (u *UnaryOp) exprNode()     {}
func (u *UnaryOp) Position() Pos { return u.Pos }
func (u *UnaryOp) String() string {
	return fmt.Sprintf("%s%s", u.Op, u.Operand)
}

// FunctionCall applies a callee to positional arguments.
type FunctionCall struct {
	Callee Expression
	Args   []Expression
	Pos    Pos
}

func (f *FunctionCall) exprNode()     {}
func (f *FunctionCall) Position() Pos { return f.Pos }
func (f *FunctionCall) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Callee, strings.Join(args, ", "))
}

// PropertyAccess reads a named field off a value.
type PropertyAccess struct {
	Target Expression
	Name   string
	Pos    Pos
}

func (p *PropertyAccess) exprNode()     {}
func (p *PropertyAccess) Position() Pos { return p.Pos }
func (p *PropertyAccess) String() string {
	return fmt.Sprintf("%s.%s", p.Target, p.Name)
}

// IndexAccess reads an element off a list/map-like value.
type IndexAccess struct {
	Target Expression
	Index  Expression
	Pos    Pos
}

func (ix *IndexAccess) exprNode()     {}
func (ix *IndexAccess) Position() Pos { return ix.Pos }
func (ix *IndexAccess) String() string {
	return fmt.Sprintf("%s[%s]", ix.Target, ix.Index)
}

// ConstructorCall builds a value of a declared union variant.
type ConstructorCall struct {
	Name string
	Args []Expression
	Pos  Pos
}

func (c *ConstructorCall) exprNode()     {}
func (c *ConstructorCall) Position() Pos { return c.Pos }
func (c *ConstructorCall) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
}

// LambdaExpression is an unannotated-or-partially-annotated function value.
type LambdaExpression struct {
	Params []*Param
	Body   Expression
	Pos    Pos
}

func (l *LambdaExpression) exprNode()     {}
func (l *LambdaExpression) Position() Pos { return l.Pos }
func (l *LambdaExpression) String() string {
	names := make([]string, len(l.Params))
	for i, p := range l.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(names, ", "), l.Body)
}

// IfExpression is a conditional expression; both branches unify.
type IfExpression struct {
	Cond Expression
	Then Expression
	Else Expression
	Pos  Pos
}

func (i *IfExpression) exprNode()     {}
func (i *IfExpression) Position() Pos { return i.Pos }
func (i *IfExpression) String() string {
	return fmt.Sprintf("if %s then %s else %s", i.Cond, i.Then, i.Else)
}

// MatchExpression dispatches on a scrutinee across a list of cases.
type MatchExpression struct {
	Target Expression
	Cases  []*MatchCase
	Pos    Pos
}

type MatchCase struct {
	Pattern Pattern
	Body    Expression
	Pos     Pos
}

func (m *MatchExpression) exprNode()     {}
func (m *MatchExpression) Position() Pos { return m.Pos }
func (m *MatchExpression) String() string {
	cases := make([]string, len(m.Cases))
	for i, c := range m.Cases {
		cases[i] = fmt.Sprintf("case %s => %s", c.Pattern, c.Body)
	}
	return fmt.Sprintf("match %s { %s }", m.Target, strings.Join(cases, "; "))
}

// CatchClause handles a thrown Throwable subtype inside a TryExpression.
type CatchClause struct {
	ExceptionType string // declared Throwable subtype name
	Binding       string
	Body          Expression
	Pos           Pos
}

// TryExpression unwraps a Result-typed (or automatically-wrapped)
// subexpression; see spec.md §4.2 "Try" rules.
type TryExpression struct {
	Expr    Expression
	Catches []*CatchClause
	Pos     Pos
}

func (t *TryExpression) exprNode()     {}
func (t *TryExpression) Position() Pos { return t.Pos }
func (t *TryExpression) String() string {
	return fmt.Sprintf("try %s", t.Expr)
}

// Pattern is the base interface for match-arm patterns (spec.md §3).
type Pattern interface {
	Node
	patternNode()
}

// WildcardPattern matches any value and discards it.
type WildcardPattern struct {
	Pos Pos
}

func (w *WildcardPattern) patternNode()   {}
func (w *WildcardPattern) Position() Pos  { return w.Pos }
func (w *WildcardPattern) String() string { return "_" }

// IdentifierPattern binds the matched value to a fresh name.
type IdentifierPattern struct {
	Name string
	Pos  Pos
}

func (i *IdentifierPattern) patternNode()   {}
func (i *IdentifierPattern) Position() Pos  { return i.Pos }
func (i *IdentifierPattern) String() string { return i.Name }

// LiteralPattern matches an exact literal value.
type LiteralPattern struct {
	Value interface{}
	Pos   Pos
}

func (l *LiteralPattern) patternNode()   {}
func (l *LiteralPattern) Position() Pos  { return l.Pos }
func (l *LiteralPattern) String() string { return fmt.Sprintf("%v", l.Value) }

// ConstructorPattern destructures a union variant.
type ConstructorPattern struct {
	Name        string
	Subpatterns []Pattern
	Pos         Pos
}

func (c *ConstructorPattern) patternNode()   {}
func (c *ConstructorPattern) Position() Pos  { return c.Pos }
func (c *ConstructorPattern) String() string {
	subs := make([]string, len(c.Subpatterns))
	for i, s := range c.Subpatterns {
		subs[i] = s.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(subs, ", "))
}

// GuardPattern attaches a boolean condition to an inner pattern.
type GuardPattern struct {
	Inner Pattern
	Cond  Expression
	Pos   Pos
}

func (g *GuardPattern) patternNode()   {}
func (g *GuardPattern) Position() Pos  { return g.Pos }
func (g *GuardPattern) String() string {
	return fmt.Sprintf("%s if %s", g.Inner, g.Cond)
}
