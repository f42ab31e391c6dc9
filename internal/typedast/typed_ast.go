// Package typedast is the output of the Collector/Solver pipeline: the
// same shape as internal/ast, but every expression and pattern carries
// the monomorphic types.Type the Solver settled on (spec.md §3 "typed
// AST", §4.3 "Post-pass"). MatchLower consumes this tree exclusively; it
// never looks at internal/ast directly.
package typedast

import (
	"fmt"
	"strings"

	"github.com/taylorlang/taylorc/internal/ast"
	"github.com/taylorlang/taylorc/internal/types"
)

// TypedExpr is embedded in every typed expression node. Type is always
// monomorphic: generalization only happens at let/function boundaries and
// is captured by the Scheme field on TypedValDecl/TypedFunctionDecl, not
// here.
type TypedExpr struct {
	NodeID uint64
	Span   ast.Pos
	Type   types.Type
}

func (t TypedExpr) GetNodeID() uint64    { return t.NodeID }
func (t TypedExpr) GetSpan() ast.Pos     { return t.Span }
func (t TypedExpr) GetType() types.Type  { return t.Type }

// TypedNode is the interface every typed expression satisfies.
type TypedNode interface {
	GetNodeID() uint64
	GetSpan() ast.Pos
	GetType() types.Type
	String() string
}

// TypedLiteral is a typed literal (spec.md §3 ast.Literal).
type TypedLiteral struct {
	TypedExpr
	Kind     ast.LiteralKind
	Value    interface{}
	Elements []TypedNode
	Entries  []TypedMapEntry
}

type TypedMapEntry struct {
	Key   TypedNode
	Value TypedNode
}

func (t *TypedLiteral) String() string { return fmt.Sprintf("%v : %s", t.Value, t.Type) }

// TypedIdentifier is a typed variable reference.
type TypedIdentifier struct {
	TypedExpr
	Name string
}

func (t *TypedIdentifier) String() string { return fmt.Sprintf("%s : %s", t.Name, t.Type) }

// TypedBinaryOp is a typed binary operator application.
type TypedBinaryOp struct {
	TypedExpr
	Op    string
	Left  TypedNode
	Right TypedNode
}

func (t *TypedBinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s) : %s", t.Left, t.Op, t.Right, t.Type)
}

// TypedUnaryOp is a typed unary operator application.
type TypedUnaryOp struct {
	TypedExpr
	Op      string
	Operand TypedNode
}

func (t *TypedUnaryOp) String() string {
	return fmt.Sprintf("%s%s : %s", t.Op, t.Operand, t.Type)
}

// TypedFunctionCall is a typed function-value application.
type TypedFunctionCall struct {
	TypedExpr
	Callee TypedNode
	Args   []TypedNode
}

func (t *TypedFunctionCall) String() string {
	return fmt.Sprintf("%s(%s) : %s", t.Callee, joinNodes(t.Args), t.Type)
}

// TypedPropertyAccess is typed field/property access.
type TypedPropertyAccess struct {
	TypedExpr
	Target TypedNode
	Name   string
}

func (t *TypedPropertyAccess) String() string {
	return fmt.Sprintf("%s.%s : %s", t.Target, t.Name, t.Type)
}

// TypedIndexAccess is typed indexing (e.g. list element access).
type TypedIndexAccess struct {
	TypedExpr
	Target TypedNode
	Index  TypedNode
}

func (t *TypedIndexAccess) String() string {
	return fmt.Sprintf("%s[%s] : %s", t.Target, t.Index, t.Type)
}

// TypedConstructorCall is a typed union-variant or product constructor
// invocation.
type TypedConstructorCall struct {
	TypedExpr
	Name string
	Args []TypedNode
}

func (t *TypedConstructorCall) String() string {
	return fmt.Sprintf("%s(%s) : %s", t.Name, joinNodes(t.Args), t.Type)
}

// TypedLambda is a typed lambda expression; ParamTypes are positional and
// line up with Params.
type TypedLambda struct {
	TypedExpr
	Params     []string
	ParamTypes []types.Type
	Body       TypedNode
}

func (t *TypedLambda) String() string {
	return fmt.Sprintf("\\%s -> %s : %s", strings.Join(t.Params, " "), t.Body, t.Type)
}

// TypedIf is a typed conditional expression.
type TypedIf struct {
	TypedExpr
	Cond TypedNode
	Then TypedNode
	Else TypedNode
}

func (t *TypedIf) String() string {
	return fmt.Sprintf("if %s then %s else %s : %s", t.Cond, t.Then, t.Else, t.Type)
}

// TypedMatchCase is one arm of a typed match expression.
type TypedMatchCase struct {
	Pattern TypedPattern
	Body    TypedNode
}

// TypedMatch is a typed pattern-match expression; Exhaustive records
// whether match.CheckExhaustiveness found every variant of the
// scrutinee's union type covered (spec.md §4.4, §8 S6). LowerMatch emits
// the fallthrough MatchError branch whether or not it is set.
type TypedMatch struct {
	TypedExpr
	Scrutinee  TypedNode
	Cases      []TypedMatchCase
	Exhaustive bool
}

func (t *TypedMatch) String() string {
	return fmt.Sprintf("match %s { %d case(s) } : %s", t.Scrutinee, len(t.Cases), t.Type)
}

// TypedCatchClause is one catch arm of a typed try expression.
type TypedCatchClause struct {
	ExceptionType string
	Binding       string
	Body          TypedNode
}

// TypedTry is a typed try/catch expression wrapping a Result<T,E>-typed
// inner expression (spec.md §3 "TryExpression", §4.2 try/catch rules).
type TypedTry struct {
	TypedExpr
	Expr    TypedNode
	Catches []TypedCatchClause
	// AutoWrap is false when the Collector applied the pass-through rule
	// (enclosing function and inner expression both Result<T,E>) and true
	// otherwise. Lowering emits no Ok(...) around the try's success value
	// in either case; AutoWrap only makes catch clauses rethrow.
	AutoWrap bool
}

func (t *TypedTry) String() string {
	return fmt.Sprintf("try %s : %s", t.Expr, t.Type)
}

func joinNodes(nodes []TypedNode) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}

// Typed patterns.

// TypedPattern is the interface every typed pattern satisfies; Type is
// the type the pattern is checked against, needed by MatchLower to pick
// the right comparison/unboxing instructions.
type TypedPattern interface {
	PatternType() types.Type
	String() string
}

type TypedWildcardPattern struct {
	Type types.Type
}

func (p *TypedWildcardPattern) PatternType() types.Type { return p.Type }
func (p *TypedWildcardPattern) String() string          { return "_" }

type TypedIdentifierPattern struct {
	Name string
	Type types.Type
}

func (p *TypedIdentifierPattern) PatternType() types.Type { return p.Type }
func (p *TypedIdentifierPattern) String() string          { return p.Name }

type TypedLiteralPattern struct {
	Value interface{}
	Type  types.Type
}

func (p *TypedLiteralPattern) PatternType() types.Type { return p.Type }
func (p *TypedLiteralPattern) String() string          { return fmt.Sprintf("%v", p.Value) }

// TypedConstructorPattern matches a specific union variant by name and
// recursively destructures its fields (spec.md §4.4, GLOSSARY
// "Decision tree").
type TypedConstructorPattern struct {
	Name        string
	Subpatterns []TypedPattern
	Type        types.Type
}

func (p *TypedConstructorPattern) PatternType() types.Type { return p.Type }
func (p *TypedConstructorPattern) String() string {
	parts := make([]string, len(p.Subpatterns))
	for i, sp := range p.Subpatterns {
		parts[i] = sp.String()
	}
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(parts, ", "))
}

// TypedGuardPattern wraps an inner pattern with a boolean guard
// expression; MatchLower emits the guard check after structural
// matching and after binding the arm's variables, which the guard may
// read (spec.md §4.4 step 5).
type TypedGuardPattern struct {
	Inner TypedPattern
	Cond  TypedNode
	Type  types.Type
}

func (p *TypedGuardPattern) PatternType() types.Type { return p.Type }
func (p *TypedGuardPattern) String() string {
	return fmt.Sprintf("%s if %s", p.Inner, p.Cond)
}

// Typed statements and program.

type TypedStatement interface {
	stmtNode()
	String() string
}

// TypedFunctionDecl is a typed top-level function declaration; Scheme is
// the generalized type, the only place a polymorphic type lives in the
// typed tree (spec.md §4.1 "generalize" is applied at let/function
// boundaries).
type TypedFunctionDecl struct {
	Name       string
	ParamNames []string
	Scheme     *types.Scheme
	Body       TypedNode
	Span       ast.Pos
}

func (d *TypedFunctionDecl) stmtNode() {}
func (d *TypedFunctionDecl) String() string {
	return fmt.Sprintf("fn %s : %s", d.Name, d.Scheme)
}

// TypedValDecl is a typed top-level or local value binding.
type TypedValDecl struct {
	Name   string
	Scheme *types.Scheme
	Value  TypedNode
	Span   ast.Pos
}

func (d *TypedValDecl) stmtNode() {}
func (d *TypedValDecl) String() string {
	return fmt.Sprintf("val %s : %s = %s", d.Name, d.Scheme, d.Value)
}

// TypedExprStatement is a typed bare-expression statement.
type TypedExprStatement struct {
	Expr TypedNode
	Span ast.Pos
}

func (d *TypedExprStatement) stmtNode()     {}
func (d *TypedExprStatement) String() string { return d.Expr.String() }

// TypedProgram is the root of the typed tree MatchLower and codegen walk.
type TypedProgram struct {
	Statements []TypedStatement
	// Variants records, per union TypeDecl, the ordered list of variant
	// names; the Collector fills this in from ast.TypeDecl so MatchLower
	// can compute exhaustiveness without re-walking the surface AST. It
	// fills in Name only and leaves FieldType empty.
	Variants map[string][]VariantShape
}

// VariantShape is the arity signature of one union variant, grounded on
// ast.VariantDecl.
type VariantShape struct {
	Name      string
	FieldType []types.Type
}

func PrintTypedProgram(p *TypedProgram) string {
	var b strings.Builder
	for _, s := range p.Statements {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	return b.String()
}
