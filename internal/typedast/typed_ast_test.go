package typedast

import (
	"testing"

	"github.com/taylorlang/taylorc/internal/ast"
	"github.com/taylorlang/taylorc/internal/types"
)

func TestTypedLiteralString(t *testing.T) {
	lit := &TypedLiteral{
		TypedExpr: TypedExpr{NodeID: 1, Span: ast.Pos{Line: 1, Column: 1}, Type: types.TInt},
		Kind:      ast.IntLit,
		Value:     int64(42),
	}
	var _ TypedNode = lit
	if lit.GetType() != types.TInt {
		t.Fatalf("expected TInt, got %v", lit.GetType())
	}
}

func TestTypedLambdaParamTypesAlignWithParams(t *testing.T) {
	body := &TypedIdentifier{TypedExpr: TypedExpr{NodeID: 2, Type: types.TInt}, Name: "x"}
	lambda := &TypedLambda{
		TypedExpr:  TypedExpr{NodeID: 1, Type: &types.Function{Params: []types.Type{types.TInt}, Ret: types.TInt}},
		Params:     []string{"x"},
		ParamTypes: []types.Type{types.TInt},
		Body:       body,
	}
	var _ TypedNode = lambda
	if len(lambda.Params) != len(lambda.ParamTypes) {
		t.Fatalf("param/type arity mismatch: %d vs %d", len(lambda.Params), len(lambda.ParamTypes))
	}
}

func TestTypedMatchExhaustiveFlag(t *testing.T) {
	scrutinee := &TypedIdentifier{TypedExpr: TypedExpr{NodeID: 1, Type: &types.Named{Name: "Option"}}, Name: "opt"}
	m := &TypedMatch{
		TypedExpr: TypedExpr{NodeID: 2, Type: types.TInt},
		Scrutinee: scrutinee,
		Cases: []TypedMatchCase{
			{Pattern: &TypedConstructorPattern{Name: "Some", Subpatterns: []TypedPattern{
				&TypedIdentifierPattern{Name: "v", Type: types.TInt},
			}}, Body: &TypedIdentifier{TypedExpr: TypedExpr{NodeID: 3, Type: types.TInt}, Name: "v"}},
			{Pattern: &TypedConstructorPattern{Name: "None"}, Body: &TypedLiteral{
				TypedExpr: TypedExpr{NodeID: 4, Type: types.TInt}, Kind: ast.IntLit, Value: int64(0),
			}},
		},
		Exhaustive: true,
	}
	if !m.Exhaustive {
		t.Fatal("expected match to be marked exhaustive")
	}
	if len(m.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(m.Cases))
	}
}

func TestTypedTryAutoWrapFlag(t *testing.T) {
	inner := &TypedFunctionCall{TypedExpr: TypedExpr{NodeID: 1, Type: &types.Generic{Name: "Result", Args: []types.Type{types.TInt, &types.Named{Name: "IOException"}}}}}
	try := &TypedTry{
		TypedExpr: TypedExpr{NodeID: 2, Type: types.TInt},
		Expr:      inner,
		AutoWrap:  true,
	}
	if !try.AutoWrap {
		t.Fatal("expected AutoWrap true")
	}
}

func TestTypedProgramPrint(t *testing.T) {
	prog := &TypedProgram{
		Statements: []TypedStatement{
			&TypedValDecl{Name: "x", Scheme: types.Mono(types.TInt), Value: &TypedLiteral{
				TypedExpr: TypedExpr{NodeID: 1, Type: types.TInt}, Kind: ast.IntLit, Value: int64(1),
			}},
		},
	}
	out := PrintTypedProgram(prog)
	if out == "" {
		t.Fatal("expected non-empty program dump")
	}
}
