package solve

import (
	"testing"

	"github.com/taylorlang/taylorc/internal/ast"
	"github.com/taylorlang/taylorc/internal/constraints"
	"github.com/taylorlang/taylorc/internal/types"
)

func TestSolveEqualitySimple(t *testing.T) {
	f := types.NewTypeVarFactory()
	v := f.Fresh()
	cs := constraints.From(constraints.NewEquality(ast.Pos{}, v, types.TInt))

	res := Solve(f, cs)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if got := types.Apply(res.Substitution, v); got.String() != types.TInt.String() {
		t.Fatalf("expected Int, got %s", got)
	}
}

func TestSolveAccumulatesMultipleErrors(t *testing.T) {
	f := types.NewTypeVarFactory()
	cs := constraints.From(
		constraints.NewEquality(ast.Pos{}, types.TInt, types.TString),
		constraints.NewEquality(ast.Pos{}, types.TBoolean, types.TString),
	)
	res := Solve(f, cs)
	if len(res.Errors) != 2 {
		t.Fatalf("expected 2 accumulated errors, got %d: %v", len(res.Errors), res.Errors)
	}
}

func TestSolveInstanceInstantiatesFreshVars(t *testing.T) {
	f := types.NewTypeVarFactory()
	q := f.Fresh()
	scheme := &types.Scheme{Quantified: []*types.Var{q}, Body: q}
	target := f.Fresh()

	cs := constraints.From(constraints.NewInstance(ast.Pos{}, target, scheme))
	res := Solve(f, cs)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	// target should now be bound to some (fresh) var, not the scheme's own q.
	resolved := types.Apply(res.Substitution, target)
	if resolved.(*types.Var).ID == q.ID {
		t.Fatal("Instance constraint should instantiate a fresh variable, not reuse the scheme's own")
	}
}

func TestSolveSubtypeGroundThrowableOk(t *testing.T) {
	f := types.NewTypeVarFactory()
	cs := constraints.From(constraints.NewSubtype(ast.Pos{}, &types.Named{Name: "IOException"}, &types.Named{Name: "Throwable"}))
	res := Solve(f, cs)
	if len(res.Errors) != 0 {
		t.Fatalf("expected IOException <: Throwable to hold, got errors: %v", res.Errors)
	}
}

func TestSolveSubtypeGroundMismatch(t *testing.T) {
	f := types.NewTypeVarFactory()
	cs := constraints.From(constraints.NewSubtype(ast.Pos{}, &types.Named{Name: "IOException"}, &types.Named{Name: "IllegalArgumentException"}))
	res := Solve(f, cs)
	if len(res.Errors) != 1 {
		t.Fatalf("expected 1 error for unrelated hierarchy branches, got %d", len(res.Errors))
	}
}

func TestSolveSubtypeDefaultsVariable(t *testing.T) {
	f := types.NewTypeVarFactory()
	v := f.Fresh()
	cs := constraints.From(constraints.NewSubtype(ast.Pos{}, v, &types.Named{Name: "IOException"}))
	res := Solve(f, cs)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	resolved := types.Apply(res.Substitution, v)
	if resolved.String() != "IOException" {
		t.Fatalf("expected variable defaulted to IOException, got %s", resolved)
	}
}
