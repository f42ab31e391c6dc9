package constraints

import (
	"testing"

	"github.com/taylorlang/taylorc/internal/ast"
	"github.com/taylorlang/taylorc/internal/types"
)

func TestConstraintSetAddPreservesOrder(t *testing.T) {
	cs := Empty().
		Add(NewEquality(ast.Pos{}, types.TInt, types.TInt)).
		Add(NewEquality(ast.Pos{}, types.TString, types.TString))

	if cs.Len() != 2 {
		t.Fatalf("expected 2 constraints, got %d", cs.Len())
	}
	if cs.Items()[0].Left != types.TInt {
		t.Fatalf("expected first constraint to reference TInt")
	}
}

func TestConstraintSetAddIsImmutable(t *testing.T) {
	base := Empty().Add(NewEquality(ast.Pos{}, types.TInt, types.TInt))
	extended := base.Add(NewEquality(ast.Pos{}, types.TBoolean, types.TBoolean))

	if base.Len() != 1 {
		t.Fatalf("expected base set untouched, got len %d", base.Len())
	}
	if extended.Len() != 2 {
		t.Fatalf("expected extended set to have 2, got %d", extended.Len())
	}
}

func TestConstraintSetMergePreservesOrder(t *testing.T) {
	a := From(NewEquality(ast.Pos{}, types.TInt, types.TInt))
	b := From(NewEquality(ast.Pos{}, types.TString, types.TString))
	merged := a.Merge(b)

	if merged.Len() != 2 {
		t.Fatalf("expected 2 constraints after merge, got %d", merged.Len())
	}
	if merged.Items()[0].Left != types.TInt || merged.Items()[1].Left != types.TString {
		t.Fatalf("merge did not preserve order: %v", merged.Items())
	}
}

func TestConstraintSetPartition(t *testing.T) {
	cs := From(
		Constraint{Kind: Equality},
		Constraint{Kind: Instance},
		Constraint{Kind: Equality},
	)
	eq, rest := cs.Partition(func(c Constraint) bool { return c.Kind == Equality })
	if eq.Len() != 2 || rest.Len() != 1 {
		t.Fatalf("expected 2/1 split, got %d/%d", eq.Len(), rest.Len())
	}
}

func TestMentionedTypeVars(t *testing.T) {
	f := types.NewTypeVarFactory()
	v1 := f.Fresh()
	v2 := f.Fresh()
	cs := From(
		NewEquality(ast.Pos{}, v1, types.TInt),
		NewInstance(ast.Pos{}, v2, types.Mono(types.TString)),
	)
	mentioned := cs.MentionedTypeVars()
	if len(mentioned) != 2 {
		t.Fatalf("expected 2 mentioned vars, got %d", len(mentioned))
	}
}
