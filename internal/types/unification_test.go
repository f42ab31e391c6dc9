package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustUnify(t *testing.T, a, b Type) Substitution {
	t.Helper()
	sub, err := Unify(a, b)
	if err != nil {
		t.Fatalf("Unify(%s, %s) failed: %v", a, b, err)
	}
	return sub
}

func TestUnifySoundness(t *testing.T) {
	f := NewTypeVarFactory()
	v := f.Fresh()
	cases := []struct {
		name   string
		t1, t2 Type
	}{
		{"primitives", TInt, TInt},
		{"var to primitive", v, TInt},
		{"generic", &Generic{Name: "List", Args: []Type{TInt}}, &Generic{Name: "List", Args: []Type{v}}},
		{"function", &Function{Params: []Type{TInt}, Ret: TBoolean}, &Function{Params: []Type{v}, Ret: TBoolean}},
		{"tuple", &Tuple{Elems: []Type{TInt, TString}}, &Tuple{Elems: []Type{v, TString}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := mustUnify(t, tc.t1, tc.t2)
			a1 := Apply(sub, tc.t1)
			a2 := Apply(sub, tc.t2)
			if diff := cmp.Diff(a1.String(), a2.String()); diff != "" {
				t.Errorf("unification unsound (-got +want):\n%s", diff)
			}
		})
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	f := NewTypeVarFactory()
	v := f.Fresh()
	_, err := Unify(v, &Generic{Name: "List", Args: []Type{v}})
	if err == nil {
		t.Fatal("expected occurs-check failure")
	}
	ue, ok := err.(*UnifyError)
	if !ok || ue.Kind != OccursCheck {
		t.Fatalf("expected OccursCheck, got %v", err)
	}
}

func TestUnifyMismatchPrimitives(t *testing.T) {
	_, err := Unify(TInt, TString)
	ue, ok := err.(*UnifyError)
	if !ok || ue.Kind != MismatchPrimitives {
		t.Fatalf("expected MismatchPrimitives, got %v", err)
	}
}

func TestUnifyArityMismatch(t *testing.T) {
	_, err := Unify(
		&Function{Params: []Type{TInt}, Ret: TUnit},
		&Function{Params: []Type{TInt, TInt}, Ret: TUnit},
	)
	ue, ok := err.(*UnifyError)
	if !ok || ue.Kind != ArityMismatch {
		t.Fatalf("expected ArityMismatch, got %v", err)
	}
}

func TestSubstitutionIdempotence(t *testing.T) {
	f := NewTypeVarFactory()
	v := f.Fresh()
	sub := mustUnify(t, v, TInt)
	once := Apply(sub, v)
	twice := Apply(sub, once)
	if diff := cmp.Diff(once.String(), twice.String()); diff != "" {
		t.Errorf("substitution not idempotent (-once +twice):\n%s", diff)
	}
}

func TestNullableUnifiesWithOption(t *testing.T) {
	nullable := &Nullable{Base: TInt}
	option := &Generic{Name: "Option", Args: []Type{TInt}}
	if _, err := Unify(nullable, option); err != nil {
		t.Fatalf("Nullable(Int) should unify with Option<Int>: %v", err)
	}
}

func TestComposeMatchesSequentialApplication(t *testing.T) {
	f := NewTypeVarFactory()
	v1, v2 := f.Fresh(), f.Fresh()
	s1 := Substitution{v1.ID: v2}
	s2 := Substitution{v2.ID: TInt}
	composed := Compose(s2, s1)

	direct := Apply(s2, Apply(s1, v1))
	viaCompose := Apply(composed, v1)
	if diff := cmp.Diff(direct.String(), viaCompose.String()); diff != "" {
		t.Errorf("compose mismatch (-direct +composed):\n%s", diff)
	}
}
