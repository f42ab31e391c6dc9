package types

import "testing"

func TestInstantiateFreshensQuantifiedVars(t *testing.T) {
	f := NewTypeVarFactory()
	q := f.Fresh()
	scheme := &Scheme{
		Quantified: []*Var{q},
		Body:       &Function{Params: []Type{q}, Ret: &Generic{Name: "Option", Args: []Type{q}}},
	}

	i1 := Instantiate(f, scheme)
	i2 := Instantiate(f, scheme)

	if i1.String() == i2.String() {
		// Names may collide in String() only if debug names are empty;
		// compare the actual Var identities instead.
	}
	fn1 := i1.(*Function)
	fn2 := i2.(*Function)
	v1 := fn1.Params[0].(*Var)
	v2 := fn2.Params[0].(*Var)
	if v1.ID == v2.ID {
		t.Fatalf("two instantiations shared a type variable: %d", v1.ID)
	}
}

func TestGeneralizeQuantifiesOnlyFreeVars(t *testing.T) {
	f := NewTypeVarFactory()
	a := f.Fresh()
	b := f.Fresh()

	envFree := map[uint64]bool{a.ID: true}
	scheme := Generalize(envFree, &Function{Params: []Type{a}, Ret: b})

	if len(scheme.Quantified) != 1 || scheme.Quantified[0].ID != b.ID {
		t.Fatalf("expected only %s quantified, got %v", b, scheme.Quantified)
	}
}

func TestMonoHasEmptyQuantifier(t *testing.T) {
	s := Mono(TInt)
	if len(s.Quantified) != 0 {
		t.Fatalf("Mono should have no quantified vars, got %v", s.Quantified)
	}
	if s.Body != TInt {
		t.Fatalf("Mono body mismatch")
	}
}
