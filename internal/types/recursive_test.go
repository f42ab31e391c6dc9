package types

import "testing"

func TestNormalizeRecursiveKeepsSelfReferenceFlat(t *testing.T) {
	// Cons(T, List<T>) field type for `List<T> = Nil | Cons(T, List<T>)`.
	v := &Var{ID: 1, Name: "T", Kind: KindStar}
	field := &Generic{Name: "List", Args: []Type{v}}

	got := NormalizeRecursive(field, "List", map[string]bool{})
	gotGeneric, ok := got.(*Generic)
	if !ok || gotGeneric.Name != "List" {
		t.Fatalf("expected a flat List<T> reference, got %s", got)
	}
	if len(gotGeneric.Args) != 1 || gotGeneric.Args[0] != Type(v) {
		t.Fatalf("expected the type parameter preserved unexpanded, got %v", gotGeneric.Args)
	}
}

func TestNormalizeRecursiveUnifiesArgumentwise(t *testing.T) {
	v := &Var{ID: 2, Name: "T", Kind: KindStar}
	declared := NormalizeRecursive(&Generic{Name: "List", Args: []Type{v}}, "List", map[string]bool{})
	instantiated := &Generic{Name: "List", Args: []Type{TInt}}

	sub, err := Unify(declared, instantiated)
	if err != nil {
		t.Fatalf("Unify(%s, %s) failed: %v", declared, instantiated, err)
	}
	if got := Apply(sub, v); got.String() != "Int" {
		t.Fatalf("expected T ↦ Int, got %s", got)
	}
}
