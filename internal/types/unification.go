package types

import "fmt"

// Substitution is a finite mapping from type-variable id to Type
// (spec.md §3 "Substitution"). Composition is (θ2∘θ1)(t) = θ2(θ1(t));
// see Compose.
type Substitution map[uint64]Type

// Apply substitutes recursively through t (spec.md §4.1 "apply").
// apply(θ, Var(v)) = θ(v) if bound, else Var(v) itself.
func Apply(sub Substitution, t Type) Type {
	if len(sub) == 0 {
		return t
	}
	switch t := t.(type) {
	case *Var:
		if bound, ok := sub[t.ID]; ok {
			// Chase chained bindings (θ may map a var to another var).
			if bound.Equals(t) {
				return t
			}
			return Apply(sub, bound)
		}
		return t
	case *Primitive, *Named:
		return t
	case *Generic:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = Apply(sub, a)
		}
		return &Generic{Name: t.Name, Args: args}
	case *Tuple:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = Apply(sub, e)
		}
		return &Tuple{Elems: elems}
	case *Nullable:
		return &Nullable{Base: Apply(sub, t.Base)}
	case *Function:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = Apply(sub, p)
		}
		return &Function{Params: params, Ret: Apply(sub, t.Ret)}
	default:
		return t
	}
}

// FreeVars returns the structural set of free type variables in t.
func FreeVars(t Type) []*Var {
	seen := make(map[uint64]bool)
	var out []*Var
	var walk func(Type)
	walk = func(t Type) {
		switch t := t.(type) {
		case *Var:
			if !seen[t.ID] {
				seen[t.ID] = true
				out = append(out, t)
			}
		case *Generic:
			for _, a := range t.Args {
				walk(a)
			}
		case *Tuple:
			for _, e := range t.Elems {
				walk(e)
			}
		case *Nullable:
			walk(t.Base)
		case *Function:
			for _, p := range t.Params {
				walk(p)
			}
			walk(t.Ret)
		}
	}
	walk(t)
	return out
}

// Compose returns θ such that Apply(θ, t) == Apply(s2, Apply(s1, t)) for
// all t (spec.md §4.1 "compose").
func Compose(s2, s1 Substitution) Substitution {
	out := make(Substitution, len(s1)+len(s2))
	for id, t := range s1 {
		out[id] = Apply(s2, t)
	}
	for id, t := range s2 {
		if _, exists := out[id]; !exists {
			out[id] = t
		}
	}
	return out
}

// UnifyErrorKind classifies why Unify failed.
type UnifyErrorKind string

const (
	OccursCheck        UnifyErrorKind = "OccursCheck"
	MismatchPrimitives UnifyErrorKind = "MismatchPrimitives"
	MismatchShape      UnifyErrorKind = "MismatchShape"
	ArityMismatch      UnifyErrorKind = "ArityMismatch"
)

// UnifyError is returned by Unify on failure; it carries enough
// structure for the Solver to build a wire-format diagnostic (spec.md
// §6 "Type-error wire format").
type UnifyError struct {
	Kind  UnifyErrorKind
	Left  Type
	Right Type
	Msg   string
}

func (e *UnifyError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("cannot unify %s with %s", e.Left, e.Right)
}

// Unify implements Robinson's algorithm per spec.md §4.1: it returns a
// substitution that, when applied to both t1 and t2, makes them
// structurally equal, or a *UnifyError.
//
// Nullable(b) is treated as Generic("Option",[b]) for unification
// purposes only (spec.md §3); the surface Nullable node is never lost
// because it lives on the AST/typedast, not on the unified Type itself
// once both operands agree it is an Option.
func Unify(t1, t2 Type) (Substitution, error) {
	t1 = CanonicalizeNullable(t1)
	t2 = CanonicalizeNullable(t2)

	if a, ok := t1.(*Var); ok {
		return unifyVar(a, t2)
	}
	if b, ok := t2.(*Var); ok {
		return unifyVar(b, t1)
	}

	switch a := t1.(type) {
	case *Primitive:
		b, ok := t2.(*Primitive)
		if !ok {
			return nil, &UnifyError{Kind: MismatchShape, Left: t1, Right: t2}
		}
		if a.Name != b.Name {
			return nil, &UnifyError{Kind: MismatchPrimitives, Left: t1, Right: t2}
		}
		return Substitution{}, nil

	case *Named:
		b, ok := t2.(*Named)
		if !ok || a.Name != b.Name {
			return nil, &UnifyError{Kind: MismatchShape, Left: t1, Right: t2}
		}
		return Substitution{}, nil

	case *Generic:
		b, ok := t2.(*Generic)
		if !ok {
			return nil, &UnifyError{Kind: MismatchShape, Left: t1, Right: t2}
		}
		if a.Name != b.Name || len(a.Args) != len(b.Args) {
			return nil, &UnifyError{Kind: ArityMismatch, Left: t1, Right: t2,
				Msg: fmt.Sprintf("cannot unify %s with %s: name/arity mismatch", a, b)}
		}
		sub := Substitution{}
		for i := range a.Args {
			s, err := Unify(Apply(sub, a.Args[i]), Apply(sub, b.Args[i]))
			if err != nil {
				return nil, err
			}
			sub = Compose(s, sub)
		}
		return sub, nil

	case *Tuple:
		b, ok := t2.(*Tuple)
		if !ok {
			return nil, &UnifyError{Kind: MismatchShape, Left: t1, Right: t2}
		}
		if len(a.Elems) != len(b.Elems) {
			return nil, &UnifyError{Kind: ArityMismatch, Left: t1, Right: t2}
		}
		sub := Substitution{}
		for i := range a.Elems {
			s, err := Unify(Apply(sub, a.Elems[i]), Apply(sub, b.Elems[i]))
			if err != nil {
				return nil, err
			}
			sub = Compose(s, sub)
		}
		return sub, nil

	case *Function:
		b, ok := t2.(*Function)
		if !ok {
			return nil, &UnifyError{Kind: MismatchShape, Left: t1, Right: t2}
		}
		if len(a.Params) != len(b.Params) {
			return nil, &UnifyError{Kind: ArityMismatch, Left: t1, Right: t2,
				Msg: fmt.Sprintf("function arity mismatch: %d vs %d", len(a.Params), len(b.Params))}
		}
		sub := Substitution{}
		for i := range a.Params {
			s, err := Unify(Apply(sub, a.Params[i]), Apply(sub, b.Params[i]))
			if err != nil {
				return nil, err
			}
			sub = Compose(s, sub)
		}
		s, err := Unify(Apply(sub, a.Ret), Apply(sub, b.Ret))
		if err != nil {
			return nil, err
		}
		return Compose(s, sub), nil

	default:
		return nil, &UnifyError{Kind: MismatchShape, Left: t1, Right: t2,
			Msg: fmt.Sprintf("unhandled type in unification: %T", t1)}
	}
}

func unifyVar(v *Var, t Type) (Substitution, error) {
	if other, ok := t.(*Var); ok && other.ID == v.ID {
		return Substitution{}, nil
	}
	if occurs(v, t) {
		return nil, &UnifyError{Kind: OccursCheck, Left: v, Right: t,
			Msg: fmt.Sprintf("infinite type: %s occurs in %s", v, t)}
	}
	return Substitution{v.ID: t}, nil
}

// occurs is the guard preventing a variable from being unified with a
// type that structurally contains it (spec.md §4.1, GLOSSARY).
func occurs(v *Var, t Type) bool {
	for _, fv := range FreeVars(t) {
		if fv.ID == v.ID {
			return true
		}
	}
	return false
}
