// Package types is the data model and algebra for TaylorLang's type
// representation: the closed Type sum, type variables, polymorphic
// schemes, and substitution. Every type comparison anywhere in the core
// goes through this package (spec.md §4.1 "Centralisation rule") — no
// other package may perform structural type equality itself.
package types

import (
	"fmt"
	"strings"
)

// Type is a closed sum over the variants named in spec.md §3.
type Type interface {
	fmt.Stringer
	Equals(Type) bool
	typeNode()
}

// Primitive is one of the fixed built-in scalar types.
type Primitive struct {
	Name string // Int, Long, Float, Double, Boolean, String, Unit, Char
}

func (p *Primitive) typeNode()      {}
func (p *Primitive) String() string { return p.Name }
func (p *Primitive) Equals(other Type) bool {
	o, ok := other.(*Primitive)
	return ok && o.Name == p.Name
}

// Named refers to a user-declared union or product type with no type
// arguments.
type Named struct {
	Name string
}

func (n *Named) typeNode()      {}
func (n *Named) String() string { return n.Name }
func (n *Named) Equals(other Type) bool {
	o, ok := other.(*Named)
	return ok && o.Name == n.Name
}

// Generic is a parameterised application of a declared type, e.g.
// Result<Int, IOException>.
type Generic struct {
	Name string
	Args []Type
}

func (g *Generic) typeNode() {}
func (g *Generic) String() string {
	args := make([]string, len(g.Args))
	for i, a := range g.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", g.Name, strings.Join(args, ", "))
}
func (g *Generic) Equals(other Type) bool {
	o, ok := other.(*Generic)
	if !ok || o.Name != g.Name || len(o.Args) != len(g.Args) {
		return false
	}
	for i := range g.Args {
		if !g.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

// Tuple is a fixed-arity product of heterogeneous element types.
type Tuple struct {
	Elems []Type
}

func (t *Tuple) typeNode() {}
func (t *Tuple) String() string {
	elems := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(elems, ", "))
}
func (t *Tuple) Equals(other Type) bool {
	o, ok := other.(*Tuple)
	if !ok || len(o.Elems) != len(t.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equals(o.Elems[i]) {
			return false
		}
	}
	return true
}

// Nullable is equivalent to Generic("Option",[Base]) for unification
// purposes but is preserved as its own node so codegen can special-case
// the boxed representation (spec.md §3, §9 Open Questions). Use
// CanonicalizeNullable to obtain the Option-shaped view for unification.
type Nullable struct {
	Base Type
}

func (n *Nullable) typeNode()      {}
func (n *Nullable) String() string { return fmt.Sprintf("%s?", n.Base) }
func (n *Nullable) Equals(other Type) bool {
	switch o := other.(type) {
	case *Nullable:
		return n.Base.Equals(o.Base)
	case *Generic:
		return CanonicalizeNullable(n).Equals(o)
	default:
		return false
	}
}

// CanonicalizeNullable rewrites a Nullable into its Option-generic
// canonical form; all other types pass through unchanged. Unify and
// Nullable.Equals call it on their operands; the Collector keeps Nullable
// nodes as it builds them (spec.md §9 Open Questions).
func CanonicalizeNullable(t Type) Type {
	if n, ok := t.(*Nullable); ok {
		return &Generic{Name: "Option", Args: []Type{n.Base}}
	}
	return t
}

// Function is a function type; spec.md's core has no currying, so a
// Function always carries its full parameter list.
type Function struct {
	Params []Type
	Ret    Type
}

func (f *Function) typeNode() {}
func (f *Function) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), f.Ret)
}
func (f *Function) Equals(other Type) bool {
	o, ok := other.(*Function)
	if !ok || len(o.Params) != len(f.Params) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Equals(o.Params[i]) {
			return false
		}
	}
	return f.Ret.Equals(o.Ret)
}

// Kind is always ★ in this core (spec.md §1 Non-goals: no higher-kinded
// types). It is carried on Var for forward-compatible symmetry with the
// rest of the pack's kinded type systems, not because this core checks
// anything beyond ★.
type Kind string

const KindStar Kind = "★"

// Var is the only source of type-inference unknowns. Equality is by id;
// Vars are created exclusively by a TypeVarFactory (var.go) and never
// resurrected after the Solver completes (spec.md §3 Lifecycles).
type Var struct {
	ID   uint64
	Name string // optional debug name
	Kind Kind
}

func (v *Var) typeNode() {}
func (v *Var) String() string {
	if v.Name != "" {
		return v.Name
	}
	return fmt.Sprintf("t%d", v.ID)
}
func (v *Var) Equals(other Type) bool {
	o, ok := other.(*Var)
	return ok && o.ID == v.ID
}

// Common predefined primitives.
var (
	TInt     = &Primitive{Name: "Int"}
	TLong    = &Primitive{Name: "Long"}
	TFloat   = &Primitive{Name: "Float"}
	TDouble  = &Primitive{Name: "Double"}
	TBoolean = &Primitive{Name: "Boolean"}
	TString  = &Primitive{Name: "String"}
	TUnit    = &Primitive{Name: "Unit"}
	TChar    = &Primitive{Name: "Char"}
)

// IsNumeric reports whether t is one of the arithmetic primitives.
func IsNumeric(t Type) bool {
	p, ok := t.(*Primitive)
	if !ok {
		return false
	}
	switch p.Name {
	case "Int", "Long", "Float", "Double":
		return true
	default:
		return false
	}
}

// IsFloating reports whether t is Float or Double.
func IsFloating(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && (p.Name == "Float" || p.Name == "Double")
}
