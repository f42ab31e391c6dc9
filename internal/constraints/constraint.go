// Package constraints is the Constraint/ConstraintSet half of the type
// representation named in spec.md §3: the Collector emits these, the
// Solver consumes them.
package constraints

import (
	"fmt"

	"github.com/taylorlang/taylorc/internal/ast"
	"github.com/taylorlang/taylorc/internal/types"
)

// Kind discriminates the three constraint variants (spec.md §3
// "Constraint").
type Kind int

const (
	// Equality requires t1 ≡ t2 after substitution.
	Equality Kind = iota
	// Subtype is used only for Result<_,E>'s error parameter against the
	// Throwable hierarchy (spec.md §4.3, §9 Open Questions).
	Subtype
	// Instance requires v to be an instantiation of Scheme with fresh vars.
	Instance
)

func (k Kind) String() string {
	switch k {
	case Equality:
		return "Equality"
	case Subtype:
		return "Subtype"
	case Instance:
		return "Instance"
	default:
		return "Unknown"
	}
}

// Constraint is one proposition the Solver must satisfy. Exactly one of
// the payload fields is meaningful for a given Kind: Equality/Subtype use
// Left/Right; Instance uses Left (the variable) and Scheme.
type Constraint struct {
	Kind   Kind
	Left   types.Type
	Right  types.Type
	Scheme *types.Scheme
	Pos    ast.Pos
}

func (c Constraint) String() string {
	switch c.Kind {
	case Equality:
		return fmt.Sprintf("%s ≡ %s", c.Left, c.Right)
	case Subtype:
		return fmt.Sprintf("%s <: %s", c.Left, c.Right)
	case Instance:
		return fmt.Sprintf("%s ≼ %s", c.Left, c.Scheme)
	default:
		return "?"
	}
}

// NewEquality builds an Equality constraint (spec.md §3).
func NewEquality(pos ast.Pos, t1, t2 types.Type) Constraint {
	return Constraint{Kind: Equality, Left: t1, Right: t2, Pos: pos}
}

// NewSubtype builds a Subtype constraint.
func NewSubtype(pos ast.Pos, sub, super types.Type) Constraint {
	return Constraint{Kind: Subtype, Left: sub, Right: super, Pos: pos}
}

// NewInstance builds an Instance constraint.
func NewInstance(pos ast.Pos, v types.Type, scheme *types.Scheme) Constraint {
	return Constraint{Kind: Instance, Left: v, Scheme: scheme, Pos: pos}
}

// ConstraintSet is an immutable-in-spirit ordered list of constraints
// (spec.md §3 "ConstraintSet"): Add/Merge return new sets rather than
// mutating in place, matching the Collector's fold-over-AST traversal
// style (spec.md §9).
type ConstraintSet struct {
	items []Constraint
}

func Empty() *ConstraintSet {
	return &ConstraintSet{}
}

func From(cs ...Constraint) *ConstraintSet {
	return &ConstraintSet{items: cs}
}

// Add returns a new set with c appended.
func (s *ConstraintSet) Add(c Constraint) *ConstraintSet {
	out := make([]Constraint, len(s.items), len(s.items)+1)
	copy(out, s.items)
	out = append(out, c)
	return &ConstraintSet{items: out}
}

// Merge returns a new set with other's constraints appended after s's,
// preserving the deterministic traversal order the Collector relies on
// for stable error reporting (spec.md §5 "Ordering guarantees").
func (s *ConstraintSet) Merge(other *ConstraintSet) *ConstraintSet {
	if other == nil || len(other.items) == 0 {
		return s
	}
	out := make([]Constraint, 0, len(s.items)+len(other.items))
	out = append(out, s.items...)
	out = append(out, other.items...)
	return &ConstraintSet{items: out}
}

// Items returns the ordered constraints; callers must not mutate the
// returned slice.
func (s *ConstraintSet) Items() []Constraint {
	return s.items
}

func (s *ConstraintSet) Len() int {
	return len(s.items)
}

// Partition splits the set by predicate, preserving relative order in
// both halves (spec.md §3 "partition").
func (s *ConstraintSet) Partition(pred func(Constraint) bool) (yes, no *ConstraintSet) {
	var y, n []Constraint
	for _, c := range s.items {
		if pred(c) {
			y = append(y, c)
		} else {
			n = append(n, c)
		}
	}
	return &ConstraintSet{items: y}, &ConstraintSet{items: n}
}

// MentionedTypeVars returns every type variable id appearing in any
// constraint, in first-occurrence order.
func (s *ConstraintSet) MentionedTypeVars() []*types.Var {
	seen := make(map[uint64]bool)
	var out []*types.Var
	collect := func(t types.Type) {
		for _, v := range types.FreeVars(t) {
			if !seen[v.ID] {
				seen[v.ID] = true
				out = append(out, v)
			}
		}
	}
	for _, c := range s.items {
		if c.Left != nil {
			collect(c.Left)
		}
		if c.Right != nil {
			collect(c.Right)
		}
		if c.Scheme != nil {
			collect(c.Scheme.Body)
		}
	}
	return out
}
