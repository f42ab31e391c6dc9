package types

import (
	"fmt"
	"strings"
)

// Scheme is a pair (∀quantifiedVars. body) representing a polymorphic
// type (spec.md §3 "TypeScheme"). Monomorphic types have an empty
// quantifier set.
type Scheme struct {
	Quantified []*Var
	Body       Type
}

func (s *Scheme) String() string {
	if len(s.Quantified) == 0 {
		return s.Body.String()
	}
	names := make([]string, len(s.Quantified))
	for i, v := range s.Quantified {
		names[i] = v.String()
	}
	return fmt.Sprintf("∀%s. %s", strings.Join(names, " "), s.Body)
}

// Mono wraps a monomorphic type as a scheme with an empty quantifier set.
func Mono(t Type) *Scheme {
	return &Scheme{Body: t}
}

// Instantiate replaces every quantified variable with a fresh Var,
// producing a new, unconstrained instance of the scheme (spec.md §4.1
// "instantiate").
func Instantiate(f *TypeVarFactory, s *Scheme) Type {
	if len(s.Quantified) == 0 {
		return s.Body
	}
	sub := make(Substitution, len(s.Quantified))
	for _, v := range s.Quantified {
		sub[v.ID] = f.Fresh()
	}
	return Apply(sub, s.Body)
}

// Generalize quantifies over the free variables of t that are not free
// in env (spec.md §4.1 "generalize"), producing a TypeScheme suitable for
// let-polymorphism.
func Generalize(envFree map[uint64]bool, t Type) *Scheme {
	free := FreeVars(t)
	var quantified []*Var
	seen := make(map[uint64]bool)
	for _, v := range free {
		if envFree[v.ID] || seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		quantified = append(quantified, v)
	}
	return &Scheme{Quantified: quantified, Body: t}
}

// EnvFreeVars computes the set of free variable ids across every scheme
// bound in an environment snapshot, for use as the `env` argument to
// Generalize.
func EnvFreeVars(schemes map[string]*Scheme) map[uint64]bool {
	out := make(map[uint64]bool)
	for _, s := range schemes {
		bound := make(map[uint64]bool, len(s.Quantified))
		for _, q := range s.Quantified {
			bound[q.ID] = true
		}
		for _, v := range FreeVars(s.Body) {
			if !bound[v.ID] {
				out[v.ID] = true
			}
		}
	}
	return out
}
