// Package solve implements the Constraint Solver (spec.md §4.3): it
// consumes a constraints.ConstraintSet and produces a principal
// types.Substitution, or an ordered types.ErrorList.
package solve

import (
	"fmt"

	"github.com/taylorlang/taylorc/internal/constraints"
	"github.com/taylorlang/taylorc/internal/types"
)

// Solver holds the running substitution and the factory used to
// instantiate Instance constraints into fresh Equality constraints.
type Solver struct {
	factory *types.TypeVarFactory
	sub     types.Substitution
	errs    types.ErrorList
}

func New(factory *types.TypeVarFactory) *Solver {
	return &Solver{factory: factory, sub: types.Substitution{}}
}

// Result is the outcome of Solve: a substitution (possibly partial if
// errs is non-empty) and the accumulated errors in encounter order.
type Result struct {
	Substitution types.Substitution
	Errors       types.ErrorList
}

// Solve processes cs in order per spec.md §4.3's algorithm. On a
// UnifyError it records a CheckError and continues against the partial
// substitution, per spec.md §7's "accumulated, not thrown" policy.
func Solve(factory *types.TypeVarFactory, cs *constraints.ConstraintSet) Result {
	s := New(factory)
	s.run(cs.Items())
	return Result{Substitution: s.sub, Errors: s.errs}
}

func (s *Solver) run(items []constraints.Constraint) {
	// A work queue, since Instance constraints re-enqueue an Equality
	// constraint (spec.md §4.3 "replace ... and re-enqueue").
	queue := make([]constraints.Constraint, len(items))
	copy(queue, items)

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		switch c.Kind {
		case constraints.Equality:
			s.solveEquality(c)

		case constraints.Instance:
			inst := types.Instantiate(s.factory, c.Scheme)
			queue = append([]constraints.Constraint{constraints.NewEquality(c.Pos, c.Left, inst)}, queue...)

		case constraints.Subtype:
			s.solveSubtype(c)
		}
	}
}

func (s *Solver) solveEquality(c constraints.Constraint) {
	t1 := types.Apply(s.sub, c.Left)
	t2 := types.Apply(s.sub, c.Right)
	delta, err := types.Unify(t1, t2)
	if err != nil {
		ue, _ := err.(*types.UnifyError)
		s.errs = append(s.errs, types.FromUnifyError(posString(c.Pos), ue))
		return
	}
	s.sub = types.Compose(delta, s.sub)
}

func (s *Solver) solveSubtype(c constraints.Constraint) {
	left := types.Apply(s.sub, c.Left)
	right := types.Apply(s.sub, c.Right)

	leftNamed, leftGround := left.(*types.Named)
	rightNamed, rightGround := right.(*types.Named)

	if leftGround && rightGround {
		if !isSubtypeOf(leftNamed.Name, rightNamed.Name) {
			s.errs = append(s.errs, &types.CheckError{
				Kind:    types.KindMismatch,
				Pos:     posString(c.Pos),
				Message: fmt.Sprintf("%s is not a subtype of %s", leftNamed.Name, rightNamed.Name),
			})
		}
		return
	}

	// a is a variable and b is ground: default a to b (spec.md §4.3
	// "defaulting choice"), recording nothing further to recheck since
	// Throwable subtyping never narrows beyond this single resolution.
	if _, isVar := left.(*types.Var); isVar && rightGround {
		s.solveEquality(constraints.NewEquality(c.Pos, left, right))
	}
}

func posString(p fmt.Stringer) string {
	return p.String()
}
