// Package pipeline wires the Collector, Solver and post-pass together
// into the single entry point a driver (cmd/typecheck, or eventually a
// full compiler front end) calls per compilation unit.
package pipeline

import (
	"github.com/taylorlang/taylorc/internal/ast"
	"github.com/taylorlang/taylorc/internal/collect"
	"github.com/taylorlang/taylorc/internal/diagnostics"
	"github.com/taylorlang/taylorc/internal/solve"
	"github.com/taylorlang/taylorc/internal/typedast"
	"github.com/taylorlang/taylorc/internal/types"
)

// Source is one compilation unit's input: an already-built AST plus the
// file name used to prefix diagnostics when Program.Pos carries none.
type Source struct {
	Program *ast.Program
	Name    string
}

// Result is everything downstream consumers (a bytecode lowerer, a
// collaborator tool, a test) need out of one run: the fully-solved typed
// program plus any diagnostics gathered along the way, in encounter
// order (spec.md §7 "accumulated, not thrown").
type Result struct {
	Program     *typedast.TypedProgram
	Diagnostics []diagnostics.Diagnostic
}

// Ok reports whether the run produced zero diagnostics.
func (r Result) Ok() bool {
	return len(r.Diagnostics) == 0
}

// Run executes Collect -> Solve -> PostPass against src, using factory as
// the shared fresh-variable source for the unit (spec.md §5). Callers
// that need several units to share type variables (e.g. separate
// compilation against declared interfaces) pass the same factory across
// calls; independent units should each get their own.
func Run(factory *types.TypeVarFactory, src Source) Result {
	collected := collect.Collect(factory, src.Program)

	solved := solve.Solve(factory, collected.Constraints)
	allErrors := append(types.ErrorList{}, collected.Errors...)
	allErrors = append(allErrors, solved.Errors...)

	if len(allErrors) == 0 {
		allErrors = append(allErrors, solve.PostPass(solved.Substitution, collected.Program)...)
	}

	diags := diagnostics.FromCheckErrors(allErrors)
	if src.Name != "" && src.Program.Pos.File == "" {
		for i := range diags {
			diags[i].Location = src.Name + ":" + diags[i].Location
		}
	}
	return Result{
		Program:     collected.Program,
		Diagnostics: diags,
	}
}
