package collect

import "github.com/taylorlang/taylorc/internal/types"

// env is a lexically-scoped Γ : Name → Scheme (spec.md §4.2). Child
// scopes are created per lambda/match-case/try-catch binding and chain
// to their parent rather than copying, matching the teacher's
// environment-as-persistent-chain style.
type env struct {
	parent *env
	vars   map[string]*types.Scheme
}

func newEnv() *env {
	return &env{vars: make(map[string]*types.Scheme)}
}

func (e *env) child() *env {
	return &env{parent: e, vars: make(map[string]*types.Scheme)}
}

func (e *env) bind(name string, s *types.Scheme) {
	e.vars[name] = s
}

func (e *env) lookup(name string) (*types.Scheme, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if s, ok := cur.vars[name]; ok {
			return s, true
		}
	}
	return nil, false
}

// freeVars computes the free type variables across every binding visible
// from e, used as the `env` argument to types.Generalize.
func (e *env) freeVars() map[uint64]bool {
	out := make(map[uint64]bool)
	for cur := e; cur != nil; cur = cur.parent {
		for _, s := range cur.vars {
			bound := make(map[uint64]bool, len(s.Quantified))
			for _, q := range s.Quantified {
				bound[q.ID] = true
			}
			for _, v := range types.FreeVars(s.Body) {
				if !bound[v.ID] {
					out[v.ID] = true
				}
			}
		}
	}
	return out
}
