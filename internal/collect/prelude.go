package collect

import "github.com/taylorlang/taylorc/internal/types"

// preludeEnv seeds Γ with the built-ins spec.md §4.2 names explicitly:
// "arithmetic and comparison operators (monomorphic overloads, see
// below), println : ∀α. α → Unit". Arithmetic/comparison operators
// are handled structurally in the BinaryOp elaboration rule and are not
// entered in this table, so they cannot be referenced by name (e.g. as
// an argument to a higher-order function).
func preludeEnv(factory *types.TypeVarFactory) *env {
	e := newEnv()

	alpha := factory.Fresh()
	e.bind("println", &types.Scheme{
		Quantified: []*types.Var{alpha},
		Body:       &types.Function{Params: []types.Type{alpha}, Ret: types.TUnit},
	})

	beta := factory.Fresh()
	e.bind("print", &types.Scheme{
		Quantified: []*types.Var{beta},
		Body:       &types.Function{Params: []types.Type{beta}, Ret: types.TUnit},
	})

	e.bind("Ok", optionLikeCtor(factory, "Result", 2, 0))
	e.bind("Error", optionLikeCtor(factory, "Result", 2, 1))
	e.bind("Some", optionLikeCtor(factory, "Option", 1, 0))

	noneVar := factory.Fresh()
	e.bind("None", &types.Scheme{
		Quantified: []*types.Var{noneVar},
		Body:       &types.Function{Ret: &types.Generic{Name: "Option", Args: []types.Type{noneVar}}},
	})

	return e
}

// optionLikeCtor builds a polymorphic constructor scheme for a built-in
// generic union (Result/Option) whose argIndex-th type parameter is the
// one this constructor's single field carries (Ok carries T of
// Result<T,E>, Error carries E). Used only to seed the prelude; declared
// TypeDecls register their own constructors in the union registry.
func optionLikeCtor(factory *types.TypeVarFactory, name string, arity, argIndex int) *types.Scheme {
	params := make([]*types.Var, arity)
	args := make([]types.Type, arity)
	for i := range params {
		params[i] = factory.Fresh()
		args[i] = params[i]
	}
	return &types.Scheme{
		Quantified: params,
		Body: &types.Function{
			Params: []types.Type{params[argIndex]},
			Ret:    &types.Generic{Name: name, Args: args},
		},
	}
}
