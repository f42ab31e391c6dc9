package collect

import (
	"fmt"

	"github.com/taylorlang/taylorc/internal/ast"
	"github.com/taylorlang/taylorc/internal/typedast"
	"github.com/taylorlang/taylorc/internal/types"
)

// unionInfo records a declared TypeDecl's shape for constructor-scheme
// registration and later exhaustiveness checking (internal/match).
type unionInfo struct {
	name       string
	typeParams []string
	variants   []string
}

// registry holds every declared union, keyed by type name, plus a
// reverse index from constructor name to the union that owns it.
type registry struct {
	unions       map[string]*unionInfo
	variantOwner map[string]string // constructor name -> union name
}

func newRegistry() *registry {
	return &registry{
		unions:       make(map[string]*unionInfo),
		variantOwner: make(map[string]string),
	}
}

// registerTypeDecl enters every constructor of decl into env with scheme
// ∀α1..αn. (τ1,..,τk) → T<α1,..,αn> (spec.md §4.2).
func (r *registry) registerTypeDecl(e *env, decl *ast.TypeDecl) {
	info := &unionInfo{name: decl.Name, typeParams: decl.TypeParams}
	for _, v := range decl.Variants {
		info.variants = append(info.variants, v.Name)
		r.variantOwner[v.Name] = decl.Name
	}
	r.unions[decl.Name] = info

	for _, variant := range decl.Variants {
		quantified := make([]*types.Var, len(decl.TypeParams))
		paramSub := make(map[string]types.Type, len(decl.TypeParams))
		for i, tp := range decl.TypeParams {
			v := &types.Var{ID: syntheticID(decl.Name, variant.Name, tp), Name: tp, Kind: types.KindStar}
			quantified[i] = v
			paramSub[tp] = v
		}

		fieldTypes := make([]types.Type, len(variant.Fields))
		for i, f := range variant.Fields {
			raw := typeExprToTypeWithParams(f.Type, paramSub)
			fieldTypes[i] = types.NormalizeRecursive(raw, decl.Name, map[string]bool{})
		}

		retArgs := make([]types.Type, len(decl.TypeParams))
		for i, tp := range decl.TypeParams {
			retArgs[i] = paramSub[tp]
		}
		var ret types.Type = &types.Named{Name: decl.Name}
		if len(retArgs) > 0 {
			ret = &types.Generic{Name: decl.Name, Args: retArgs}
		}

		e.bind(variant.Name, &types.Scheme{
			Quantified: quantified,
			Body:       &types.Function{Params: fieldTypes, Ret: ret},
		})
	}
}

// syntheticID derives a stable placeholder id for a union's own type
// parameters, distinct from the monotonic collector-run TypeVarFactory
// ids (those are only minted during elaboration of expressions). This
// keeps registry construction free of factory-ordering dependence.
func syntheticID(parts ...string) uint64 {
	var h uint64 = 1469598103934665603
	for _, p := range parts {
		for _, c := range p {
			h ^= uint64(c)
			h *= 1099511628211
		}
	}
	return h
}

// variantShapes exports the registered unions as typedast.VariantShape
// lists, keyed by union name, for TypedProgram.Variants.
func (r *registry) variantShapes() map[string][]typedast.VariantShape {
	out := make(map[string][]typedast.VariantShape)
	for name, info := range r.unions {
		shapes := make([]typedast.VariantShape, len(info.variants))
		for i, v := range info.variants {
			shapes[i] = typedast.VariantShape{Name: v}
		}
		out[name] = shapes
	}
	return out
}

func (r *registry) unionOf(constructor string) (*unionInfo, bool) {
	name, ok := r.variantOwner[constructor]
	if !ok {
		return nil, false
	}
	info, ok := r.unions[name]
	return info, ok
}

// typeExprToType elaborates a surface TypeExpr with no free type
// parameters in scope (top-level annotations).
func typeExprToType(t ast.TypeExpr) types.Type {
	return typeExprToTypeWithParams(t, nil)
}

func typeExprToTypeWithParams(t ast.TypeExpr, params map[string]types.Type) types.Type {
	if t == nil {
		return nil
	}
	switch e := t.(type) {
	case *ast.PrimitiveTypeExpr:
		return &types.Primitive{Name: e.Name}
	case *ast.NamedTypeExpr:
		if params != nil {
			if v, ok := params[e.Name]; ok {
				return v
			}
		}
		return &types.Named{Name: e.Name}
	case *ast.GenericTypeExpr:
		args := make([]types.Type, len(e.Args))
		for i, a := range e.Args {
			args[i] = typeExprToTypeWithParams(a, params)
		}
		return &types.Generic{Name: e.Name, Args: args}
	case *ast.TupleTypeExpr:
		elems := make([]types.Type, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = typeExprToTypeWithParams(el, params)
		}
		return &types.Tuple{Elems: elems}
	case *ast.NullableTypeExpr:
		return &types.Nullable{Base: typeExprToTypeWithParams(e.Base, params)}
	case *ast.FunctionTypeExpr:
		ps := make([]types.Type, len(e.Params))
		for i, p := range e.Params {
			ps[i] = typeExprToTypeWithParams(p, params)
		}
		return &types.Function{Params: ps, Ret: typeExprToTypeWithParams(e.Return, params)}
	default:
		panic(fmt.Sprintf("collect: unhandled TypeExpr %T", t))
	}
}
