package types

// NormalizeRecursive rebuilds t, refusing to unfold any self-reference
// back to declName beyond the first time it's seen. A recursive variant
// field like `Cons(T, List<T>)` must keep its own self-reference as a
// single Generic node; re-expanding it — substituting List's own
// variants into the List<T> it already contains — would recurse
// forever. Once a Generic named declName has been visited once, its own
// argument list is copied through unnormalized rather than re-entered.
func NormalizeRecursive(t Type, declName string, seen map[string]bool) Type {
	switch tt := t.(type) {
	case *Generic:
		if tt.Name == declName && seen[declName] {
			return tt
		}
		next := seen
		if tt.Name == declName {
			next = cloneSeen(seen)
			next[declName] = true
		}
		args := make([]Type, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = NormalizeRecursive(a, declName, next)
		}
		return &Generic{Name: tt.Name, Args: args}
	case *Tuple:
		elems := make([]Type, len(tt.Elems))
		for i, e := range tt.Elems {
			elems[i] = NormalizeRecursive(e, declName, seen)
		}
		return &Tuple{Elems: elems}
	case *Function:
		params := make([]Type, len(tt.Params))
		for i, p := range tt.Params {
			params[i] = NormalizeRecursive(p, declName, seen)
		}
		return &Function{Params: params, Ret: NormalizeRecursive(tt.Ret, declName, seen)}
	case *Nullable:
		return &Nullable{Base: NormalizeRecursive(tt.Base, declName, seen)}
	default:
		return t
	}
}

func cloneSeen(seen map[string]bool) map[string]bool {
	out := make(map[string]bool, len(seen)+1)
	for k, v := range seen {
		out[k] = v
	}
	return out
}
