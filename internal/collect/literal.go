package collect

import (
	"github.com/taylorlang/taylorc/internal/ast"
	"github.com/taylorlang/taylorc/internal/types"
)

// scalarLiteralType maps an ast.Literal's scalar Kind to its ground type
// (spec.md §4.2 table). Container literals (List/Map/Tuple) are typed by
// the caller from their elaborated elements.
func scalarLiteralType(kind ast.LiteralKind) types.Type {
	switch kind {
	case ast.IntLit:
		return types.TInt
	case ast.FloatLit:
		return types.TDouble
	case ast.StringLit:
		return types.TString
	case ast.BoolLit:
		return types.TBoolean
	case ast.NullLit:
		return types.TUnit
	default:
		return types.TUnit
	}
}
