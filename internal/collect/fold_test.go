package collect

import (
	"reflect"
	"sort"
	"testing"

	"github.com/taylorlang/taylorc/internal/ast"
)

func TestCollectIdentifiersWalksEveryChild(t *testing.T) {
	// if x then f(y) else match z { _ => w }
	e := &ast.IfExpression{
		Cond: &ast.Identifier{Name: "x"},
		Then: &ast.FunctionCall{
			Callee: &ast.Identifier{Name: "f"},
			Args:   []ast.Expression{&ast.Identifier{Name: "y"}},
		},
		Else: &ast.MatchExpression{
			Target: &ast.Identifier{Name: "z"},
			Cases: []*ast.MatchCase{
				{Pattern: &ast.WildcardPattern{}, Body: &ast.Identifier{Name: "w"}},
			},
		},
	}

	got := CollectIdentifiers(e)
	var names []string
	for n := range got {
		names = append(names, n)
	}
	sort.Strings(names)

	want := []string{"f", "w", "x", "y", "z"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("got %v, want %v", names, want)
	}
}

func TestComplexityScoreCountsBranchingNodes(t *testing.T) {
	e := &ast.TryExpression{
		Expr: &ast.IfExpression{
			Cond: &ast.Identifier{Name: "ok"},
			Then: &ast.Identifier{Name: "a"},
			Else: &ast.Identifier{Name: "b"},
		},
		Catches: []*ast.CatchClause{
			{ExceptionType: "IOException", Binding: "e", Body: &ast.Identifier{Name: "e"}},
		},
	}

	if got := ComplexityScore(e); got != 2 {
		t.Fatalf("expected score 2 (try + if), got %d", got)
	}
}

func TestUnusedBindingsReportsUnreferencedParams(t *testing.T) {
	params := []*ast.Param{{Name: "used"}, {Name: "dead"}}
	body := &ast.Identifier{Name: "used"}

	got := UnusedBindings(params, body)
	want := []string{"dead"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
