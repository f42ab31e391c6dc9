package dtree

import (
	"testing"

	"github.com/taylorlang/taylorc/internal/typedast"
	"github.com/taylorlang/taylorc/internal/types"
)

func lit(v interface{}) typedast.TypedNode {
	return &typedast.TypedLiteral{TypedExpr: typedast.TypedExpr{Type: types.TInt}, Value: v}
}

func TestDecisionTreeSimpleBoolMatch(t *testing.T) {
	cases := []typedast.TypedMatchCase{
		{Pattern: &typedast.TypedLiteralPattern{Value: true}, Body: lit(1)},
		{Pattern: &typedast.TypedLiteralPattern{Value: false}, Body: lit(0)},
	}

	tree := NewDecisionTreeCompiler(cases).Compile()

	switchNode, ok := tree.(*SwitchNode)
	if !ok {
		t.Fatalf("expected SwitchNode, got %T", tree)
	}
	if len(switchNode.Cases) != 2 {
		t.Errorf("expected 2 cases, got %d", len(switchNode.Cases))
	}
	if _, ok := switchNode.Cases[true]; !ok {
		t.Error("missing case for true")
	}
	if _, ok := switchNode.Cases[false]; !ok {
		t.Error("missing case for false")
	}
}

func TestDecisionTreeWithWildcard(t *testing.T) {
	cases := []typedast.TypedMatchCase{
		{Pattern: &typedast.TypedLiteralPattern{Value: true}, Body: lit(1)},
		{Pattern: &typedast.TypedWildcardPattern{}, Body: lit(0)},
	}

	tree := NewDecisionTreeCompiler(cases).Compile()

	switchNode, ok := tree.(*SwitchNode)
	if !ok {
		t.Fatalf("expected SwitchNode, got %T", tree)
	}
	if switchNode.Default == nil {
		t.Error("expected default branch for wildcard")
	}
}

func TestDecisionTreeAllWildcards(t *testing.T) {
	cases := []typedast.TypedMatchCase{
		{Pattern: &typedast.TypedWildcardPattern{}, Body: lit(42)},
	}

	tree := NewDecisionTreeCompiler(cases).Compile()

	leaf, ok := tree.(*LeafNode)
	if !ok {
		t.Fatalf("expected LeafNode for wildcard-only match, got %T", tree)
	}
	if leaf.ArmIndex != 0 {
		t.Errorf("expected arm index 0, got %d", leaf.ArmIndex)
	}
}

func TestDecisionTreeGuardUnwrapped(t *testing.T) {
	cond := &typedast.TypedIdentifier{Name: "ok"}
	cases := []typedast.TypedMatchCase{
		{Pattern: &typedast.TypedGuardPattern{Inner: &typedast.TypedIdentifierPattern{Name: "x"}, Cond: cond}, Body: lit(1)},
	}

	tree := NewDecisionTreeCompiler(cases).Compile()
	leaf, ok := tree.(*LeafNode)
	if !ok {
		t.Fatalf("expected LeafNode, got %T", tree)
	}
	if leaf.Guard != cond {
		t.Error("expected guard condition to be unwrapped onto the leaf")
	}
}

func TestDecisionTreeBindingPathsThroughConstructor(t *testing.T) {
	cases := []typedast.TypedMatchCase{
		{
			Pattern: &typedast.TypedConstructorPattern{
				Name: "Pair",
				Subpatterns: []typedast.TypedPattern{
					&typedast.TypedIdentifierPattern{Name: "x"},
					&typedast.TypedIdentifierPattern{Name: "y"},
				},
			},
			Body: lit(0),
		},
	}

	tree := NewDecisionTreeCompiler(cases).Compile()

	switchNode, ok := tree.(*SwitchNode)
	if !ok {
		t.Fatalf("expected SwitchNode, got %T", tree)
	}
	leaf, ok := switchNode.Cases["Pair"].(*LeafNode)
	if !ok {
		t.Fatalf("expected LeafNode under the Pair case, got %T", switchNode.Cases["Pair"])
	}

	want := map[string][]int{"x": {0}, "y": {1}}
	if len(leaf.Bindings) != len(want) {
		t.Fatalf("expected %d bindings, got %d (%v)", len(want), len(leaf.Bindings), leaf.Bindings)
	}
	for _, b := range leaf.Bindings {
		path, ok := want[b.Name]
		if !ok {
			t.Errorf("unexpected binding %q", b.Name)
			continue
		}
		if len(b.Path) != len(path) || (len(path) > 0 && b.Path[0] != path[0]) {
			t.Errorf("binding %q: expected path %v, got %v", b.Name, path, b.Path)
		}
	}
}

func TestDecisionTreeBindingOnDefaultRow(t *testing.T) {
	cases := []typedast.TypedMatchCase{
		{Pattern: &typedast.TypedLiteralPattern{Value: 1}, Body: lit(1)},
		{Pattern: &typedast.TypedIdentifierPattern{Name: "other"}, Body: lit(0)},
	}

	tree := NewDecisionTreeCompiler(cases).Compile()
	switchNode, ok := tree.(*SwitchNode)
	if !ok {
		t.Fatalf("expected SwitchNode, got %T", tree)
	}
	leaf, ok := switchNode.Default.(*LeafNode)
	if !ok {
		t.Fatalf("expected LeafNode default, got %T", switchNode.Default)
	}
	if len(leaf.Bindings) != 1 || leaf.Bindings[0].Name != "other" || len(leaf.Bindings[0].Path) != 0 {
		t.Errorf("expected binding {other, []}, got %v", leaf.Bindings)
	}
}

func TestCanCompileToTree(t *testing.T) {
	tests := []struct {
		name     string
		cases    []typedast.TypedMatchCase
		expected bool
	}{
		{
			name:     "single arm not worth it",
			cases:    []typedast.TypedMatchCase{{Pattern: &typedast.TypedLiteralPattern{Value: true}}},
			expected: false,
		},
		{
			name: "two wildcards not worth it",
			cases: []typedast.TypedMatchCase{
				{Pattern: &typedast.TypedWildcardPattern{}},
				{Pattern: &typedast.TypedWildcardPattern{}},
			},
			expected: false,
		},
		{
			name: "multiple literals worth it",
			cases: []typedast.TypedMatchCase{
				{Pattern: &typedast.TypedLiteralPattern{Value: true}},
				{Pattern: &typedast.TypedLiteralPattern{Value: false}},
				{Pattern: &typedast.TypedWildcardPattern{}},
			},
			expected: true,
		},
		{
			name: "multiple constructors worth it",
			cases: []typedast.TypedMatchCase{
				{Pattern: &typedast.TypedConstructorPattern{Name: "Some"}},
				{Pattern: &typedast.TypedConstructorPattern{Name: "None"}},
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanCompileToTree(tt.cases); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
