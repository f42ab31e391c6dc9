package match

import (
	"testing"

	"github.com/taylorlang/taylorc/internal/classfile"
	"github.com/taylorlang/taylorc/internal/typedast"
	"github.com/taylorlang/taylorc/internal/types"
)

func opsOf(instrs []classfile.Instruction) []classfile.Op {
	ops := make([]classfile.Op, len(instrs))
	for i, ins := range instrs {
		ops[i] = ins.Op
	}
	return ops
}

func contains(ops []classfile.Op, want classfile.Op) bool {
	for _, op := range ops {
		if op == want {
			return true
		}
	}
	return false
}

// TestS2ArithmeticOnBoundIntegersUsesIAdd realizes spec.md §8 S2: a
// Pair<Int,Int>'s fields loaded and added with iadd/iload, never dadd.
func TestS2ArithmeticOnBoundIntegersUsesIAdd(t *testing.T) {
	pairType := &types.Generic{Name: "Pair", Args: []types.Type{types.TInt, types.TInt}}
	scrutinee := &typedast.TypedIdentifier{TypedExpr: typedast.TypedExpr{Type: pairType}, Name: "p"}

	m := &typedast.TypedMatch{
		TypedExpr: typedast.TypedExpr{Type: types.TInt},
		Scrutinee: scrutinee,
		Cases: []typedast.TypedMatchCase{
			{
				Pattern: &typedast.TypedConstructorPattern{
					Name: "Pair",
					Subpatterns: []typedast.TypedPattern{
						&typedast.TypedIdentifierPattern{Name: "x", Type: types.TInt},
						&typedast.TypedIdentifierPattern{Name: "y", Type: types.TInt},
					},
				},
				Body: &typedast.TypedBinaryOp{
					TypedExpr: typedast.TypedExpr{Type: types.TInt},
					Op:        "+",
					Left:      &typedast.TypedIdentifier{TypedExpr: typedast.TypedExpr{Type: types.TInt}, Name: "x"},
					Right:     &typedast.TypedIdentifier{TypedExpr: typedast.TypedExpr{Type: types.TInt}, Name: "y"},
				},
			},
		},
		Exhaustive: true,
	}

	e := classfile.NewMethodEmitter(classfile.NewSlotMap())
	e.Slots.Alloc("p", pairType)
	if err := LowerMatch(e, m); err != nil {
		t.Fatalf("LowerMatch: %v", err)
	}
	resolved, err := e.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	ops := opsOf(resolved)
	if !contains(ops, classfile.OpIAdd) {
		t.Errorf("expected iadd in %v", ops)
	}
	if contains(ops, classfile.OpDAdd) {
		t.Errorf("did not expect dadd in %v", ops)
	}
	if !contains(ops, classfile.OpILoad) {
		t.Errorf("expected iload in %v", ops)
	}

	// The generic boundary rule (spec.md §4.4): a Pair<Int,Int> field
	// accessor returns Object, so the checkcast-to-wrapper and unbox call
	// must appear before either field is stored into its int local.
	foundCast, foundUnbox := false, false
	for _, ins := range resolved {
		if ins.Op == classfile.OpCheckCast && ins.Literal == "java/lang/Integer" {
			foundCast = true
		}
		if ins.Op == classfile.OpInvokeVirtual && ins.Literal == "intValue" {
			foundUnbox = true
		}
	}
	if !foundCast {
		t.Errorf("expected a checkcast to java/lang/Integer in %v", resolved)
	}
	if !foundUnbox {
		t.Errorf("expected an intValue unbox call in %v", resolved)
	}
}

// TestS5WildcardOnDoubleUsesPop2 realizes spec.md §8 S5: a bare wildcard
// over a Double scrutinee loads it back and discards it with pop2, not
// pop, then branches to its success label.
func TestS5WildcardOnDoubleUsesPop2(t *testing.T) {
	scrutinee := &typedast.TypedIdentifier{TypedExpr: typedast.TypedExpr{Type: types.TDouble}, Name: "d"}

	m := &typedast.TypedMatch{
		TypedExpr: typedast.TypedExpr{Type: types.TInt},
		Scrutinee: scrutinee,
		Cases: []typedast.TypedMatchCase{
			{
				Pattern: &typedast.TypedWildcardPattern{Type: types.TDouble},
				Body:    &typedast.TypedLiteral{TypedExpr: typedast.TypedExpr{Type: types.TInt}, Value: 0},
			},
		},
		Exhaustive: true,
	}

	e := classfile.NewMethodEmitter(classfile.NewSlotMap())
	e.Slots.Alloc("d", types.TDouble)
	if err := LowerMatch(e, m); err != nil {
		t.Fatalf("LowerMatch: %v", err)
	}
	resolved, err := e.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	ops := opsOf(resolved)
	popIdx := -1
	for i, op := range ops {
		if op == classfile.OpPop2 {
			popIdx = i
		}
	}
	if popIdx == -1 {
		t.Fatalf("expected pop2 in %v", ops)
	}
	if ops[popIdx-1] != classfile.OpDLoad {
		t.Errorf("expected dload immediately before pop2, got %v before pop2 in %v", ops[popIdx-1], ops)
	}
	if popIdx+1 >= len(ops) || ops[popIdx+1] != classfile.OpGoto {
		t.Errorf("expected goto immediately after pop2 in %v", ops)
	}
	if contains(ops, classfile.OpPop) {
		t.Errorf("did not expect a width-1 pop in %v", ops)
	}
}

// TestS6NonExhaustiveMatchCitesNil realizes spec.md §8 S6: matching only
// Cons on a List<Int> leaves Nil uncovered.
func TestS6NonExhaustiveMatchCitesNil(t *testing.T) {
	listInt := &types.Generic{Name: "List", Args: []types.Type{types.TInt}}
	scrutinee := &typedast.TypedIdentifier{TypedExpr: typedast.TypedExpr{Type: listInt}, Name: "x"}

	m := &typedast.TypedMatch{
		TypedExpr: typedast.TypedExpr{Type: types.TInt},
		Scrutinee: scrutinee,
		Cases: []typedast.TypedMatchCase{
			{
				Pattern: &typedast.TypedConstructorPattern{
					Name: "Cons",
					Subpatterns: []typedast.TypedPattern{
						&typedast.TypedIdentifierPattern{Name: "h", Type: types.TInt},
						&typedast.TypedWildcardPattern{Type: listInt},
					},
				},
				Body: &typedast.TypedIdentifier{TypedExpr: typedast.TypedExpr{Type: types.TInt}, Name: "h"},
			},
		},
	}

	prog := &typedast.TypedProgram{
		Statements: []typedast.TypedStatement{
			&typedast.TypedExprStatement{Expr: m},
		},
		Variants: map[string][]typedast.VariantShape{
			"List": {{Name: "Nil"}, {Name: "Cons"}},
		},
	}

	errs := CheckExhaustiveness(prog)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(errs), errs)
	}
	if got := errs[0].Error(); !contains_(got, "Nil") {
		t.Errorf("expected error to cite Nil, got %q", got)
	}
	if m.Exhaustive {
		t.Error("expected Exhaustive to be false")
	}
}

// TestS4TryEmitsExceptionTableEntry realizes spec.md §8 S4: the guarded
// expression's range is registered as a catch range, and the catch body
// lowers to a construction followed by a return.
func TestS4TryEmitsExceptionTableEntry(t *testing.T) {
	resultType := &types.Generic{Name: "Result", Args: []types.Type{types.TString, &types.Named{Name: "IOException"}}}
	call := &typedast.TypedFunctionCall{
		TypedExpr: typedast.TypedExpr{Type: types.TString},
		Callee:    &typedast.TypedIdentifier{TypedExpr: typedast.TypedExpr{Type: types.TString}, Name: "readFile"},
	}

	errCall := &typedast.TypedConstructorCall{
		TypedExpr: typedast.TypedExpr{Type: resultType},
		Name:      "Error",
	}

	tryExpr := &typedast.TypedTry{
		TypedExpr: typedast.TypedExpr{Type: types.TString},
		Expr:      call,
		Catches: []typedast.TypedCatchClause{
			{ExceptionType: "IOException", Binding: "e", Body: errCall},
		},
		AutoWrap: false,
	}

	e := classfile.NewMethodEmitter(classfile.NewSlotMap())
	if err := LowerExpr(e, tryExpr); err != nil {
		t.Fatalf("LowerExpr: %v", err)
	}

	handlers, err := e.ResolveHandlers()
	if err != nil {
		t.Fatalf("ResolveHandlers: %v", err)
	}
	if len(handlers) != 1 {
		t.Fatalf("expected 1 exception handler, got %d", len(handlers))
	}
	if handlers[0].ExceptionType != "IOException" {
		t.Errorf("expected handler for IOException, got %q", handlers[0].ExceptionType)
	}
	if handlers[0].Start >= handlers[0].End {
		t.Errorf("expected start < end, got start=%d end=%d", handlers[0].Start, handlers[0].End)
	}

	resolved, err := e.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	ops := opsOf(resolved)
	if !contains(ops, classfile.OpAReturn) && !contains(ops, classfile.OpIReturn) {
		t.Errorf("expected the catch clause to end in a return, got %v", ops)
	}
	if !contains(ops, classfile.OpNew) {
		t.Errorf("expected the catch body to construct Result$Error, got %v", ops)
	}
}

func contains_(s, substr string) bool {
	return len(s) >= len(substr) && (func() bool {
		for i := 0; i+len(substr) <= len(s); i++ {
			if s[i:i+len(substr)] == substr {
				return true
			}
		}
		return false
	})()
}
