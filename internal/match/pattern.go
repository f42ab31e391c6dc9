package match

import (
	"fmt"

	"github.com/taylorlang/taylorc/internal/classfile"
	"github.com/taylorlang/taylorc/internal/dtree"
	"github.com/taylorlang/taylorc/internal/typedast"
	"github.com/taylorlang/taylorc/internal/types"
)

// LowerMatch implements the match lowering protocol of spec.md §4.4:
// evaluate the target once into targetSlot, decision-tree-compile the
// cases, walk the tree emitting pattern tests that either fall through
// to a leaf or branch to the next test, and funnel every arm's result
// through a single resultSlot so every multi-entry label sees an empty
// operand stack.
func LowerMatch(e *classfile.MethodEmitter, m *typedast.TypedMatch) error {
	scrutType := m.Scrutinee.GetType()
	if err := LowerExpr(e, m.Scrutinee); err != nil {
		return err
	}

	targetSlot := e.Slots.Alloc("$target", scrutType)
	e.Store(targetSlot, scrutType)
	resultSlot := e.Slots.Alloc("$result", m.Type)

	endLabel := e.NewLabel("matchEnd")
	failLabel := e.NewLabel("matchFail")

	tree := dtree.NewDecisionTreeCompiler(m.Cases).Compile()
	if err := emitNode(e, tree, targetSlot, scrutType, resultSlot, m.Type, endLabel, failLabel); err != nil {
		return err
	}

	// The failure label is visited only after every test has been
	// emitted, never during — spec.md §4.4 step 5c's ordering rule.
	e.Mark(failLabel)
	emitMatchError(e)

	e.Mark(endLabel)
	e.Load(resultSlot, m.Type)
	return nil
}

func emitNode(e *classfile.MethodEmitter, node dtree.DecisionTree, targetSlot int, targetType types.Type, resultSlot int, resultType types.Type, endLabel, failLabel string) error {
	switch n := node.(type) {
	case *dtree.SwitchNode:
		return emitSwitch(e, n, targetSlot, targetType, resultSlot, resultType, endLabel, failLabel)
	case *dtree.LeafNode:
		return emitLeaf(e, n, targetSlot, targetType, resultSlot, resultType, endLabel, failLabel)
	case *dtree.FailNode:
		e.Goto(failLabel)
		return nil
	default:
		return fmt.Errorf("match: unknown decision tree node %T", node)
	}
}

// emitSwitch tests the value in targetSlot directly. Only root-level
// switches are supported (Path of length 1); a pattern nested inside
// another constructor pattern (e.g. Cons(Cons(a,b), rest)) would need
// the intermediate variant's class name threaded down to navigate to
// it, which the current SwitchNode.Path does not carry.
func emitSwitch(e *classfile.MethodEmitter, n *dtree.SwitchNode, targetSlot int, targetType types.Type, resultSlot int, resultType types.Type, endLabel, failLabel string) error {
	if len(n.Path) != 1 {
		return fmt.Errorf("match: nested constructor pattern matching is not supported (path %v)", n.Path)
	}

	type branch struct {
		label string
		tree  dtree.DecisionTree
	}
	var branches []branch
	defaultLabel := e.NewLabel("case")

	for key, sub := range n.Cases {
		label := e.NewLabel("case")
		e.Load(targetSlot, targetType)
		if n.Constructor {
			className := jvmClassName(unionNameOf(targetType), key.(string))
			e.InstanceOf(className)
			e.IfCmp(classfile.OpIfNe, label)
		} else {
			e.Const(key, targetType)
			lowerEqualityBranch(e, targetType, label)
		}
		branches = append(branches, branch{label, sub})
	}
	if n.Default != nil {
		e.Goto(defaultLabel)
	} else {
		e.Goto(failLabel)
	}

	afterLabel := e.NewLabel("switchAfter")
	for _, b := range branches {
		e.Mark(b.label)
		if err := emitNode(e, b.tree, targetSlot, targetType, resultSlot, resultType, endLabel, failLabel); err != nil {
			return err
		}
		e.Goto(afterLabel)
	}
	if n.Default != nil {
		e.Mark(defaultLabel)
		if err := emitNode(e, n.Default, targetSlot, targetType, resultSlot, resultType, endLabel, failLabel); err != nil {
			return err
		}
	}
	e.Mark(afterLabel)
	return nil
}

// emitLeaf binds the arm's identifier patterns into fresh locals,
// applies the guard (if any), and lowers the body. A leaf with no
// bindings at all binds nothing from a live pattern — it is the
// Wildcard rule (spec.md §4.4: "Wildcards are not no-ops"), which still
// must load and width-aware-pop the scrutinee (spec.md §8 S5: `dload n;
// pop2; goto success`) rather than silently leaving it in its slot.
func emitLeaf(e *classfile.MethodEmitter, n *dtree.LeafNode, targetSlot int, targetType types.Type, resultSlot int, resultType types.Type, endLabel, failLabel string) error {
	if len(n.Bindings) == 0 {
		successLabel := e.NewLabel("success")
		e.Load(targetSlot, targetType)
		e.Pop(targetType)
		e.Goto(successLabel)
		e.Mark(successLabel)
	}

	for _, b := range n.Bindings {
		if err := bindField(e, b, targetSlot, targetType); err != nil {
			return err
		}
	}

	if n.Guard != nil {
		if err := LowerExpr(e, n.Guard); err != nil {
			return err
		}
		continueLabel := e.NewLabel("guardOk")
		e.IfCmp(classfile.OpIfNe, continueLabel)
		e.Goto(failLabel)
		e.Mark(continueLabel)
	}

	if err := LowerExpr(e, n.Body); err != nil {
		return err
	}
	e.Store(resultSlot, resultType)
	e.Goto(endLabel)
	return nil
}

// bindField loads targetSlot, navigates b.Path (a single constructor
// field index for every scenario this lowerer supports — see emitSwitch)
// and stores the result into a fresh local for b.Name.
func bindField(e *classfile.MethodEmitter, b dtree.Binding, targetSlot int, targetType types.Type) error {
	slot := e.Slots.Alloc(b.Name, b.Type)
	if len(b.Path) == 0 {
		e.Load(targetSlot, targetType)
		e.Store(slot, b.Type)
		return nil
	}
	if len(b.Path) != 1 {
		return fmt.Errorf("match: binding %q has unsupported nested path %v", b.Name, b.Path)
	}
	e.Load(targetSlot, targetType)
	e.InvokeVirtual(fmt.Sprintf("getField_%d", b.Path[0]+1))
	emitGenericBoundaryCast(e, b.Type)
	e.Store(slot, b.Type)
	return nil
}

// wrapperClass/unboxMethod give the boxed-wrapper class and unboxing
// accessor for each primitive the JVM cannot store unboxed in a generic
// field (spec.md §4.4 "Generic boundary handling").
var wrapperClass = map[string]string{
	"Int":     "java/lang/Integer",
	"Long":    "java/lang/Long",
	"Float":   "java/lang/Float",
	"Double":  "java/lang/Double",
	"Boolean": "java/lang/Boolean",
	"Char":    "java/lang/Character",
}

var unboxMethod = map[string]string{
	"Int":     "intValue",
	"Long":    "longValue",
	"Float":   "floatValue",
	"Double":  "doubleValue",
	"Boolean": "booleanValue",
	"Char":    "charValue",
}

// emitGenericBoundaryCast implements spec.md §4.4's generic boundary
// rule: an accessor erased by a generic type parameter returns Object,
// so before the value can be stored into a concretely-typed local it
// must be checkcast to its boxed wrapper and unboxed (for a primitive
// field type) or simply checkcast to its concrete class (for a reference
// field type). Skipping the checkcast is the documented cause of a JVM
// VerifyError: "Expecting to find object/array on stack".
func emitGenericBoundaryCast(e *classfile.MethodEmitter, t types.Type) {
	if p, ok := t.(*types.Primitive); ok {
		if wrapper, ok := wrapperClass[p.Name]; ok {
			e.CheckCast(wrapper)
			e.InvokeVirtual(unboxMethod[p.Name])
			return
		}
		if p.Name == "String" {
			e.CheckCast("java/lang/String")
		}
		return
	}
	if named, ok := t.(*types.Named); ok {
		e.CheckCast(named.Name)
		return
	}
	if generic, ok := t.(*types.Generic); ok {
		e.CheckCast(generic.Name)
	}
}

func lowerEqualityBranch(e *classfile.MethodEmitter, t types.Type, onMatch string) {
	if p, ok := t.(*types.Primitive); ok {
		switch p.Name {
		case "String":
			e.InvokeVirtual("equals")
			e.IfCmp(classfile.OpIfNe, onMatch)
			return
		case "Double", "Float":
			e.Binary(classfile.OpDCmpG)
			e.IfCmp(classfile.OpIfEq, onMatch)
			return
		}
	}
	e.IfCmp(classfile.OpIfICmpEq, onMatch)
}

// emitMatchError emits the fallthrough-failure sequence for a match with
// no satisfied arm (spec.md §6's RT-002-equivalent runtime error).
func emitMatchError(e *classfile.MethodEmitter) {
	e.New("MatchError")
	e.Dup()
	e.InvokeSpecial("MatchError.<init>")
	e.AThrow()
}
