package match

import (
	"fmt"

	"github.com/taylorlang/taylorc/internal/classfile"
	"github.com/taylorlang/taylorc/internal/typedast"
	"github.com/taylorlang/taylorc/internal/types"
)

// jvmClassName renders a declared union/product type's JVM binary name.
// Variants nest under their parent per spec.md §6: "an abstract parent
// class T and one concrete inner/nested subclass T$C per variant".
func jvmClassName(unionName, variantName string) string {
	if variantName == "" {
		return unionName
	}
	return unionName + "$" + variantName
}

// LowerExpr is the coordinator: it dispatches each typed expression kind
// to the sub-lowerer responsible for it (spec.md §4.4 "organised as a
// coordinator delegating to specialised sub-lowerers"), leaving exactly
// one value of the expression's type on the operand stack.
func LowerExpr(e *classfile.MethodEmitter, n typedast.TypedNode) error {
	switch t := n.(type) {
	case *typedast.TypedLiteral:
		return lowerLiteral(e, t)
	case *typedast.TypedIdentifier:
		return lowerIdentifier(e, t)
	case *typedast.TypedBinaryOp:
		return lowerBinaryOp(e, t)
	case *typedast.TypedUnaryOp:
		return lowerUnaryOp(e, t)
	case *typedast.TypedIf:
		return lowerIf(e, t)
	case *typedast.TypedFunctionCall:
		return lowerFunctionCall(e, t)
	case *typedast.TypedConstructorCall:
		return lowerConstructorCall(e, t)
	case *typedast.TypedPropertyAccess:
		return lowerPropertyAccess(e, t)
	case *typedast.TypedMatch:
		return LowerMatch(e, t)
	case *typedast.TypedTry:
		return lowerTry(e, t)
	default:
		return fmt.Errorf("match: no lowering for %T", n)
	}
}

func lowerLiteral(e *classfile.MethodEmitter, lit *typedast.TypedLiteral) error {
	e.Const(lit.Value, lit.Type)
	return nil
}

// lowerIdentifier is the variable-access sub-lowerer: a bound name always
// resolves to a slot the emitter's SlotMap already knows about — it never
// falls back to a default width, per spec.md §4.4's arithmetic-lowering
// rule that identifiers "resolve to the declared type of their binding".
func lowerIdentifier(e *classfile.MethodEmitter, id *typedast.TypedIdentifier) error {
	slot, ok := e.Slots.Lookup(id.Name)
	if !ok {
		return fmt.Errorf("match: identifier %q has no allocated slot", id.Name)
	}
	e.Load(slot, id.Type)
	return nil
}

func lowerUnaryOp(e *classfile.MethodEmitter, u *typedast.TypedUnaryOp) error {
	if err := LowerExpr(e, u.Operand); err != nil {
		return err
	}
	switch u.Op {
	case "-":
		if types.IsFloating(u.Type) {
			e.Const(-1.0, u.Type)
			e.Binary(classfile.OpDMul)
		} else {
			e.Const(-1, u.Type)
			e.Binary(classfile.OpIMul)
		}
	case "!", "¬":
		trueLabel := e.NewLabel("notTrue")
		endLabel := e.NewLabel("notEnd")
		e.IfCmp(classfile.OpIfEq, trueLabel)
		e.Const(0, types.TBoolean)
		e.Goto(endLabel)
		e.Mark(trueLabel)
		e.Const(1, types.TBoolean)
		e.Mark(endLabel)
	}
	return nil
}

func lowerBinaryOp(e *classfile.MethodEmitter, b *typedast.TypedBinaryOp) error {
	if err := LowerExpr(e, b.Left); err != nil {
		return err
	}
	if err := LowerExpr(e, b.Right); err != nil {
		return err
	}
	lowerArithmetic(e, b.Op, b.Left.GetType())
	return nil
}

// lowerIf lowers to a conditional branch around the two arms, each
// funnelled to the same merge point — the same single-empty-stack-at-
// merge discipline §4.4 requires of match's successᵢ labels.
func lowerIf(e *classfile.MethodEmitter, i *typedast.TypedIf) error {
	if err := LowerExpr(e, i.Cond); err != nil {
		return err
	}
	elseLabel := e.NewLabel("ifElse")
	endLabel := e.NewLabel("ifEnd")
	e.IfCmp(classfile.OpIfEq, elseLabel)
	if err := LowerExpr(e, i.Then); err != nil {
		return err
	}
	e.Goto(endLabel)
	e.Mark(elseLabel)
	if err := LowerExpr(e, i.Else); err != nil {
		return err
	}
	e.Mark(endLabel)
	return nil
}

func lowerFunctionCall(e *classfile.MethodEmitter, c *typedast.TypedFunctionCall) error {
	callee, ok := c.Callee.(*typedast.TypedIdentifier)
	if !ok {
		return fmt.Errorf("match: function call to non-identifier callee %T unsupported", c.Callee)
	}
	for _, a := range c.Args {
		if err := LowerExpr(e, a); err != nil {
			return err
		}
	}
	e.InvokeStatic(callee.Name)
	return nil
}

// lowerConstructorCall allocates a variant instance and invokes its
// generated constructor (spec.md §6: one concrete class T$C per
// variant, with fields field_1..field_k and a constructor).
func lowerConstructorCall(e *classfile.MethodEmitter, c *typedast.TypedConstructorCall) error {
	className := jvmClassName(unionNameOf(c.Type), c.Name)
	e.New(className)
	e.Dup()
	for _, a := range c.Args {
		if err := LowerExpr(e, a); err != nil {
			return err
		}
	}
	e.InvokeSpecial(className + ".<init>")
	return nil
}

// lowerPropertyAccess is best-effort: this module has no record/row type
// (constructor fields are read by bindField in pattern.go through their
// getField_i accessors), so a bare property read lowers to a
// get<Name> accessor call.
func lowerPropertyAccess(e *classfile.MethodEmitter, p *typedast.TypedPropertyAccess) error {
	if err := LowerExpr(e, p.Target); err != nil {
		return err
	}
	e.InvokeVirtual("get" + p.Name)
	return nil
}

// lowerTry realizes spec.md §8 S4: the guarded expression runs inside a
// real JVM exception-table range. On normal completion its value is the
// try's result (already the unwrapped success type). A catch clause never
// falls through to the try's merge point; it ends in a return or, for
// AutoWrap, a rethrow.
//
// AutoWrap only changes the catch side. Pass-through functions (return
// Result<T,E>) return the clause's Result$Error construction directly, as
// in S4. A bare-T function has no Result to hand back from a catch, so the
// caught exception is rethrown instead.
func lowerTry(e *classfile.MethodEmitter, t *typedast.TypedTry) error {
	startLabel := e.NewLabel("tryStart")
	endLabel := e.NewLabel("tryEnd")
	doneLabel := e.NewLabel("tryDone")

	e.Mark(startLabel)
	if err := LowerExpr(e, t.Expr); err != nil {
		return err
	}
	e.Mark(endLabel)
	e.Goto(doneLabel)

	for _, c := range t.Catches {
		handlerLabel := e.NewLabel("tryCatch")
		e.Mark(handlerLabel)
		e.Catch(startLabel, endLabel, handlerLabel, c.ExceptionType)

		excType := &types.Named{Name: c.ExceptionType}
		bindingName := c.Binding
		if bindingName == "" {
			bindingName = e.NewLabel("$exc")
		}
		slot := e.Slots.Alloc(bindingName, excType)
		e.Store(slot, excType)

		if t.AutoWrap {
			// No Result wrapper to hand back from a bare-T function; the
			// exception propagates to the caller instead.
			e.Load(slot, excType)
			e.AThrow()
			continue
		}

		if err := LowerExpr(e, c.Body); err != nil {
			return err
		}
		e.Return(c.Body.GetType())
	}

	e.Mark(doneLabel)
	return nil
}
