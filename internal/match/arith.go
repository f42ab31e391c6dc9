package match

import (
	"github.com/taylorlang/taylorc/internal/classfile"
	"github.com/taylorlang/taylorc/internal/types"
)

// lowerArithmetic is the arithmetic/comparison sub-lowerer (spec.md §4.4:
// the coordinator "delegates to specialised sub-lowerers"). Both operands
// are already on the stack (left, then right) by the time this runs;
// lowerArithmetic only picks the width-correct opcode.
func lowerArithmetic(e *classfile.MethodEmitter, op string, t types.Type) {
	switch op {
	case "+", "-", "*", "/", "%":
		e.Binary(arithOp(op, t))
	case "<", "<=", ">", ">=", "==", "!=":
		lowerComparison(e, op, t)
	}
}

func arithOp(op string, t types.Type) classfile.Op {
	if types.IsFloating(t) {
		switch op {
		case "+":
			return classfile.OpDAdd
		case "-":
			return classfile.OpDSub
		case "*":
			return classfile.OpDMul
		case "/":
			return classfile.OpDDiv
		default:
			return classfile.OpDRem
		}
	}
	switch op {
	case "+":
		return classfile.OpIAdd
	case "-":
		return classfile.OpISub
	case "*":
		return classfile.OpIMul
	case "/":
		return classfile.OpIDiv
	default:
		return classfile.OpIRem
	}
}

// lowerComparison emits a boolean-valued comparison: push 1/0 by
// branching around an iconst, mirroring javac's handling of a
// comparison used as a value rather than a branch condition directly.
// For Int operands this is an if_icmp<op>; for Double it is a dcmpg
// followed by the zero-comparison family; for String ==/!= it is a
// String.equals call followed by ifne/ifeq.
func lowerComparison(e *classfile.MethodEmitter, op string, t types.Type) {
	trueLabel := e.NewLabel("cmpTrue")
	endLabel := e.NewLabel("cmpEnd")

	if p, ok := t.(*types.Primitive); ok && p.Name == "String" && (op == "==" || op == "!=") {
		// Strings compare by value: equals leaves 1 when they match.
		e.InvokeVirtual("equals")
		if op == "==" {
			e.IfCmp(classfile.OpIfNe, trueLabel)
		} else {
			e.IfCmp(classfile.OpIfEq, trueLabel)
		}
	} else if types.IsFloating(t) {
		// dcmpg reduces the pair to a single int (-1/0/1) against an
		// implicit zero, so the op family narrows to the zero-comparison
		// opcodes rather than if_icmp<op>.
		e.Binary(classfile.OpDCmpG)
		e.IfCmp(zeroCmpOpFor(op), trueLabel)
	} else {
		e.IfCmp(icmpOpFor(op), trueLabel)
	}

	e.Const(0, types.TBoolean)
	e.Goto(endLabel)
	e.Mark(trueLabel)
	e.Const(1, types.TBoolean)
	e.Mark(endLabel)
}

func icmpOpFor(op string) classfile.Op {
	switch op {
	case "<":
		return classfile.OpIfICmpLt
	case "<=":
		return classfile.OpIfICmpLe
	case ">":
		return classfile.OpIfICmpGt
	case ">=":
		return classfile.OpIfICmpGe
	case "==":
		return classfile.OpIfICmpEq
	default:
		return classfile.OpIfICmpNe
	}
}

func zeroCmpOpFor(op string) classfile.Op {
	switch op {
	case "<":
		return classfile.OpIfLt
	case "<=":
		return classfile.OpIfLe
	case ">":
		return classfile.OpIfGt
	case ">=":
		return classfile.OpIfGe
	case "==":
		return classfile.OpIfEq
	default:
		return classfile.OpIfNe
	}
}
