// Package classfile emits JVM bytecode instruction streams for one
// method body at a time. It does not assemble a full .class file (the
// constant pool, field/method tables and manifest wiring are named in
// spec.md §1 as an external collaborator's concern); it exists to give
// internal/match a width-aware, slot-aware place to append opcodes and
// read them back for verification and golden testing.
package classfile

// Op is a single-byte JVM opcode, named per the JVM specification.
type Op byte

const (
	OpIConst0 Op = 0x03
	OpIConst1 Op = 0x04
	OpLdc     Op = 0x12
	OpLdc2W   Op = 0x14

	OpILoad Op = 0x15
	OpLLoad Op = 0x16
	OpFLoad Op = 0x17
	OpDLoad Op = 0x18
	OpALoad Op = 0x19

	OpIStore Op = 0x36
	OpLStore Op = 0x37
	OpFStore Op = 0x38
	OpDStore Op = 0x39
	OpAStore Op = 0x3a

	OpPop  Op = 0x57
	OpPop2 Op = 0x58
	OpDup  Op = 0x59

	OpIAdd Op = 0x60
	OpLAdd Op = 0x61
	OpFAdd Op = 0x62
	OpDAdd Op = 0x63

	OpISub Op = 0x64
	OpIMul Op = 0x68
	OpIDiv Op = 0x6c
	OpIRem Op = 0x70

	OpDSub Op = 0x67
	OpDMul Op = 0x6b
	OpDDiv Op = 0x6f
	OpDRem Op = 0x73

	OpIfICmpEq Op = 0x9f
	OpIfICmpNe Op = 0xa0
	OpIfICmpLt Op = 0xa1
	OpIfICmpGe Op = 0xa2
	OpIfICmpGt Op = 0xa3
	OpIfICmpLe Op = 0xa4

	OpDCmpG Op = 0x98
	OpIfEq  Op = 0x99
	OpIfNe  Op = 0x9a
	OpIfLt  Op = 0x9b
	OpIfGe  Op = 0x9c
	OpIfGt  Op = 0x9d
	OpIfLe  Op = 0x9e

	OpGoto Op = 0xa7

	OpNew           Op = 0xbb
	OpInvokeSpecial Op = 0xb7
	OpInvokeVirtual Op = 0xb6
	OpInvokeStatic  Op = 0xb8
	OpCheckCast     Op = 0xc0
	OpInstanceOf    Op = 0xc1
	OpAThrow        Op = 0xbf
	OpAReturn       Op = 0xb0
	OpIReturn       Op = 0xac
	OpDReturn       Op = 0xaf
	OpReturn        Op = 0xb1

	// OpLabel is not a real opcode; it is a zero-width marker instruction
	// this package's MethodEmitter uses to name jump targets. Resolve
	// checks branch targets against these markers and removes them.
	OpLabel Op = 0xff
)

// Width is the JVM's operand-stack and local-variable slot category: 1
// for every primitive except Long/Double, which occupy two ("wide").
// Reference types are always width 1.
type Width int

const (
	Width1 Width = 1
	Width2 Width = 2
)

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "unknown"
}

var opNames = map[Op]string{
	OpIConst0: "iconst_0", OpIConst1: "iconst_1", OpLdc: "ldc", OpLdc2W: "ldc2_w",
	OpILoad: "iload", OpLLoad: "lload", OpFLoad: "fload", OpDLoad: "dload", OpALoad: "aload",
	OpIStore: "istore", OpLStore: "lstore", OpFStore: "fstore", OpDStore: "dstore", OpAStore: "astore",
	OpPop: "pop", OpPop2: "pop2", OpDup: "dup",
	OpIAdd: "iadd", OpLAdd: "ladd", OpFAdd: "fadd", OpDAdd: "dadd",
	OpISub: "isub", OpIMul: "imul", OpIDiv: "idiv", OpIRem: "irem",
	OpDSub: "dsub", OpDMul: "dmul", OpDDiv: "ddiv", OpDRem: "drem",
	OpIfICmpEq: "if_icmpeq", OpIfICmpNe: "if_icmpne", OpIfICmpLt: "if_icmplt",
	OpIfICmpGe: "if_icmpge", OpIfICmpGt: "if_icmpgt", OpIfICmpLe: "if_icmple",
	OpDCmpG: "dcmpg", OpIfEq: "ifeq", OpIfNe: "ifne",
	OpIfLt: "iflt", OpIfGe: "ifge", OpIfGt: "ifgt", OpIfLe: "ifle", OpGoto: "goto",
	OpNew: "new", OpInvokeSpecial: "invokespecial", OpInvokeVirtual: "invokevirtual",
	OpInvokeStatic: "invokestatic", OpCheckCast: "checkcast", OpInstanceOf: "instanceof", OpAThrow: "athrow",
	OpAReturn: "areturn", OpIReturn: "ireturn", OpDReturn: "dreturn", OpReturn: "return",
	OpLabel: "label",
}
