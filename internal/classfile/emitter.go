package classfile

import (
	"fmt"

	"github.com/taylorlang/taylorc/internal/types"
)

// Instruction is one emitted opcode plus its operands. Operands are kept
// symbolic (slot indices, constant-pool-style literal values, label
// names) rather than resolved to absolute byte offsets. Resolve checks
// that every branch target names a defined label and strips the label
// markers; branch operands stay symbolic label names after it.
type Instruction struct {
	Op      Op
	Slot    int         // for *Load/*Store
	Literal interface{} // for Ldc/Ldc2W
	Target  string      // for Goto/IfEq/IfNe/IfICmp*/label resolution
	Label   string      // non-empty only for Op == OpLabel
}

func (i Instruction) String() string {
	switch {
	case i.Op == OpLabel:
		return i.Label + ":"
	case i.Target != "":
		return fmt.Sprintf("%s %s", i.Op, i.Target)
	case i.Literal != nil:
		return fmt.Sprintf("%s %v", i.Op, i.Literal)
	case i.Op == OpILoad || i.Op == OpLLoad || i.Op == OpFLoad || i.Op == OpDLoad || i.Op == OpALoad ||
		i.Op == OpIStore || i.Op == OpLStore || i.Op == OpFStore || i.Op == OpDStore || i.Op == OpAStore:
		return fmt.Sprintf("%s %d", i.Op, i.Slot)
	default:
		return i.Op.String()
	}
}

// SlotMap allocates local-variable slots, respecting the JVM rule that a
// Long/Double binding consumes two consecutive slots.
type SlotMap struct {
	next int
	byName map[string]int
}

func NewSlotMap() *SlotMap {
	return &SlotMap{byName: make(map[string]int)}
}

// Alloc reserves a slot (or two, for a wide type) for name and returns
// the slot's index.
func (m *SlotMap) Alloc(name string, t types.Type) int {
	slot := m.next
	m.byName[name] = slot
	m.next += int(WidthOf(t))
	return slot
}

func (m *SlotMap) Lookup(name string) (int, bool) {
	s, ok := m.byName[name]
	return s, ok
}

// WidthOf returns the JVM stack/local-variable category of t: Width2 for
// Long and Double, Width1 for everything else (including every
// reference type, per the JVM spec's category-1/category-2 split).
func WidthOf(t types.Type) Width {
	if p, ok := t.(*types.Primitive); ok && (p.Name == "Long" || p.Name == "Double") {
		return Width2
	}
	return Width1
}

// ExceptionHandler is one entry of the method's exception table: a
// try-range (by label, half-open) paired with the handler it dispatches
// to when exceptionType (or any subtype) escapes the range.
type ExceptionHandler struct {
	Start, End, Handler string
	ExceptionType       string
}

// ResolvedHandler is an ExceptionHandler with its labels resolved to
// instruction offsets, the form a class file's exception table stores.
type ResolvedHandler struct {
	Start, End, Handler int
	ExceptionType       string
}

// MethodEmitter accumulates one method body's instructions. The caller
// creates one per method body and passes it to internal/match's
// LowerExpr/LowerMatch.
type MethodEmitter struct {
	Slots *SlotMap
	Instrs []Instruction
	Handlers []ExceptionHandler
	labelSeq int
}

func NewMethodEmitter(slots *SlotMap) *MethodEmitter {
	return &MethodEmitter{Slots: slots}
}

func (e *MethodEmitter) emit(i Instruction) {
	e.Instrs = append(e.Instrs, i)
}

// NewLabel returns a fresh, unique label name for a branch target.
func (e *MethodEmitter) NewLabel(prefix string) string {
	e.labelSeq++
	return fmt.Sprintf("%s%d", prefix, e.labelSeq)
}

// Mark places a label at the current instruction position.
func (e *MethodEmitter) Mark(label string) {
	e.emit(Instruction{Op: OpLabel, Label: label})
}

// Load emits the width/category-correct *load instruction for a local
// variable of type t at slot.
func (e *MethodEmitter) Load(slot int, t types.Type) {
	e.emit(Instruction{Op: loadOp(t), Slot: slot})
}

// Store emits the width/category-correct *store instruction.
func (e *MethodEmitter) Store(slot int, t types.Type) {
	e.emit(Instruction{Op: storeOp(t), Slot: slot})
}

// Pop discards the top stack value of type t with the width-correct
// instruction (spec.md §3 invariant 10: "width-correct pops" — pop2 for
// any Width2 type, pop otherwise).
func (e *MethodEmitter) Pop(t types.Type) {
	if WidthOf(t) == Width2 {
		e.emit(Instruction{Op: OpPop2})
	} else {
		e.emit(Instruction{Op: OpPop})
	}
}

func (e *MethodEmitter) Const(v interface{}, t types.Type) {
	if WidthOf(t) == Width2 {
		e.emit(Instruction{Op: OpLdc2W, Literal: v})
	} else {
		e.emit(Instruction{Op: OpLdc, Literal: v})
	}
}

func (e *MethodEmitter) Binary(op Op) { e.emit(Instruction{Op: op}) }

func (e *MethodEmitter) Goto(label string) { e.emit(Instruction{Op: OpGoto, Target: label}) }

func (e *MethodEmitter) IfCmp(op Op, label string) { e.emit(Instruction{Op: op, Target: label}) }

func (e *MethodEmitter) New(className string) { e.emit(Instruction{Op: OpNew, Literal: className}) }

func (e *MethodEmitter) Dup() { e.emit(Instruction{Op: OpDup}) }

func (e *MethodEmitter) InvokeSpecial(methodRef string) {
	e.emit(Instruction{Op: OpInvokeSpecial, Literal: methodRef})
}

func (e *MethodEmitter) InvokeVirtual(methodRef string) {
	e.emit(Instruction{Op: OpInvokeVirtual, Literal: methodRef})
}

func (e *MethodEmitter) InvokeStatic(methodRef string) {
	e.emit(Instruction{Op: OpInvokeStatic, Literal: methodRef})
}

func (e *MethodEmitter) CheckCast(className string) {
	e.emit(Instruction{Op: OpCheckCast, Literal: className})
}

// InstanceOf pushes a boolean (0/1) for whether the top-of-stack value is
// an instance of className, consumed by variant-switch dispatch
// (spec.md §4.4 "Constructor" pattern rule).
func (e *MethodEmitter) InstanceOf(className string) {
	e.emit(Instruction{Op: OpInstanceOf, Literal: className})
}

func (e *MethodEmitter) AThrow() { e.emit(Instruction{Op: OpAThrow}) }

// Catch registers an exception-table entry covering [start, end) that
// dispatches to handler when exceptionType escapes the range (spec.md §4.2
// try/catch lowering).
func (e *MethodEmitter) Catch(start, end, handler, exceptionType string) {
	e.Handlers = append(e.Handlers, ExceptionHandler{Start: start, End: end, Handler: handler, ExceptionType: exceptionType})
}

// Return emits the category-correct return instruction for t, or a bare
// `return` for Unit.
func (e *MethodEmitter) Return(t types.Type) {
	if p, ok := t.(*types.Primitive); ok {
		switch p.Name {
		case "Unit":
			e.emit(Instruction{Op: OpReturn})
			return
		case "Int", "Boolean", "Char":
			e.emit(Instruction{Op: OpIReturn})
			return
		case "Double", "Float":
			e.emit(Instruction{Op: OpDReturn})
			return
		}
	}
	e.emit(Instruction{Op: OpAReturn})
}

func loadOp(t types.Type) Op {
	if p, ok := t.(*types.Primitive); ok {
		switch p.Name {
		case "Int", "Boolean", "Char":
			return OpILoad
		case "Long":
			return OpLLoad
		case "Float":
			return OpFLoad
		case "Double":
			return OpDLoad
		}
	}
	return OpALoad
}

func storeOp(t types.Type) Op {
	if p, ok := t.(*types.Primitive); ok {
		switch p.Name {
		case "Int", "Boolean", "Char":
			return OpIStore
		case "Long":
			return OpLStore
		case "Float":
			return OpFStore
		case "Double":
			return OpDStore
		}
	}
	return OpAStore
}

// Resolve walks Instrs, assigning each label its emitted index (labels
// themselves are stripped from the result) and verifies every branch
// target names a label that was actually marked — the minimal
// stack-map-frame precondition a verifier checks: well-formed control
// flow with every forward/backward edge landing on a real instruction.
func (e *MethodEmitter) Resolve() ([]Instruction, error) {
	out, _, err := e.resolveWithPositions()
	return out, err
}

func (e *MethodEmitter) resolveWithPositions() ([]Instruction, map[string]int, error) {
	positions := make(map[string]int)
	var out []Instruction
	for _, ins := range e.Instrs {
		if ins.Op == OpLabel {
			positions[ins.Label] = len(out)
			continue
		}
		out = append(out, ins)
	}
	for _, ins := range out {
		if ins.Target == "" {
			continue
		}
		if _, ok := positions[ins.Target]; !ok {
			return nil, nil, fmt.Errorf("classfile: branch to undefined label %q", ins.Target)
		}
	}
	return out, positions, nil
}

// ResolveHandlers resolves every registered exception-table entry's
// labels to instruction offsets, failing if Start/End/Handler names a
// label that was never marked.
func (e *MethodEmitter) ResolveHandlers() ([]ResolvedHandler, error) {
	_, positions, err := e.resolveWithPositions()
	if err != nil {
		return nil, err
	}
	out := make([]ResolvedHandler, len(e.Handlers))
	for i, h := range e.Handlers {
		start, ok := positions[h.Start]
		if !ok {
			return nil, fmt.Errorf("classfile: exception handler start label %q undefined", h.Start)
		}
		end, ok := positions[h.End]
		if !ok {
			return nil, fmt.Errorf("classfile: exception handler end label %q undefined", h.End)
		}
		handler, ok := positions[h.Handler]
		if !ok {
			return nil, fmt.Errorf("classfile: exception handler target label %q undefined", h.Handler)
		}
		out[i] = ResolvedHandler{Start: start, End: end, Handler: handler, ExceptionType: h.ExceptionType}
	}
	return out, nil
}
