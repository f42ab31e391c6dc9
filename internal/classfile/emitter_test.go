package classfile

import (
	"testing"

	"github.com/taylorlang/taylorc/internal/types"
)

func TestSlotMapWideTypesConsumeTwoSlots(t *testing.T) {
	m := NewSlotMap()
	a := m.Alloc("a", types.TInt)
	b := m.Alloc("b", types.TDouble)
	c := m.Alloc("c", types.TInt)

	if a != 0 {
		t.Errorf("expected a at slot 0, got %d", a)
	}
	if b != 1 {
		t.Errorf("expected b at slot 1, got %d", b)
	}
	if c != 3 {
		t.Errorf("expected c at slot 3 (b occupies 1 and 2), got %d", c)
	}
}

func TestLoadStoreDispatchByWidth(t *testing.T) {
	e := NewMethodEmitter(NewSlotMap())
	slot := e.Slots.Alloc("x", types.TDouble)
	e.Load(slot, types.TDouble)
	e.Store(slot, types.TDouble)

	if e.Instrs[0].Op != OpDLoad {
		t.Errorf("expected dload, got %s", e.Instrs[0].Op)
	}
	if e.Instrs[1].Op != OpDStore {
		t.Errorf("expected dstore, got %s", e.Instrs[1].Op)
	}
}

func TestPopWidthAware(t *testing.T) {
	e := NewMethodEmitter(NewSlotMap())
	e.Pop(types.TDouble)
	e.Pop(types.TInt)

	if e.Instrs[0].Op != OpPop2 {
		t.Errorf("expected pop2 for Double, got %s", e.Instrs[0].Op)
	}
	if e.Instrs[1].Op != OpPop {
		t.Errorf("expected pop for Int, got %s", e.Instrs[1].Op)
	}
}

func TestResolveStripsLabelsAndChecksTargets(t *testing.T) {
	e := NewMethodEmitter(NewSlotMap())
	label := e.NewLabel("end")
	e.Goto(label)
	e.Mark(label)
	e.Return(types.TUnit)

	resolved, err := e.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected 2 instructions after stripping the label, got %d", len(resolved))
	}
	if resolved[0].Op != OpGoto || resolved[1].Op != OpReturn {
		t.Errorf("unexpected resolved sequence: %v", resolved)
	}
}

func TestResolveRejectsUndefinedLabel(t *testing.T) {
	e := NewMethodEmitter(NewSlotMap())
	e.Goto("nowhere")

	if _, err := e.Resolve(); err == nil {
		t.Error("expected an error for a branch to an undefined label")
	}
}

func TestReturnPicksCategoryCorrectOpcode(t *testing.T) {
	tests := []struct {
		t    types.Type
		want Op
	}{
		{types.TUnit, OpReturn},
		{types.TInt, OpIReturn},
		{types.TBoolean, OpIReturn},
		{types.TDouble, OpDReturn},
		{&types.Named{Name: "Option"}, OpAReturn},
	}
	for _, tt := range tests {
		e := NewMethodEmitter(NewSlotMap())
		e.Return(tt.t)
		if e.Instrs[0].Op != tt.want {
			t.Errorf("Return(%s): expected %s, got %s", tt.t, tt.want, e.Instrs[0].Op)
		}
	}
}
