package types

import (
	"fmt"
	"sync/atomic"
	"testing"
)

// TypeVarFactory generates globally unique Vars for one compilation unit.
// It is deliberately a struct rather than a package-level singleton
// (spec.md §9 "Global type-variable counter") so independent units can be
// compiled on independent worker threads (spec.md §5) without sharing a
// counter. The counter itself is updated with compare-and-add, so a
// single factory may also be shared across goroutines within one unit if
// a caller chooses to.
type TypeVarFactory struct {
	counter uint64
}

// NewTypeVarFactory returns a fresh factory starting at id 1.
func NewTypeVarFactory() *TypeVarFactory {
	return &TypeVarFactory{}
}

// Fresh allocates a new, globally-unique (within this factory) Var.
func (f *TypeVarFactory) Fresh() *Var {
	id := atomic.AddUint64(&f.counter, 1)
	return &Var{ID: id, Kind: KindStar}
}

// FreshNamed is Fresh with a debug name attached for readable error
// messages; identity is still by ID.
func (f *TypeVarFactory) FreshNamed(name string) *Var {
	v := f.Fresh()
	v.Name = fmt.Sprintf("%s%d", name, v.ID)
	return v
}

// ResetForTest rewinds the counter to zero. Spec.md §5 states this
// operation "is prohibited outside test contexts"; testing.Testing
// reports whether the current binary was built by `go test`, which is
// the only caller allowed to invoke this.
func (f *TypeVarFactory) ResetForTest() {
	if !testing.Testing() {
		panic("types: ResetForTest called outside a test binary")
	}
	atomic.StoreUint64(&f.counter, 0)
}
