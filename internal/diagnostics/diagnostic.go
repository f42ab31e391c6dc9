// Package diagnostics renders the type-error wire format described in
// spec.md §6: a record of (kind, location, primary message, optional
// secondary messages, suggestion?) that a collaborator tool consumes.
package diagnostics

import (
	"fmt"

	"github.com/taylorlang/taylorc/internal/types"
)

// Kind mirrors types.ErrorKind as the stable wire vocabulary. Kept as a
// distinct type from types.ErrorKind so the wire format does not leak
// internal representation changes.
type Kind string

const (
	KindOccursCheck     Kind = "OccursCheck"
	KindMismatch        Kind = "Mismatch"
	KindAmbiguousType   Kind = "AmbiguousType"
	KindNonExhaustive   Kind = "NonExhaustiveMatch"
	KindUnboundIdent    Kind = "UnboundIdentifier"
	KindArityMismatch   Kind = "ArityMismatch"
	KindNotInstantiable Kind = "NotInstantiable"
)

var kindTable = map[types.ErrorKind]Kind{
	types.KindOccursCheck:     KindOccursCheck,
	types.KindMismatch:        KindMismatch,
	types.KindAmbiguousType:   KindAmbiguousType,
	types.KindNonExhaustive:   KindNonExhaustive,
	types.KindUnboundIdent:    KindUnboundIdent,
	types.KindArityMismatch:   KindArityMismatch,
	types.KindNotInstantiable: KindNotInstantiable,
}

// Diagnostic is the collaborator-consumed record named in spec.md §6.
type Diagnostic struct {
	Schema     string   `json:"schema"`
	Kind       Kind     `json:"kind"`
	Location   string   `json:"location"`
	Primary    string   `json:"message"`
	Secondary  []string `json:"secondary,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

const SchemaV1 = "taylorlang.diagnostic/v1"

// FromCheckError converts a types.CheckError into the wire record.
func FromCheckError(e *types.CheckError) Diagnostic {
	d := Diagnostic{
		Schema:     SchemaV1,
		Kind:       kindTable[e.Kind],
		Location:   e.Pos,
		Primary:    e.Message,
		Suggestion: e.Suggestion,
	}
	if e.Expected != nil && e.Actual != nil {
		d.Secondary = []string{
			fmt.Sprintf("expected: %s", e.Expected),
			fmt.Sprintf("got: %s", e.Actual),
		}
	}
	return d
}

// FromCheckErrors converts an ordered batch, preserving collection order
// (spec.md §7: "accumulated, not thrown").
func FromCheckErrors(errs types.ErrorList) []Diagnostic {
	out := make([]Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = FromCheckError(e)
	}
	return out
}
