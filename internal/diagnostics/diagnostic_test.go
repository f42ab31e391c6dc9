package diagnostics

import (
	"bytes"
	"testing"

	"github.com/taylorlang/taylorc/internal/types"
)

func TestFromCheckErrorCarriesExpectedActual(t *testing.T) {
	ce := &types.CheckError{
		Kind:     types.KindMismatch,
		Pos:      "test.tl:3:5",
		Message:  "cannot unify Int with String",
		Expected: types.TInt,
		Actual:   types.TString,
	}
	d := FromCheckError(ce)
	if d.Kind != KindMismatch {
		t.Fatalf("expected KindMismatch, got %s", d.Kind)
	}
	if len(d.Secondary) != 2 {
		t.Fatalf("expected 2 secondary lines, got %d: %v", len(d.Secondary), d.Secondary)
	}
}

func TestReporterSortsByLocation(t *testing.T) {
	r := NewReporter()
	r.Add(Diagnostic{Kind: KindMismatch, Location: "test.tl:9:1", Primary: "b"})
	r.Add(Diagnostic{Kind: KindMismatch, Location: "test.tl:1:1", Primary: "a"})

	sorted := r.Sorted()
	if sorted[0].Primary != "a" || sorted[1].Primary != "b" {
		t.Fatalf("expected sorted by location, got %+v", sorted)
	}

	var buf bytes.Buffer
	r.Print(&buf)
	if buf.Len() == 0 {
		t.Fatal("expected non-empty report output")
	}
}

func TestReporterEmpty(t *testing.T) {
	r := NewReporter()
	if !r.Empty() {
		t.Fatal("expected new reporter to be empty")
	}
}
