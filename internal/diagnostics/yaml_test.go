package diagnostics

import (
	"strings"
	"testing"
)

func TestToYAMLRendersKindAndLocation(t *testing.T) {
	diags := []Diagnostic{
		{Schema: SchemaV1, Kind: KindNonExhaustive, Location: "test.tl:4:1", Primary: "missing Nil", Suggestion: "add a Nil case"},
	}
	out, err := ToYAML(diags)
	if err != nil {
		t.Fatalf("ToYAML: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "kind: NonExhaustiveMatch") {
		t.Errorf("expected kind field in output, got %q", s)
	}
	if !strings.Contains(s, "location: test.tl:4:1") {
		t.Errorf("expected location field in output, got %q", s)
	}
	if !strings.Contains(s, "suggestion: add a Nil case") {
		t.Errorf("expected suggestion field in output, got %q", s)
	}
}

func TestToYAMLEmptyBatch(t *testing.T) {
	out, err := ToYAML(nil)
	if err != nil {
		t.Fatalf("ToYAML: %v", err)
	}
	if strings.TrimSpace(string(out)) != "[]" {
		t.Errorf("expected empty-batch YAML to be an empty sequence, got %q", out)
	}
}
