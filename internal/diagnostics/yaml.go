package diagnostics

import "gopkg.in/yaml.v3"

// yamlDiagnostic mirrors Diagnostic with yaml tags; CI tooling that
// reads compiler output as YAML (rather than JSON) is a second
// collaborator-consumed rendering of the same wire record (spec.md §6).
type yamlDiagnostic struct {
	Schema     string   `yaml:"schema"`
	Kind       Kind     `yaml:"kind"`
	Location   string   `yaml:"location"`
	Primary    string   `yaml:"message"`
	Secondary  []string `yaml:"secondary,omitempty"`
	Suggestion string   `yaml:"suggestion,omitempty"`
}

// ToYAML renders a diagnostic batch as a YAML document.
func ToYAML(diags []Diagnostic) ([]byte, error) {
	out := make([]yamlDiagnostic, len(diags))
	for i, d := range diags {
		out[i] = yamlDiagnostic{
			Schema:     d.Schema,
			Kind:       d.Kind,
			Location:   d.Location,
			Primary:    d.Primary,
			Secondary:  d.Secondary,
			Suggestion: d.Suggestion,
		}
	}
	return yaml.Marshal(out)
}
