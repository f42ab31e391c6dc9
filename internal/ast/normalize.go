package ast

import "golang.org/x/text/unicode/norm"

// NormalizeName applies Unicode NFC normalization to an identifier or
// constructor name. Nothing in this module calls it: environments,
// constructor tables and slot maps key on names exactly as given, so
// visually identical identifiers encoded with different
// combining-character sequences are distinct bindings there.
//
// IsNormalString avoids an allocation in the common case where source is
// already NFC (true for any ASCII identifier).
func NormalizeName(name string) string {
	if norm.NFC.IsNormalString(name) {
		return name
	}
	return norm.NFC.String(name)
}
