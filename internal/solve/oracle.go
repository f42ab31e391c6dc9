package solve

// throwableHierarchy is the fixed class-hierarchy oracle spec.md §4.3
// restricts Subtype constraints to: "Subtype constraints are used only
// for Throwable; a future extension for full declaration-site variance
// is not specified here" (spec.md §9). A hand-rolled map is used rather
// than a third-party graph/hierarchy library: the domain is a single
// fixed, tiny tree known at compile time, not a general reflection or
// inheritance-discovery problem any corpus library addresses.
var throwableHierarchy = map[string]string{
	"IOException":               "Exception",
	"FileNotFoundException":     "IOException",
	"EOFException":              "IOException",
	"NumberFormatException":     "IllegalArgumentException",
	"IllegalArgumentException":  "RuntimeException",
	"IllegalStateException":     "RuntimeException",
	"IndexOutOfBoundsException": "RuntimeException",
	"NullPointerException":      "RuntimeException",
	"ArithmeticException":       "RuntimeException",
	"RuntimeException":          "Exception",
	"Exception":                 "Throwable",
	"Error":                     "Throwable",
}

// isSubtypeOf reports whether sub is Throwable-hierarchy-equal to or a
// descendant of super.
func isSubtypeOf(sub, super string) bool {
	if sub == super || super == "Throwable" {
		return sub == super || isThrowable(sub)
	}
	cur := sub
	for {
		parent, ok := throwableHierarchy[cur]
		if !ok {
			return false
		}
		if parent == super {
			return true
		}
		cur = parent
	}
}

func isThrowable(name string) bool {
	if name == "Throwable" {
		return true
	}
	_, ok := throwableHierarchy[name]
	return ok
}
