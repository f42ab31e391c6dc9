package types

import "fmt"

// ErrorKind enumerates the wire-format kinds named in spec.md §6.
type ErrorKind string

const (
	KindOccursCheck     ErrorKind = "OccursCheck"
	KindMismatch        ErrorKind = "Mismatch"
	KindAmbiguousType   ErrorKind = "AmbiguousType"
	KindNonExhaustive   ErrorKind = "NonExhaustiveMatch"
	KindUnboundIdent    ErrorKind = "UnboundIdentifier"
	KindArityMismatch   ErrorKind = "ArityMismatch"
	KindNotInstantiable ErrorKind = "NotInstantiable"
)

// CheckError is the typed-core's internal representation of a single
// collector/solver diagnostic before it is rendered to the
// diagnostics.Diagnostic wire format.
type CheckError struct {
	Kind       ErrorKind
	Pos        string
	Message    string
	Suggestion string
	Expected   Type
	Actual     Type
}

func (e *CheckError) Error() string {
	if e.Expected != nil && e.Actual != nil {
		return fmt.Sprintf("%s: %s (expected %s, got %s)", e.Pos, e.Message, e.Expected, e.Actual)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// FromUnifyError converts a low-level UnifyError into a CheckError,
// attaching the constraint's source location.
func FromUnifyError(pos string, err *UnifyError) *CheckError {
	kind := KindMismatch
	switch err.Kind {
	case OccursCheck:
		kind = KindOccursCheck
	case ArityMismatch:
		kind = KindArityMismatch
	}
	return &CheckError{
		Kind:     kind,
		Pos:      pos,
		Message:  err.Error(),
		Expected: err.Left,
		Actual:   err.Right,
	}
}

// NewAmbiguousTypeError reports a Var left unresolved after the Solver's
// post-pass (spec.md §4.3 "Post-pass").
func NewAmbiguousTypeError(pos string, v *Var) *CheckError {
	return &CheckError{
		Kind:       KindAmbiguousType,
		Pos:        pos,
		Message:    fmt.Sprintf("ambiguous type: %s could not be resolved", v),
		Suggestion: "add an explicit type annotation",
	}
}

// NewUnboundIdentifierError reports a reference to an unbound name.
func NewUnboundIdentifierError(pos, name string) *CheckError {
	return &CheckError{
		Kind:    KindUnboundIdent,
		Pos:     pos,
		Message: fmt.Sprintf("unbound identifier: %s", name),
	}
}

// NewNonExhaustiveMatchError reports a match missing coverage for one or
// more union variants (spec.md §4.4, §8 S6).
func NewNonExhaustiveMatchError(pos string, missing []string) *CheckError {
	msg := "non-exhaustive match"
	if len(missing) > 0 {
		msg = fmt.Sprintf("non-exhaustive match: missing variant(s) %v", missing)
	}
	return &CheckError{
		Kind:       KindNonExhaustive,
		Pos:        pos,
		Message:    msg,
		Suggestion: "add the missing case(s) or a wildcard `_`",
	}
}

// NewNotInstantiableError reports an Instance constraint whose scheme
// could not be instantiated (e.g. referencing an unknown constructor).
func NewNotInstantiableError(pos, name string) *CheckError {
	return &CheckError{
		Kind:    KindNotInstantiable,
		Pos:     pos,
		Message: fmt.Sprintf("%s is not instantiable", name),
	}
}

// ErrorList aggregates multiple CheckErrors (spec.md §7: "Collector and
// solver errors are accumulated, not thrown").
type ErrorList []*CheckError

func (e ErrorList) Error() string {
	if len(e) == 0 {
		return "no errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msg := fmt.Sprintf("%d type errors:", len(e))
	for i, err := range e {
		msg += fmt.Sprintf("\n[%d] %s", i+1, err.Error())
	}
	return msg
}
