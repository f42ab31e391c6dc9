package diagnostics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
)

var (
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// Reporter accumulates diagnostics across a compilation unit and prints
// them sorted by source location. fatih/color sets color.NoColor from its
// own isatty check of os.Stdout; Reporter does not check the writer it
// prints to.
type Reporter struct {
	diags []Diagnostic
}

func NewReporter() *Reporter {
	return &Reporter{}
}

func (r *Reporter) Add(d Diagnostic) {
	r.diags = append(r.diags, d)
}

func (r *Reporter) AddAll(ds []Diagnostic) {
	r.diags = append(r.diags, ds...)
}

func (r *Reporter) Empty() bool {
	return len(r.diags) == 0
}

func (r *Reporter) Count() int {
	return len(r.diags)
}

// Sorted returns diagnostics ordered by location string, stable on ties.
func (r *Reporter) Sorted() []Diagnostic {
	out := make([]Diagnostic, len(r.diags))
	copy(out, r.diags)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Location < out[j].Location
	})
	return out
}

// Print renders every diagnostic to w, sorted by location.
func (r *Reporter) Print(w io.Writer) {
	for _, d := range r.Sorted() {
		fmt.Fprintln(w, format(d))
	}
}

func format(d Diagnostic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s", red("error["+string(d.Kind)+"]"), cyan(d.Location), d.Primary)
	for _, s := range d.Secondary {
		fmt.Fprintf(&b, "\n  %s %s", dim("-"), s)
	}
	if d.Suggestion != "" {
		fmt.Fprintf(&b, "\n  %s %s", yellow("help:"), d.Suggestion)
	}
	return b.String()
}
