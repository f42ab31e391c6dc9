// Package dtree compiles a TypedMatch's arms into a decision tree,
// avoiding the redundant re-tests a naive arm-by-arm lowering would emit
// (spec.md §4.4 "Decision-tree compilation", GLOSSARY "Decision tree").
package dtree

import (
	"fmt"

	"github.com/taylorlang/taylorc/internal/typedast"
	"github.com/taylorlang/taylorc/internal/types"
)

// DecisionTree is the compiled form of a TypedMatch's cases.
type DecisionTree interface {
	isDecisionTree()
	String() string
}

// Binding records that identifier pattern Name, at arm-compile time,
// refers to the scrutinee's field reached by following Path (a sequence
// of constructor-argument indices from the match root). Type is the
// identifier pattern's own type, needed by MatchLower to pick the
// width-correct store when binding the value into a local slot.
type Binding struct {
	Name string
	Path []int
	Type types.Type
}

// LeafNode is a matched arm with a body to evaluate.
type LeafNode struct {
	ArmIndex int
	Body     typedast.TypedNode
	Guard    typedast.TypedNode // nil if the arm is unguarded
	Bindings []Binding
}

func (l *LeafNode) isDecisionTree() {}
func (l *LeafNode) String() string  { return fmt.Sprintf("Leaf(arm=%d)", l.ArmIndex) }

// FailNode is reached when no arm matches; MatchLower lowers it to a
// MatchError throw (spec.md §6 "Runtime error categories", RT-002-equivalent).
type FailNode struct{}

func (f *FailNode) isDecisionTree() {}
func (f *FailNode) String() string  { return "Fail" }

// SwitchNode dispatches on the discriminator found by following Path
// into the scrutinee (e.g. [0,1] = first field of the value at field 1).
// Constructor distinguishes a variant-name dispatch (instanceof/checkcast
// per spec.md §4.4) from a literal-value comparison; a single switch
// column is never a mix of the two, since the scrutinee at that point
// has one static type.
type SwitchNode struct {
	Path        []int
	Cases       map[interface{}]DecisionTree
	Default     DecisionTree
	Constructor bool
}

func (s *SwitchNode) isDecisionTree() {}
func (s *SwitchNode) String() string {
	return fmt.Sprintf("Switch(path=%v, cases=%d, default=%v)", s.Path, len(s.Cases), s.Default != nil)
}

// DecisionTreeCompiler compiles a TypedMatch's cases into a DecisionTree.
type DecisionTreeCompiler struct {
	cases []typedast.TypedMatchCase
}

func NewDecisionTreeCompiler(cases []typedast.TypedMatchCase) *DecisionTreeCompiler {
	return &DecisionTreeCompiler{cases: cases}
}

// Compile builds the decision tree from the match's cases.
func (c *DecisionTreeCompiler) Compile() DecisionTree {
	var matrix []matchRow
	for i, mc := range c.cases {
		pattern, guard := unwrapGuard(mc.Pattern)
		matrix = append(matrix, matchRow{
			patterns: []typedast.TypedPattern{pattern},
			paths:    [][]int{{}},
			armIndex: i,
			guard:    guard,
			body:     mc.Body,
		})
	}
	return c.compileMatrix(matrix, []int{})
}

// leafFrom finalizes row into a LeafNode, recording a Binding for every
// identifier pattern still outstanding in the row (a wildcard/identifier
// default row may carry one or more unconsumed columns).
func leafFrom(row matchRow) *LeafNode {
	bindings := append([]Binding{}, row.bindings...)
	for i, pat := range row.patterns {
		if idp, ok := pat.(*typedast.TypedIdentifierPattern); ok {
			bindings = append(bindings, Binding{Name: idp.Name, Path: row.paths[i], Type: idp.Type})
		}
	}
	return &LeafNode{ArmIndex: row.armIndex, Body: row.body, Guard: row.guard, Bindings: bindings}
}

// unwrapGuard splits a TypedGuardPattern into its inner pattern and the
// guard expression; all other patterns pass through with a nil guard.
func unwrapGuard(p typedast.TypedPattern) (typedast.TypedPattern, typedast.TypedNode) {
	if g, ok := p.(*typedast.TypedGuardPattern); ok {
		return g.Inner, g.Cond
	}
	return p, nil
}

type matchRow struct {
	patterns []typedast.TypedPattern
	paths    [][]int // paths[i] is how to reach patterns[i] from the match root
	armIndex int
	guard    typedast.TypedNode
	body     typedast.TypedNode
	bindings []Binding // identifier bindings already resolved by earlier specialization
}

func (c *DecisionTreeCompiler) compileMatrix(matrix []matchRow, path []int) DecisionTree {
	if len(matrix) == 0 {
		return &FailNode{}
	}

	if c.isDefaultRow(matrix[0]) {
		return leafFrom(matrix[0])
	}

	colIndex := 0
	if colIndex >= len(matrix[0].patterns) {
		return leafFrom(matrix[0])
	}

	return c.buildSwitch(matrix, path, colIndex)
}

func (c *DecisionTreeCompiler) isDefaultRow(row matchRow) bool {
	for _, pat := range row.patterns {
		switch pat.(type) {
		case *typedast.TypedWildcardPattern, *typedast.TypedIdentifierPattern:
			continue
		default:
			return false
		}
	}
	return true
}

func (c *DecisionTreeCompiler) buildSwitch(matrix []matchRow, path []int, colIndex int) DecisionTree {
	cases := make(map[interface{}][]matchRow)
	var defaultRows []matchRow

	for _, row := range matrix {
		if colIndex >= len(row.patterns) {
			defaultRows = append(defaultRows, row)
			continue
		}

		switch p := row.patterns[colIndex].(type) {
		case *typedast.TypedLiteralPattern:
			cases[p.Value] = append(cases[p.Value], row)
		case *typedast.TypedConstructorPattern:
			cases[p.Name] = append(cases[p.Name], row)
		case *typedast.TypedWildcardPattern, *typedast.TypedIdentifierPattern:
			defaultRows = append(defaultRows, row)
		default:
			defaultRows = append(defaultRows, row)
		}
	}

	if len(cases) == 0 && len(defaultRows) > 0 {
		return leafFrom(c.specializeRows(defaultRows, colIndex)[0])
	}

	constructorSwitch := false
	for _, rows := range cases {
		_, constructorSwitch = rows[0].patterns[colIndex].(*typedast.TypedConstructorPattern)
		break
	}
	switchNode := &SwitchNode{
		Path:        append(append([]int{}, path...), colIndex),
		Cases:       make(map[interface{}]DecisionTree),
		Constructor: constructorSwitch,
	}

	for key, rows := range cases {
		specialized := c.specializeRows(rows, colIndex)
		switchNode.Cases[key] = c.compileMatrix(specialized, switchNode.Path)
	}

	if len(defaultRows) > 0 {
		specialized := c.specializeRows(defaultRows, colIndex)
		switchNode.Default = c.compileMatrix(specialized, switchNode.Path)
	} else {
		switchNode.Default = &FailNode{}
	}

	return switchNode
}

// specializeRows removes the matched column, expanding constructor
// patterns into their subpatterns (pattern matrix specialization) and
// recording a Binding for any identifier pattern the column held, since
// that column will not appear in any later matrix.
func (c *DecisionTreeCompiler) specializeRows(rows []matchRow, colIndex int) []matchRow {
	var result []matchRow
	for _, row := range rows {
		newPatterns := make([]typedast.TypedPattern, 0, len(row.patterns))
		newPaths := make([][]int, 0, len(row.patterns))
		bindings := append([]Binding{}, row.bindings...)

		for i, pat := range row.patterns {
			if i == colIndex {
				switch p := pat.(type) {
				case *typedast.TypedConstructorPattern:
					for j, sp := range p.Subpatterns {
						newPatterns = append(newPatterns, sp)
						newPaths = append(newPaths, append(append([]int{}, row.paths[i]...), j))
					}
				case *typedast.TypedIdentifierPattern:
					bindings = append(bindings, Binding{Name: p.Name, Path: row.paths[i], Type: p.Type})
				}
				continue
			}
			newPatterns = append(newPatterns, pat)
			newPaths = append(newPaths, row.paths[i])
		}

		result = append(result, matchRow{
			patterns: newPatterns,
			paths:    newPaths,
			armIndex: row.armIndex,
			guard:    row.guard,
			body:     row.body,
			bindings: bindings,
		})
	}
	return result
}

// CanCompileToTree reports whether a match has enough testable patterns
// (literals/constructors) to benefit from decision-tree compilation over
// naive arm-by-arm lowering.
func CanCompileToTree(cases []typedast.TypedMatchCase) bool {
	count := 0
	for _, mc := range cases {
		pattern, _ := unwrapGuard(mc.Pattern)
		switch pattern.(type) {
		case *typedast.TypedLiteralPattern, *typedast.TypedConstructorPattern:
			count++
		}
	}
	return count >= 2
}
