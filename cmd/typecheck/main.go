// Command typecheck runs the Collector/Solver pipeline against a handful
// of manually-constructed ASTs corresponding to spec.md §8's end-to-end
// scenarios, printing the inferred types or diagnostics for each. There
// is no lexer/parser in this module; programs are built directly as
// internal/ast trees, the contract the pipeline consumes.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/taylorlang/taylorc/internal/ast"
	"github.com/taylorlang/taylorc/internal/diagnostics"
	"github.com/taylorlang/taylorc/internal/pipeline"
	"github.com/taylorlang/taylorc/internal/typedast"
	"github.com/taylorlang/taylorc/internal/types"
)

var (
	heading = color.New(color.FgCyan, color.Bold).SprintFunc()
	ok      = color.New(color.FgGreen).SprintFunc()
)

func main() {
	fmt.Println(heading("TaylorLang type inference demo"))
	fmt.Println()

	runScenario("S1: identity lambda", identityLambdaProgram())
	runScenario("S3: generic Option", genericOptionProgram())
	runScenario("S4: try pass-through", tryPassThroughProgram())
}

func runScenario(title string, prog *ast.Program) {
	fmt.Println(heading(title))

	factory := types.NewTypeVarFactory()
	res := pipeline.Run(factory, pipeline.Source{Program: prog, Name: title})

	if res.Ok() {
		fmt.Println(ok("ok"), "—", describe(res.Program))
	} else {
		reporter := diagnostics.NewReporter()
		reporter.AddAll(res.Diagnostics)
		reporter.Print(os.Stdout)
	}
	fmt.Println()
}

// describe renders the scheme of the run's last top-level declaration,
// the thing each scenario exists to report.
func describe(prog *typedast.TypedProgram) string {
	if len(prog.Statements) == 0 {
		return "(empty program)"
	}
	switch s := prog.Statements[len(prog.Statements)-1].(type) {
	case *typedast.TypedValDecl:
		return fmt.Sprintf("%s : %s", s.Name, s.Scheme)
	case *typedast.TypedFunctionDecl:
		return fmt.Sprintf("%s : %s", s.Name, s.Scheme)
	default:
		return "(no declaration)"
	}
}

// identityLambdaProgram builds `val f = x => x`.
func identityLambdaProgram() *ast.Program {
	return &ast.Program{Statements: []ast.Statement{
		&ast.ValDecl{
			Name: "f",
			Value: &ast.LambdaExpression{
				Params: []*ast.Param{{Name: "x"}},
				Body:   &ast.Identifier{Name: "x"},
			},
		},
	}}
}

// genericOptionProgram builds `val o = Some(42)`.
func genericOptionProgram() *ast.Program {
	return &ast.Program{Statements: []ast.Statement{
		&ast.ValDecl{
			Name: "o",
			Value: &ast.ConstructorCall{
				Name: "Some",
				Args: []ast.Expression{&ast.Literal{Kind: ast.IntLit, Value: 42}},
			},
		},
	}}
}

// tryPassThroughProgram builds spec.md §8 S4's shape (minus the
// .toUpperCase() call, which is a method-call surface form out of scope
// for this plain demo driver):
//
//	fn readFile(path: String): Result<String, IOException> = path
//	fn read(): Result<String, IOException> = try readFile("a")
func tryPassThroughProgram() *ast.Program {
	resultType := func(okName, errName string) ast.TypeExpr {
		return &ast.GenericTypeExpr{Name: "Result", Args: []ast.TypeExpr{
			&ast.PrimitiveTypeExpr{Name: okName},
			&ast.NamedTypeExpr{Name: errName},
		}}
	}

	readFile := &ast.FunctionDecl{
		Name:       "readFile",
		Params:     []*ast.Param{{Name: "path", Type: &ast.PrimitiveTypeExpr{Name: "String"}}},
		ReturnType: resultType("String", "IOException"),
		Body:       &ast.Identifier{Name: "path"},
	}

	read := &ast.FunctionDecl{
		Name:       "read",
		ReturnType: resultType("String", "IOException"),
		Body: &ast.TryExpression{
			Expr: &ast.FunctionCall{
				Callee: &ast.Identifier{Name: "readFile"},
				Args:   []ast.Expression{&ast.Literal{Kind: ast.StringLit, Value: "a"}},
			},
		},
	}

	return &ast.Program{Statements: []ast.Statement{readFile, read}}
}
