// Package enumvalidator reports string literals assigned to struct fields whose
// type is a string enum, i.e. a named string type with declared constants.
package enumvalidator

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

var Analyzer = &analysis.Analyzer{
	Name:     "enumvalidator",
	Doc:      "reports string literals assigned to enum-typed struct fields",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	ins := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	enums := map[*types.Named]bool{}

	filter := []ast.Node{(*ast.AssignStmt)(nil), (*ast.KeyValueExpr)(nil)}
	ins.Preorder(filter, func(n ast.Node) {
		switch n := n.(type) {
		case *ast.AssignStmt:
			if len(n.Lhs) != len(n.Rhs) {
				return
			}
			for i, lhs := range n.Lhs {
				if sel, ok := lhs.(*ast.SelectorExpr); ok {
					check(pass, enums, sel.Sel, n.Rhs[i])
				}
			}
		case *ast.KeyValueExpr:
			if key, ok := n.Key.(*ast.Ident); ok {
				check(pass, enums, key, n.Value)
			}
		}
	})
	return nil, nil
}

func check(pass *analysis.Pass, enums map[*types.Named]bool, field *ast.Ident, value ast.Expr) {
	lit, ok := ast.Unparen(value).(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return
	}
	v, ok := pass.TypesInfo.ObjectOf(field).(*types.Var)
	if !ok || !v.IsField() {
		return
	}
	named, ok := types.Unalias(v.Type()).(*types.Named)
	if !ok || !isEnum(enums, named) {
		return
	}
	pass.Reportf(lit.Pos(), "enum field %s assigned string literal %s, use a %s constant",
		field.Name, lit.Value, named.Obj().Name())
}

func isEnum(cache map[*types.Named]bool, named *types.Named) bool {
	if known, ok := cache[named]; ok {
		return known
	}
	basic, ok := named.Underlying().(*types.Basic)
	if !ok || basic.Kind() != types.String || named.Obj().Pkg() == nil {
		cache[named] = false
		return false
	}

	scope := named.Obj().Pkg().Scope()
	found := false
	for _, name := range scope.Names() {
		if c, ok := scope.Lookup(name).(*types.Const); ok && types.Identical(c.Type(), named) {
			found = true
			break
		}
	}
	cache[named] = found
	return found
}
