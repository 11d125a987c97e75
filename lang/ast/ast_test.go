package ast_test

import (
	"strings"
	"testing"

	"github.com/mna/talus/lang/ast"
	"github.com/stretchr/testify/require"
)

func TestWalkVisitsChildren(t *testing.T) {
	prog := &ast.Program{Stmts: []ast.Stmt{
		&ast.VarStmt{Name: "x", Init: &ast.LiteralExpr{Value: 1.0, Ln: 1}, Ln: 1},
		&ast.IfStmt{
			Cond: &ast.BinaryExpr{Left: &ast.IdentExpr{Name: "x", Ln: 2}, Op: 0, Right: &ast.LiteralExpr{Value: 2.0, Ln: 2}, Ln: 2},
			Then: &ast.PrintStmt{Expr: &ast.IdentExpr{Name: "x", Ln: 2}, Ln: 2},
			Ln:   2,
		},
	}}

	var visited []string
	var rec ast.VisitorFunc
	rec = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			visited = append(visited, nodeKind(n))
		}
		return rec
	}
	for _, s := range prog.Stmts {
		ast.Walk(rec, s)
	}

	require.Contains(t, visited, "VarStmt")
	require.Contains(t, visited, "IfStmt")
	require.Contains(t, visited, "PrintStmt") // the IfStmt's Then child
}

func nodeKind(n ast.Node) string {
	switch n.(type) {
	case *ast.VarStmt:
		return "VarStmt"
	case *ast.IfStmt:
		return "IfStmt"
	case *ast.PrintStmt:
		return "PrintStmt"
	default:
		return "other"
	}
}

func TestPrinterPrintsIndentedTree(t *testing.T) {
	prog := &ast.Program{Stmts: []ast.Stmt{
		&ast.VarStmt{Name: "x", Init: &ast.LiteralExpr{Value: 1.0, Ln: 1}, Ln: 1},
	}}

	var sb strings.Builder
	p := ast.Printer{Output: &sb}
	require.NoError(t, p.Print(prog))
	require.Contains(t, sb.String(), "var x (line 1)")
	require.Contains(t, sb.String(), "literal 1 (line 1)")
}
