package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes an indented textual tree of a Program or any Node to
// Output, one line per node, annotated with the node's source line. It is
// used by the `parse` CLI subcommand and by tests that assert on tree
// shape without caring about exact formatting.
type Printer struct {
	Output io.Writer
}

// Print walks n, a *Program or any Node, and writes its indented
// description to p.Output.
func (p *Printer) Print(n any) error {
	pp := &printer{w: p.Output}
	if prog, ok := n.(*Program); ok {
		for _, s := range prog.Stmts {
			Walk(pp, s)
		}
		return pp.err
	}
	nd, _ := n.(Node)
	Walk(pp, nd)
	return pp.err
}

type printer struct {
	w     io.Writer
	depth int
	err   error
}

func (pp *printer) Visit(n Node, dir VisitDirection) Visitor {
	if pp.err != nil {
		return nil
	}
	if dir == VisitExit {
		pp.depth--
		return pp
	}
	_, err := fmt.Fprintf(pp.w, "%s%s (line %d)\n", strings.Repeat("  ", pp.depth), describe(n), n.Line())
	if err != nil {
		pp.err = err
		return nil
	}
	pp.depth++
	return pp
}

func describe(n Node) string {
	switch n := n.(type) {
	case *LiteralExpr:
		return fmt.Sprintf("literal %v", n.Value)
	case *UnaryExpr:
		return "unary " + n.Op.String()
	case *BinaryExpr:
		return "binary " + n.Op.String()
	case *LogicalExpr:
		return "logical " + n.Op.String()
	case *IdentExpr:
		return "ident " + n.Name
	case *GroupingExpr:
		return "group"
	case *AssignExpr:
		return "assign " + n.Name
	case *CallExpr:
		return fmt.Sprintf("call (%d args)", len(n.Args))
	case *GetExpr:
		return "get ." + n.Name
	case *SetExpr:
		return "set ." + n.Name
	case *ThisExpr:
		return "this"
	case *SuperExpr:
		return "super." + n.Method
	case *VarStmt:
		return "var " + n.Name
	case *ExprStmt:
		return "expr stmt"
	case *PrintStmt:
		return "print"
	case *BlockStmt:
		return fmt.Sprintf("block (%d stmts)", len(n.Stmts))
	case *IfStmt:
		return "if"
	case *WhileStmt:
		return "while"
	case *ReturnStmt:
		return "return"
	case *FunStmt:
		return fmt.Sprintf("fun %s (%d params)", n.Name, len(n.Params))
	case *ClassStmt:
		return "class " + n.Name
	default:
		return fmt.Sprintf("%T", n)
	}
}
