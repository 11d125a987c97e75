package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/talus/lang/ast"
	"github.com/mna/talus/lang/parser"
)

// Parse runs the scanner and parser phases over each named file and prints
// the resulting syntax tree.
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	printer := ast.Printer{Output: stdio.Stdout}

	var failed bool
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			failed = true
			continue
		}
		prog, err := parser.ParseSource(src)
		if prog != nil {
			if perr := printer.Print(prog); perr != nil {
				fmt.Fprintln(stdio.Stderr, perr)
				return perr
			}
		}
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "Parsing error(s):\n%s\n", err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("parse: one or more files failed to parse")
	}
	return nil
}
