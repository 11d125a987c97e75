package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/talus/lang/interp"
	"github.com/mna/talus/lang/parser"
)

// Run reads the single named source file, interprets it, and prints its
// accumulated output (§6 of the driver contract).
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	return RunSource(stdio, src)
}

// RunSource runs src through scan → parse → evaluate and writes the result
// (or a classified error message) to stdio, mirroring the three error
// prefixes the driver contract specifies.
func RunSource(stdio mainer.Stdio, src []byte) error {
	prog, err := parser.ParseSource(src)
	if err != nil {
		if prog == nil {
			fmt.Fprintf(stdio.Stderr, "Scanning error(s):\n%s\n", err)
		} else {
			fmt.Fprintf(stdio.Stderr, "Parsing error(s):\n%s\n", err)
		}
		return err
	}

	out, rerr := interp.New().Interpret(prog)
	if out != "" {
		fmt.Fprintln(stdio.Stdout, out)
	}
	if rerr != nil {
		fmt.Fprintf(stdio.Stderr, "Runtime error: %s\n", rerr)
		return rerr
	}
	return nil
}
