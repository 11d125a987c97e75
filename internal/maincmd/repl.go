package maincmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/mna/talus/lang/interp"
	"github.com/mna/talus/lang/parser"
)

// Repl runs the interactive read-eval-print loop: one line of source at a
// time, against a single Interp so variables and functions declared on
// earlier lines stay in scope (§6 — the REPL is a pure shell around
// parse/evaluate, not a separate execution mode).
func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, args []string) error {
	it := interp.New()
	scan := bufio.NewScanner(stdio.Stdin)

	for {
		fmt.Fprint(stdio.Stdout, "> ")
		if !scan.Scan() {
			fmt.Fprintln(stdio.Stdout)
			return scan.Err()
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line := scan.Text()
		if line == "" {
			continue
		}

		prog, err := parser.ParseSource([]byte(line))
		if err != nil {
			if prog == nil {
				fmt.Fprintf(stdio.Stderr, "Scanning error(s):\n%s\n", err)
			} else {
				fmt.Fprintf(stdio.Stderr, "Parsing error(s):\n%s\n", err)
			}
			continue
		}

		out, rerr := it.Interpret(prog)
		if out != "" {
			fmt.Fprintln(stdio.Stdout, out)
		}
		if rerr != nil {
			fmt.Fprintf(stdio.Stderr, "Runtime error: %s\n", rerr)
		}
	}
}
