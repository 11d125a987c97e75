package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/talus/lang/scanner"
)

// Tokenize runs the scanner phase only over each named file and prints the
// resulting token stream, one token per line.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	var failed bool
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			failed = true
			continue
		}
		toks, err := scanner.ScanTokens(src)
		for _, tok := range toks {
			fmt.Fprintf(stdio.Stdout, "%d: %s", tok.Line, tok.Kind)
			if tok.Literal != nil {
				fmt.Fprintf(stdio.Stdout, " %v", tok.Literal)
			}
			fmt.Fprintln(stdio.Stdout)
		}
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "Scanning error(s):\n%s\n", err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("tokenize: one or more files failed to scan")
	}
	return nil
}
