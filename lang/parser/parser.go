// Package parser implements the recursive-descent parser that turns a
// token sequence into an *ast.Program, following the grammar of §4.1 of
// the language specification.
package parser

import (
	"github.com/mna/talus/lang/ast"
	"github.com/mna/talus/lang/scanner"
	"github.com/mna/talus/lang/token"
)

// Parse parses toks (produced by the caller — typically via
// scanner.ScanTokens) into an *ast.Program. The error, if non-nil, is
// guaranteed to be a *scanner.ErrorList, and parsing still returns every
// statement it managed to recover, so callers may inspect partial results.
func Parse(toks []token.Token) (*ast.Program, error) {
	p := &parser{toks: toks}
	prog := &ast.Program{}
	for !p.atEnd() {
		if st := p.declaration(); st != nil {
			prog.Stmts = append(prog.Stmts, st)
		}
	}
	return prog, p.errs.Err()
}

// ParseSource scans and parses src in one step.
func ParseSource(src []byte) (*ast.Program, error) {
	toks, err := scanner.ScanTokens(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

type parser struct {
	toks []token.Token
	pos  int
	errs scanner.ErrorList
}

func (p *parser) cur() token.Token  { return p.toks[p.pos] }
func (p *parser) atEnd() bool       { return p.cur().Kind == token.EOF }
func (p *parser) check(k token.Kind) bool {
	return !p.atEnd() && p.cur().Kind == k
}

func (p *parser) advance() token.Token {
	t := p.cur()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

// match consumes and returns true if the current token is one of kinds.
func (p *parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// consume requires the current token to be k, advances past it, or records
// msg as an error at the current line and returns the zero Token.
func (p *parser) consume(k token.Kind, msg string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.errorAt(p.cur().Line, msg)
	return token.Token{}
}

func (p *parser) errorAt(line int, format string, args ...any) {
	p.errs.Add(line, format, args...)
}

// synchronize discards tokens until it finds a likely statement boundary,
// per §4.1's error recovery policy.
func (p *parser) synchronize() {
	for !p.atEnd() {
		if p.toks[p.pos-1].Kind == token.SEMI {
			return
		}
		switch p.cur().Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
