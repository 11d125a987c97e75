package parser

import (
	"github.com/mna/talus/lang/ast"
	"github.com/mna/talus/lang/token"
)

// declaration → "var" ... | "fun" ... | "class" ... | statement, with
// synchronize() invoked on error per §4.1's recovery policy.
func (p *parser) declaration() (st ast.Stmt) {
	nerr := p.errs.Len()
	defer func() {
		if p.errs.Len() > nerr {
			p.synchronize()
		}
	}()

	switch {
	case p.check(token.VAR):
		return p.varDecl()
	case p.check(token.FUN):
		p.advance()
		return p.funDecl("function")
	case p.check(token.CLASS):
		return p.classDecl()
	default:
		return p.statement()
	}
}

func (p *parser) varDecl() ast.Stmt {
	kw := p.advance() // 'var'
	name := p.consume(token.IDENT, "Expected variable name.")

	var init ast.Expr = &ast.LiteralExpr{Value: nil, Ln: kw.Line}
	if p.match(token.EQ) {
		init = p.expression()
	}
	p.consume(token.SEMI, "Expected ';' at end of statement.")
	return &ast.VarStmt{Name: name.Lexeme, Init: init, Ln: kw.Line}
}

// funDecl parses the declaration body shared by `fun NAME(...) {...}` and
// class methods (which are parsed the same way; for functions the caller
// has already consumed the leading "fun" keyword, methods have none).
func (p *parser) funDecl(kind string) *ast.FunStmt {
	name := p.consume(token.IDENT, "Expected "+kind+" name.")
	p.consume(token.LPAREN, "Expected '(' after "+kind+" name.")

	var params []string
	if !p.check(token.RPAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.cur().Line, "Can't have more than %d parameters.", maxArgs)
			}
			pname := p.consume(token.IDENT, "Expected parameter name.")
			params = append(params, pname.Lexeme)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expected ')' after parameters.")
	p.consume(token.LBRACE, "Expected '{' before "+kind+" body.")
	body := p.block()
	return &ast.FunStmt{Name: name.Lexeme, Params: params, Body: body, Ln: name.Line}
}

func (p *parser) classDecl() ast.Stmt {
	kw := p.advance() // 'class'
	name := p.consume(token.IDENT, "Expected class name.")

	var super *ast.IdentExpr
	if p.match(token.LT) {
		sname := p.consume(token.IDENT, "Expected superclass name.")
		super = &ast.IdentExpr{Name: sname.Lexeme, Ln: sname.Line}
	}

	p.consume(token.LBRACE, "Expected '{' before class body.")
	var methods []*ast.FunStmt
	for !p.check(token.RBRACE) && !p.atEnd() {
		methods = append(methods, p.funDecl("method"))
	}
	p.consume(token.RBRACE, "Expected '}' after class body.")
	return &ast.ClassStmt{Name: name.Lexeme, Superclass: super, Methods: methods, Ln: kw.Line}
}

func (p *parser) statement() ast.Stmt {
	switch {
	case p.check(token.PRINT):
		return p.printStmt()
	case p.check(token.LBRACE):
		lb := p.advance()
		return &ast.BlockStmt{Stmts: p.block(), Ln: lb.Line}
	case p.check(token.IF):
		return p.ifStmt()
	case p.check(token.WHILE):
		return p.whileStmt()
	case p.check(token.FOR):
		return p.forStmt()
	case p.check(token.RETURN):
		return p.returnStmt()
	default:
		return p.exprStmt()
	}
}

func (p *parser) printStmt() ast.Stmt {
	kw := p.advance()
	expr := p.expression()
	p.consume(token.SEMI, "Expected ';' at end of statement.")
	return &ast.PrintStmt{Expr: expr, Ln: kw.Line}
}

func (p *parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMI, "Expected ';' at end of statement.")
	return &ast.ExprStmt{Expr: expr}
}

// block parses a "{" declaration* "}" sequence; the opening "{" has already
// been consumed by the caller.
func (p *parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RBRACE) && !p.atEnd() {
		if st := p.declaration(); st != nil {
			stmts = append(stmts, st)
		}
	}
	p.consume(token.RBRACE, "Expected '}' after block.")
	return stmts
}

func (p *parser) ifStmt() ast.Stmt {
	kw := p.advance()
	p.consume(token.LPAREN, "Expected '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RPAREN, "Expected ')' after condition.")

	then := p.statement()
	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els, Ln: kw.Line}
}

func (p *parser) whileStmt() ast.Stmt {
	kw := p.advance()
	p.consume(token.LPAREN, "Expected '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RPAREN, "Expected ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Cond: cond, Body: body, Ln: kw.Line}
}

// forStmt parses `for (init; cond; incr) body` and desugars it to
//
//	{ init; while (cond) { body; incr; } }
//
// per §4.1, using the inner-block form for the increment so that a
// continue-like construct would see the right scope if ever added (§9).
func (p *parser) forStmt() ast.Stmt {
	kw := p.advance()
	p.consume(token.LPAREN, "Expected '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.SEMI):
		init = nil
	case p.check(token.VAR):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.SEMI) {
		cond = p.expression()
	}
	p.consume(token.SEMI, "Expected ';' after loop condition.")

	var incr ast.Expr
	if !p.check(token.RPAREN) {
		incr = p.expression()
	}
	p.consume(token.RPAREN, "Expected ')' after for clauses.")

	body := p.statement()

	if cond == nil {
		cond = &ast.LiteralExpr{Value: true, Ln: kw.Line}
	}
	if incr != nil {
		bodyBlock, ok := body.(*ast.BlockStmt)
		if !ok {
			bodyBlock = &ast.BlockStmt{Stmts: []ast.Stmt{body}, Ln: kw.Line}
		}
		bodyBlock.Stmts = append(bodyBlock.Stmts, &ast.ExprStmt{Expr: incr})
		body = bodyBlock
	}

	loop := ast.Stmt(&ast.WhileStmt{Cond: cond, Body: body, Ln: kw.Line})
	if init == nil {
		return loop
	}
	return &ast.BlockStmt{Stmts: []ast.Stmt{init, loop}, Ln: kw.Line}
}

func (p *parser) returnStmt() ast.Stmt {
	kw := p.advance()
	var value ast.Expr = &ast.LiteralExpr{Value: nil, Ln: kw.Line}
	if !p.check(token.SEMI) {
		value = p.expression()
	}
	p.consume(token.SEMI, "Expected ';' at end of statement.")
	return &ast.ReturnStmt{Value: value, Ln: kw.Line}
}
