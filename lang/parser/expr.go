package parser

import (
	"github.com/mna/talus/lang/ast"
	"github.com/mna/talus/lang/token"
)

const maxArgs = 255

func (p *parser) expression() ast.Expr {
	return p.assignment()
}

// assignment implements:
//
//	assignment → (call ".")? IDENT "=" assignment | logic_or
//
// by parsing the left-hand side as a full expression first, then checking
// whether it is followed by '=' and whether the parsed expression is a
// valid assignment target, per §4.1's edge-case policy.
func (p *parser) assignment() ast.Expr {
	left := p.or()

	if p.check(token.EQ) {
		eq := p.advance()
		value := p.assignment()

		switch t := left.(type) {
		case *ast.IdentExpr:
			return &ast.AssignExpr{Name: t.Name, Value: value, Ln: t.Ln}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: t.Object, Name: t.Name, Value: value, Ln: t.Ln}
		default:
			p.errorAt(eq.Line, "Invalid assignment target.")
			return left
		}
	}
	return left
}

func (p *parser) or() ast.Expr {
	left := p.and()
	for p.check(token.OR) {
		op := p.advance()
		right := p.and()
		left = &ast.LogicalExpr{Left: left, Op: token.OR, Right: right, Ln: op.Line}
	}
	return left
}

func (p *parser) and() ast.Expr {
	left := p.equality()
	for p.check(token.AND) {
		op := p.advance()
		right := p.equality()
		left = &ast.LogicalExpr{Left: left, Op: token.AND, Right: right, Ln: op.Line}
	}
	return left
}

func (p *parser) equality() ast.Expr {
	left := p.comparison()
	for p.check(token.BANG_EQ) || p.check(token.EQ_EQ) {
		op := p.advance()
		right := p.comparison()
		left = &ast.BinaryExpr{Left: left, Op: op.Kind, Right: right, Ln: op.Line}
	}
	return left
}

func (p *parser) comparison() ast.Expr {
	left := p.term()
	for p.check(token.LT) || p.check(token.LT_EQ) || p.check(token.GT) || p.check(token.GT_EQ) {
		op := p.advance()
		right := p.term()
		left = &ast.BinaryExpr{Left: left, Op: op.Kind, Right: right, Ln: op.Line}
	}
	return left
}

func (p *parser) term() ast.Expr {
	left := p.factor()
	for p.check(token.PLUS) || p.check(token.MINUS) {
		op := p.advance()
		right := p.factor()
		left = &ast.BinaryExpr{Left: left, Op: op.Kind, Right: right, Ln: op.Line}
	}
	return left
}

func (p *parser) factor() ast.Expr {
	left := p.unary()
	for p.check(token.STAR) || p.check(token.SLASH) || p.check(token.PERCENT) {
		op := p.advance()
		right := p.unary()
		left = &ast.BinaryExpr{Left: left, Op: op.Kind, Right: right, Ln: op.Line}
	}
	return left
}

func (p *parser) unary() ast.Expr {
	if p.check(token.BANG) || p.check(token.MINUS) {
		op := p.advance()
		operand := p.unary()
		return &ast.UnaryExpr{Op: op.Kind, Operand: operand, Ln: op.Line}
	}
	return p.call()
}

// call implements: call → primary ( "(" args? ")" | "." IDENT )*
func (p *parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.check(token.LPAREN):
			lp := p.advance()
			expr = p.finishCall(expr, lp.Line)
		case p.check(token.DOT):
			p.advance()
			name := p.consume(token.IDENT, "Expected property name after '.'.")
			expr = &ast.GetExpr{Object: expr, Name: name.Lexeme, Ln: name.Line}
		default:
			return expr
		}
	}
}

func (p *parser) finishCall(callee ast.Expr, line int) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.cur().Line, "Can't have more than %d arguments.", maxArgs)
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expected ')' after arguments.")
	return &ast.CallExpr{Callee: callee, Args: args, Ln: line}
}

func (p *parser) primary() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case token.FALSE:
		p.advance()
		return &ast.LiteralExpr{Value: false, Ln: tok.Line}
	case token.TRUE:
		p.advance()
		return &ast.LiteralExpr{Value: true, Ln: tok.Line}
	case token.NIL:
		p.advance()
		return &ast.LiteralExpr{Value: nil, Ln: tok.Line}
	case token.NUMBER, token.STRING:
		p.advance()
		return &ast.LiteralExpr{Value: tok.Literal, Ln: tok.Line}
	case token.THIS:
		p.advance()
		return &ast.ThisExpr{Ln: tok.Line}
	case token.SUPER:
		p.advance()
		p.consume(token.DOT, "Expected '.' after 'super'.")
		name := p.consume(token.IDENT, "Expected superclass method name.")
		return &ast.SuperExpr{Method: name.Lexeme, Ln: tok.Line}
	case token.IDENT:
		p.advance()
		return &ast.IdentExpr{Name: tok.Lexeme, Ln: tok.Line}
	case token.LPAREN:
		p.advance()
		inner := p.expression()
		p.consume(token.RPAREN, "Expected ')' after expression.")
		return &ast.GroupingExpr{Inner: inner, Ln: tok.Line}
	}

	p.errorAt(tok.Line, "Expected expression.")
	// don't loop forever on a token that can never start an expression
	if !p.atEnd() {
		p.advance()
	}
	return &ast.LiteralExpr{Value: nil, Ln: tok.Line}
}
