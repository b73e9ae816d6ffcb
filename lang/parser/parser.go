// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package parser implements a recursive-descent parser for MiniLang.
//
// Grammar, precedence from low to high:
//
//	program    := statement*
//	statement  := print | assign | if | while | block
//	print      := 'print' '(' expr ')' ';'
//	assign     := IDENT '=' expr ';'
//	if         := 'if' '(' expr ')' block ('else' block)?
//	while      := 'while' '(' expr ')' block
//	block      := '{' statement* '}'
//	expr       := equality
//	equality   := comparison (('=='|'!=') comparison)*
//	comparison := term (('<'|'>'|'<='|'>=') term)*
//	term       := factor (('+'|'-') factor)*
//	factor     := unary (('*'|'/'|'%') unary)*
//	unary      := '+' unary | '-' unary | primary
//	primary    := INT | IDENT | '(' expr ')'
//
// The parser keeps one token of lookahead and stops at the first error.
package parser

import (
	"fmt"

	"github.com/probechain/minilang/lang/ast"
	"github.com/probechain/minilang/lang/lexer"
	"github.com/probechain/minilang/lang/token"
	"github.com/probechain/minilang/lang/trace"
)

// Error is a syntax error. Got is the offending token.
type Error struct {
	Pos token.Position
	Got token.Token
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error: line %d: %s", e.Pos.Line, e.Msg)
}

// Parser holds the mutable state for a single parse run.
type Parser struct {
	lex    *lexer.Lexer
	tracer trace.Tracer
	cur    token.Token // current token
}

// Parse is the public entry point. It tokenises source lazily, runs the
// parser and returns the program root. Lexical errors are returned unchanged.
func Parse(filename, source string, tr trace.Tracer) (*ast.Block, error) {
	tr = trace.OrNop(tr)
	lex := lexer.New(filename, source)
	lex.SetTracer(tr)

	p := &Parser{lex: lex, tracer: tr}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseProgram()
}

// ---------------------------------------------------------------------------
// Token navigation helpers
// ---------------------------------------------------------------------------

func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// eat consumes the current token if it has the expected type.
func (p *Parser) eat(typ token.Type) (token.Token, error) {
	tok := p.cur
	if tok.Type != typ {
		return tok, p.errorf("expected %s, got %s", describe(typ), describeTok(tok))
	}
	return tok, p.advance()
}

func (p *Parser) curIs(typ token.Type) bool { return p.cur.Type == typ }

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &Error{Pos: p.cur.Pos, Got: p.cur, Msg: fmt.Sprintf(format, args...)}
}

func describe(typ token.Type) string {
	switch typ {
	case token.EOF, token.INT, token.IDENT:
		return typ.String()
	}
	return "'" + typ.String() + "'"
}

func describeTok(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "EOF"
	case token.INT, token.IDENT:
		return fmt.Sprintf("%s (%q)", tok.Type, tok.Literal)
	}
	return "'" + tok.Literal + "'"
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

func (p *Parser) parseProgram() (*ast.Block, error) {
	root := &ast.Block{Pos: p.cur.Pos}
	for !p.curIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		root.Stmts = append(root.Stmts, stmt)
	}
	return root, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.cur.Type {
	case token.PRINT:
		return p.parsePrint()
	case token.IDENT:
		return p.parseAssign()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.LBRACE:
		return p.parseBlock()
	}
	return nil, p.errorf("unexpected %s at start of statement", describeTok(p.cur))
}

// parsePrint parses "print ( expr ) ;".
func (p *Parser) parsePrint() (ast.Stmt, error) {
	tok := p.cur
	p.tracer.Node("print", tok.Pos)
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.eat(token.LPAREN); err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.eat(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.Print{Pos: tok.Pos, Value: val}, nil
}

// parseAssign parses "IDENT = expr ;".
func (p *Parser) parseAssign() (ast.Stmt, error) {
	tok := p.cur
	p.tracer.Node("assign "+tok.Literal, tok.Pos)
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.eat(token.ASSIGN); err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.Assign{Pos: tok.Pos, Name: tok.Literal, Value: val}, nil
}

// parseCondition parses "( expr )" after if/while.
func (p *Parser) parseCondition() (ast.Expr, error) {
	if _, err := p.eat(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.RPAREN); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseIf parses "if ( expr ) block [ else block ]".
func (p *Parser) parseIf() (ast.Stmt, error) {
	tok := p.cur
	p.tracer.Node("if", tok.Pos)
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{Pos: tok.Pos, Cond: cond, Then: then}
	if p.curIs(token.ELSE) {
		p.tracer.Node("else", p.cur.Pos)
		if err := p.advance(); err != nil {
			return nil, err
		}
		if stmt.Else, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// parseWhile parses "while ( expr ) block".
func (p *Parser) parseWhile() (ast.Stmt, error) {
	tok := p.cur
	p.tracer.Node("while", tok.Pos)
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Pos: tok.Pos, Cond: cond, Body: body}, nil
}

// parseBlock parses "{ statement* }".
func (p *Parser) parseBlock() (*ast.Block, error) {
	tok, err := p.eat(token.LBRACE)
	if err != nil {
		return nil, err
	}
	p.tracer.Node("block", tok.Pos)
	blk := &ast.Block{Pos: tok.Pos}
	for !p.curIs(token.RBRACE) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		blk.Stmts = append(blk.Stmts, stmt)
	}
	if _, err := p.eat(token.RBRACE); err != nil {
		return nil, err
	}
	return blk, nil
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseEquality()
}

// parseLeftAssoc folds operand (op operand)* to the left for the operators in
// ops, producing ((a op b) op c).
func (p *Parser) parseLeftAssoc(operand func() (ast.Expr, error), ops ...token.Type) (ast.Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for isOneOf(p.cur.Type, ops) {
		tok := p.cur
		p.tracer.Node("binary "+tok.Type.String(), tok.Pos)
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Pos: tok.Pos, Op: tok.Type, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseComparison, token.EQ, token.NEQ)
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseTerm, token.LT, token.GT, token.LTE, token.GTE)
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseFactor, token.PLUS, token.MINUS)
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	return p.parseLeftAssoc(p.parseUnary, token.STAR, token.SLASH, token.PERCENT)
}

// parseUnary handles prefix + and -. Unary plus returns its operand; unary
// minus becomes (0 - operand).
func (p *Parser) parseUnary() (ast.Expr, error) {
	tok := p.cur
	switch tok.Type {
	case token.PLUS:
		p.tracer.Node("unary +", tok.Pos)
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseUnary()
	case token.MINUS:
		p.tracer.Node("unary -", tok.Pos)
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		zero := &ast.IntLiteral{Pos: tok.Pos, Value: 0}
		return &ast.Binary{Pos: tok.Pos, Op: token.MINUS, Left: zero, Right: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur
	switch tok.Type {
	case token.INT:
		p.tracer.Node("int "+tok.Literal, tok.Pos)
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.IntLiteral{Pos: tok.Pos, Value: tok.Value}, nil
	case token.IDENT:
		p.tracer.Node("variable "+tok.Literal, tok.Pos)
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.Variable{Pos: tok.Pos, Name: tok.Literal}, nil
	case token.LPAREN:
		p.tracer.Node("group", tok.Pos)
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.errorf("unexpected %s in expression", describeTok(tok))
}

func isOneOf(typ token.Type, set []token.Type) bool {
	for _, t := range set {
		if typ == t {
			return true
		}
	}
	return false
}
