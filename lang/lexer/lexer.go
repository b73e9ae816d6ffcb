// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package lexer implements a single-pass, no-backtracking lexer for MiniLang.
//
//   - ASCII input; whitespace and // line comments are skipped
//   - integer literals are maximal digit runs decoded to int64
//   - == != <= >= are recognised by one byte of lookahead
//   - any other character is a fatal error, there is no recovery
package lexer

import (
	"fmt"
	"strconv"

	"github.com/probechain/minilang/lang/token"
	"github.com/probechain/minilang/lang/trace"
)

// Error is a lexical error. It is fatal: the lexer stops at the first one.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error: line %d: %s", e.Pos.Line, e.Msg)
}

// Lexer holds the state for a single-pass tokenization run.
type Lexer struct {
	filename string
	input    []byte
	tracer   trace.Tracer

	// pos is the index into input of the next byte to be loaded into ch.
	// After advance(), ch == input[pos-1] and pos points one past it.
	pos  int
	line int // 1-based current line number
	col  int // 1-based current column number

	ch byte // current character; 0 when past end
}

// New creates a new Lexer for the given filename and input string.
func New(filename, input string) *Lexer {
	l := &Lexer{
		filename: filename,
		input:    []byte(input),
		tracer:   trace.Nop{},
		line:     1,
		col:      0,
	}
	l.advance() // prime l.ch with the first byte
	return l
}

// SetTracer installs tr as the receiver of token events.
func (l *Lexer) SetTracer(tr trace.Tracer) {
	l.tracer = trace.OrNop(tr)
}

// advance moves to the next byte in the input, updating line/column tracking.
// When the end of input is reached, ch is set to 0.
func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	if l.pos >= len(l.input) {
		l.ch = 0
		l.pos = len(l.input) + 1
		return
	}
	l.ch = l.input[l.pos]
	l.pos++
}

// atEnd reports whether every input byte has been consumed. A NUL byte inside
// the input is not end of input.
func (l *Lexer) atEnd() bool {
	return l.pos > len(l.input)
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{File: l.filename, Line: l.line, Column: l.col}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' || l.ch == '\v' || l.ch == '\f':
			l.advance()
		case l.ch == '/' && l.peek() == '/':
			for !l.atEnd() && l.ch != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// peek returns the byte after the current character without consuming it.
func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// NextToken scans and returns the next token from the input.
// After EOF is reached, subsequent calls continue returning EOF tokens.
func (l *Lexer) NextToken() (token.Token, error) {
	tok, err := l.scan()
	if err != nil {
		return tok, err
	}
	l.tracer.Token(tok)
	return tok, nil
}

func (l *Lexer) scan() (token.Token, error) {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()
	if l.atEnd() {
		return token.Token{Type: token.EOF, Pos: pos}, nil
	}
	ch := l.ch
	l.advance() // consume ch; from here on, l.ch is the character AFTER ch

	switch {
	case isIdentStart(ch):
		lit := l.readIdentFromFirst(ch)
		return token.Token{Type: token.LookupIdent(lit), Literal: lit, Pos: pos}, nil

	case isDigit(ch):
		lit := l.readNumberFromFirst(ch)
		val, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return token.Token{}, &Error{Pos: pos, Msg: fmt.Sprintf("integer literal %s out of range", lit)}
		}
		return token.Token{Type: token.INT, Literal: lit, Value: val, Pos: pos}, nil
	}

	// Two-character operators first, then single characters.
	if l.ch == '=' {
		var typ token.Type
		switch ch {
		case '=':
			typ = token.EQ
		case '!':
			typ = token.NEQ
		case '<':
			typ = token.LTE
		case '>':
			typ = token.GTE
		}
		if typ != token.EOF {
			l.advance()
			return token.Token{Type: typ, Literal: typ.String(), Pos: pos}, nil
		}
	}
	if typ, ok := singleChar[ch]; ok {
		return token.Token{Type: typ, Literal: typ.String(), Pos: pos}, nil
	}
	return token.Token{}, &Error{Pos: pos, Msg: fmt.Sprintf("unexpected character %q", rune(ch))}
}

var singleChar = map[byte]token.Type{
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	'%': token.PERCENT,
	'=': token.ASSIGN,
	'<': token.LT,
	'>': token.GT,
	'(': token.LPAREN,
	')': token.RPAREN,
	'{': token.LBRACE,
	'}': token.RBRACE,
	';': token.SEMICOLON,
}

// Tokenize returns all tokens (including the final EOF) produced by repeated
// calls to NextToken. It stops at the first error.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

func (l *Lexer) readIdentFromFirst(first byte) string {
	buf := make([]byte, 1, 16)
	buf[0] = first
	for !l.atEnd() && isIdentContinue(l.ch) {
		buf = append(buf, l.ch)
		l.advance()
	}
	return string(buf)
}

func (l *Lexer) readNumberFromFirst(first byte) string {
	buf := make([]byte, 1, 20)
	buf[0] = first
	for !l.atEnd() && isDigit(l.ch) {
		buf = append(buf, l.ch)
		l.advance()
	}
	return string(buf)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
