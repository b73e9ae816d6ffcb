// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package token defines the lexical token types for the MiniLang language.
package token

import "fmt"

// Token represents a lexical token.
type Token struct {
	Type    Type
	Literal string
	Value   int64 // decoded value of an INT token
	Pos     Position
}

// Position tracks source location.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Type is the set of lexical token types.
type Type int

const (
	EOF Type = iota

	// Literals
	INT   // 42
	IDENT // x, total_1

	// Operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	ASSIGN  // =
	EQ      // ==
	NEQ     // !=
	LT      // <
	GT      // >
	LTE     // <=
	GTE     // >=

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	SEMICOLON // ;

	keywordStart
	PRINT // print
	IF    // if
	ELSE  // else
	WHILE // while
	keywordEnd
)

var tokenNames = [...]string{
	EOF: "EOF",

	INT:   "INT",
	IDENT: "IDENT",

	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	ASSIGN:  "=",
	EQ:      "==",
	NEQ:     "!=",
	LT:      "<",
	GT:      ">",
	LTE:     "<=",
	GTE:     ">=",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	SEMICOLON: ";",

	PRINT: "print",
	IF:    "if",
	ELSE:  "else",
	WHILE: "while",
}

// String returns the string form of a token type.
func (t Type) String() string {
	if t >= 0 && int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// IsKeyword returns true if the token is a keyword.
func (t Type) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsBinaryOperator reports whether t may appear as the operator of a binary
// expression. ASSIGN is excluded.
func (t Type) IsBinaryOperator() bool {
	return t >= PLUS && t <= GTE && t != ASSIGN
}

// IsComparison reports whether t is one of == != < > <= >=.
func (t Type) IsComparison() bool {
	return t >= EQ && t <= GTE
}

var keywords map[string]Type

func init() {
	keywords = make(map[string]Type)
	for i := keywordStart + 1; i < keywordEnd; i++ {
		keywords[tokenNames[i]] = i
	}
}

// LookupIdent checks if an identifier is a keyword.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
