// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ast defines the Abstract Syntax Tree for the MiniLang language.
//
// Design overview:
//
//   - Expressions and statements each form a closed set of variants. The
//     marker methods are unexported so no other package can add a variant,
//     and every phase dispatches with a type switch over the full set.
//   - The tree is strict: every node has exactly one parent. The optimizer
//     may replace an expression with an IntLiteral but never shares nodes.
//   - Nodes carry the position of the token that started them so later
//     phases can report lines.
package ast

import (
	"bytes"
	"strconv"

	"github.com/probechain/minilang/lang/token"
)

// ---------------------------------------------------------------------------
// Core interfaces
// ---------------------------------------------------------------------------

// Node is the base interface that every AST node must implement.
type Node interface {
	// Position returns the source location the node was parsed from.
	Position() token.Position

	// String returns a source-like rendering of the node, suitable for unit
	// tests and debug output.
	String() string
}

// Expr is implemented by IntLiteral, Variable and Binary.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by Print, Assign, Block, If and While.
type Stmt interface {
	Node
	stmtNode()
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// IntLiteral is a 64-bit signed integer constant.
type IntLiteral struct {
	Pos   token.Position
	Value int64
}

// Variable is a reference to a named variable.
type Variable struct {
	Pos  token.Position
	Name string
}

// Binary applies Op to Left and Right. Op is one of the operator token types
// accepted by token.Type.IsBinaryOperator.
type Binary struct {
	Pos   token.Position
	Op    token.Type
	Left  Expr
	Right Expr
}

func (e *IntLiteral) exprNode() {}
func (e *Variable) exprNode()   {}
func (e *Binary) exprNode()     {}

func (e *IntLiteral) Position() token.Position { return e.Pos }
func (e *Variable) Position() token.Position   { return e.Pos }
func (e *Binary) Position() token.Position     { return e.Pos }

func (e *IntLiteral) String() string { return strconv.FormatInt(e.Value, 10) }
func (e *Variable) String() string   { return e.Name }
func (e *Binary) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// Print evaluates Value and writes it followed by a newline.
type Print struct {
	Pos   token.Position
	Value Expr
}

// Assign stores the value of Value into Name.
type Assign struct {
	Pos   token.Position
	Name  string
	Value Expr
}

// Block is an ordered sequence of statements. The program root is a Block.
type Block struct {
	Pos   token.Position
	Stmts []Stmt
}

// If runs Then when Cond is nonzero, otherwise Else when present.
type If struct {
	Pos  token.Position
	Cond Expr
	Then *Block
	Else *Block // nil when there is no else arm
}

// While repeats Body while Cond is nonzero.
type While struct {
	Pos  token.Position
	Cond Expr
	Body *Block
}

func (s *Print) stmtNode()  {}
func (s *Assign) stmtNode() {}
func (s *Block) stmtNode()  {}
func (s *If) stmtNode()     {}
func (s *While) stmtNode()  {}

func (s *Print) Position() token.Position  { return s.Pos }
func (s *Assign) Position() token.Position { return s.Pos }
func (s *Block) Position() token.Position  { return s.Pos }
func (s *If) Position() token.Position     { return s.Pos }
func (s *While) Position() token.Position  { return s.Pos }

func (s *Print) String() string  { return "print(" + s.Value.String() + ");" }
func (s *Assign) String() string { return s.Name + " = " + s.Value.String() + ";" }

func (s *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{")
	for _, st := range s.Stmts {
		out.WriteString(" ")
		out.WriteString(st.String())
	}
	out.WriteString(" }")
	return out.String()
}

func (s *If) String() string {
	str := "if (" + s.Cond.String() + ") " + s.Then.String()
	if s.Else != nil {
		str += " else " + s.Else.String()
	}
	return str
}

func (s *While) String() string {
	return "while (" + s.Cond.String() + ") " + s.Body.String()
}

// Program renders the statements of a program root one per line, without the
// enclosing braces of the root block.
func Program(root *Block) string {
	var out bytes.Buffer
	for _, st := range root.Stmts {
		out.WriteString(st.String())
		out.WriteByte('\n')
	}
	return out.String()
}
