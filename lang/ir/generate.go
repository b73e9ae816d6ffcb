// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package ir

import (
	"fmt"

	"github.com/probechain/minilang/lang/ast"
	"github.com/probechain/minilang/lang/trace"
)

// Generate lowers a program to three-address code.
//
//	x = e;            <e>; x = <result>
//	print(e);         <e>; print <result>
//	if (c) A else B   <c>; ifz <c> goto La; A; goto Lb; La:; B; Lb:
//	while (c) A       La:; <c>; ifz <c> goto Lb; A; goto La; Lb:
//
// Temporaries never share a name with a program variable.
func Generate(prog *ast.Block, tr trace.Tracer) *Program {
	b := NewBuilder(tr)
	b.reserveNames(prog)
	b.block(prog)
	return b.Program()
}

// reserveNames reserves every variable assigned or read anywhere in blk.
func (b *Builder) reserveNames(blk *ast.Block) {
	var expr func(ast.Expr)
	expr = func(e ast.Expr) {
		switch e := e.(type) {
		case *ast.Variable:
			b.Reserve(e.Name)
		case *ast.Binary:
			expr(e.Left)
			expr(e.Right)
		}
	}
	for _, stmt := range blk.Stmts {
		switch s := stmt.(type) {
		case *ast.Assign:
			b.Reserve(s.Name)
			expr(s.Value)
		case *ast.Print:
			expr(s.Value)
		case *ast.If:
			expr(s.Cond)
			b.reserveNames(s.Then)
			if s.Else != nil {
				b.reserveNames(s.Else)
			}
		case *ast.While:
			expr(s.Cond)
			b.reserveNames(s.Body)
		case *ast.Block:
			b.reserveNames(s)
		}
	}
}

func (b *Builder) block(blk *ast.Block) {
	for _, stmt := range blk.Stmts {
		b.stmt(stmt)
	}
}

func (b *Builder) stmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Assign:
		b.EmitCopy(s.Name, b.expr(s.Value))

	case *ast.Print:
		b.EmitPrint(b.expr(s.Value))

	case *ast.If:
		cond := b.expr(s.Cond)
		elseLabel, endLabel := b.NewLabels()
		b.EmitIfZ(cond, elseLabel)
		b.block(s.Then)
		b.EmitGoto(endLabel)
		b.EmitLabel(elseLabel)
		if s.Else != nil {
			b.block(s.Else)
		}
		b.EmitLabel(endLabel)

	case *ast.While:
		startLabel, endLabel := b.NewLabels()
		b.EmitLabel(startLabel)
		cond := b.expr(s.Cond)
		b.EmitIfZ(cond, endLabel)
		b.block(s.Body)
		b.EmitGoto(startLabel)
		b.EmitLabel(endLabel)

	case *ast.Block:
		b.block(s)

	default:
		panic(fmt.Sprintf("ir: unexpected statement %T", stmt))
	}
}

func (b *Builder) expr(expr ast.Expr) Operand {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return Const(e.Value)
	case *ast.Variable:
		return Name(e.Name)
	case *ast.Binary:
		x := b.expr(e.Left)
		y := b.expr(e.Right)
		return b.EmitBinary(e.Op, x, y)
	}
	panic(fmt.Sprintf("ir: unexpected expression %T", expr))
}
