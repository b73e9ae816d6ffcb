// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

// Package optimize provides constant folding over the MiniLang AST.
package optimize

import (
	"fmt"

	"github.com/probechain/minilang/lang/ast"
	"github.com/probechain/minilang/lang/trace"
)

type folder struct {
	tracer trace.Tracer
	folds  int
}

// Fold rewrites, in place, every binary expression whose operands fold to
// literals into the literal result. Operands are folded first. Division and
// modulo by a literal zero are left as they are so the error is raised at run
// time. Fold returns the number of nodes it replaced; running it again on
// its own output replaces nothing.
func Fold(prog *ast.Block, tr trace.Tracer) int {
	f := &folder{tracer: trace.OrNop(tr)}
	f.block(prog)
	return f.folds
}

func (f *folder) block(blk *ast.Block) {
	for _, stmt := range blk.Stmts {
		f.stmt(stmt)
	}
}

func (f *folder) stmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Assign:
		s.Value = f.expr(s.Value)
	case *ast.Print:
		s.Value = f.expr(s.Value)
	case *ast.If:
		s.Cond = f.expr(s.Cond)
		f.block(s.Then)
		if s.Else != nil {
			f.block(s.Else)
		}
	case *ast.While:
		s.Cond = f.expr(s.Cond)
		f.block(s.Body)
	case *ast.Block:
		f.block(s)
	default:
		panic(fmt.Sprintf("optimize: unexpected statement %T", stmt))
	}
}

// Expr folds a single expression tree and returns its replacement.
func Expr(e ast.Expr, tr trace.Tracer) ast.Expr {
	f := &folder{tracer: trace.OrNop(tr)}
	return f.expr(e)
}

func (f *folder) expr(expr ast.Expr) ast.Expr {
	b, ok := expr.(*ast.Binary)
	if !ok {
		return expr
	}
	b.Left = f.expr(b.Left)
	b.Right = f.expr(b.Right)

	x, ok := b.Left.(*ast.IntLiteral)
	if !ok {
		return b
	}
	y, ok := b.Right.(*ast.IntLiteral)
	if !ok {
		return b
	}
	result, ok := ast.Compute(b.Op, x.Value, y.Value)
	if !ok {
		return b
	}
	f.folds++
	f.tracer.Fold(b.Op, x.Value, y.Value, result)
	return &ast.IntLiteral{Pos: b.Pos, Value: result}
}
