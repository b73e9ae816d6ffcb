// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package sema implements the define-before-use check for MiniLang programs.
//
// The analyzer walks the program once with a set of defined names. An
// assignment defines its target after its right-hand side is checked. The
// arms of an if and the body of a while are checked against their own copy of
// the set, so a name first assigned there is not defined for the code that
// follows the construct. The one exception is a name assigned in both arms of
// an if with an else: every path through the if assigns it, so it is defined
// afterwards. Nested plain blocks share the enclosing set.
package sema

import (
	"fmt"

	mapset "github.com/deckarep/golang-set"

	"github.com/probechain/minilang/lang/ast"
	"github.com/probechain/minilang/lang/token"
	"github.com/probechain/minilang/lang/trace"
)

// Error reports a variable used before any assignment reaching the use.
type Error struct {
	Pos  token.Position
	Name string
}

func (e *Error) Error() string {
	return fmt.Sprintf("semantic error: line %d: variable '%s' used before assignment", e.Pos.Line, e.Name)
}

type checker struct {
	tracer trace.Tracer
}

// Check validates prog. It never modifies the tree.
func Check(prog *ast.Block, tr trace.Tracer) error {
	c := &checker{tracer: trace.OrNop(tr)}
	return c.block(prog, mapset.NewSet())
}

func (c *checker) block(blk *ast.Block, defined mapset.Set) error {
	for _, stmt := range blk.Stmts {
		if err := c.stmt(stmt, defined); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) stmt(stmt ast.Stmt, defined mapset.Set) error {
	switch s := stmt.(type) {
	case *ast.Assign:
		if err := c.expr(s.Value, defined); err != nil {
			return err
		}
		defined.Add(s.Name)
		c.tracer.Define(s.Name, s.Pos)
		return nil

	case *ast.Print:
		return c.expr(s.Value, defined)

	case *ast.If:
		if err := c.expr(s.Cond, defined); err != nil {
			return err
		}
		thenDefined := defined.Clone()
		if err := c.block(s.Then, thenDefined); err != nil {
			return err
		}
		if s.Else == nil {
			return nil
		}
		elseDefined := defined.Clone()
		if err := c.block(s.Else, elseDefined); err != nil {
			return err
		}
		for _, name := range thenDefined.Intersect(elseDefined).ToSlice() {
			defined.Add(name)
		}
		return nil

	case *ast.While:
		if err := c.expr(s.Cond, defined); err != nil {
			return err
		}
		return c.block(s.Body, defined.Clone())

	case *ast.Block:
		return c.block(s, defined)
	}
	panic(fmt.Sprintf("sema: unexpected statement %T", stmt))
}

func (c *checker) expr(expr ast.Expr, defined mapset.Set) error {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return nil

	case *ast.Variable:
		if !defined.Contains(e.Name) {
			return &Error{Pos: e.Pos, Name: e.Name}
		}
		c.tracer.Use(e.Name, e.Pos)
		return nil

	case *ast.Binary:
		if err := c.expr(e.Left, defined); err != nil {
			return err
		}
		return c.expr(e.Right, defined)
	}
	panic(fmt.Sprintf("sema: unexpected expression %T", expr))
}
