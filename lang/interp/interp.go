// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ProbeChain is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ProbeChain. If not, see <http://www.gnu.org/licenses/>.

// Package interp executes a MiniLang AST directly.
package interp

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/probechain/minilang/lang/ast"
	"github.com/probechain/minilang/lang/token"
)

// ---- Error sentinels -------------------------------------------------------

// ErrUndefinedVariable is returned when a variable is read before any
// assignment. Programs that passed semantic analysis never trigger it.
var ErrUndefinedVariable = errors.New("use of undefined variable")

// ErrDivisionByZero is returned by / and % when the divisor is zero.
var ErrDivisionByZero = errors.New("division by zero")

// Error is a runtime error raised at Pos. It wraps one of the sentinels or a
// write error from the output stream.
type Error struct {
	Pos    token.Position
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg += " " + e.Detail
	}
	return fmt.Sprintf("runtime error: line %d: %s", e.Pos.Line, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// ---- Interpreter -----------------------------------------------------------

// Environment maps variable names to values. There is exactly one per run.
type Environment map[string]int64

// Interpreter is a tree-walking evaluator over a checked and folded program.
type Interpreter struct {
	out io.Writer
	env Environment
}

// New creates an interpreter with an empty environment writing print output
// to out.
func New(out io.Writer) *Interpreter {
	return &Interpreter{out: out, env: make(Environment)}
}

// Env returns the interpreter's environment.
func (in *Interpreter) Env() Environment {
	return in.env
}

// Run executes prog. Execution stops at the first error.
func (in *Interpreter) Run(prog *ast.Block) error {
	return in.exec(prog)
}

func (in *Interpreter) exec(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Block:
		for _, st := range s.Stmts {
			if err := in.exec(st); err != nil {
				return err
			}
		}
		return nil

	case *ast.Assign:
		v, err := in.Eval(s.Value)
		if err != nil {
			return err
		}
		in.env[s.Name] = v
		return nil

	case *ast.Print:
		v, err := in.Eval(s.Value)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(in.out, strconv.FormatInt(v, 10)+"\n"); err != nil {
			return &Error{Pos: s.Pos, Err: err}
		}
		return nil

	case *ast.If:
		c, err := in.Eval(s.Cond)
		if err != nil {
			return err
		}
		if c != 0 {
			return in.exec(s.Then)
		}
		if s.Else != nil {
			return in.exec(s.Else)
		}
		return nil

	case *ast.While:
		for {
			c, err := in.Eval(s.Cond)
			if err != nil {
				return err
			}
			if c == 0 {
				return nil
			}
			if err := in.exec(s.Body); err != nil {
				return err
			}
		}
	}
	panic(fmt.Sprintf("interp: unexpected statement %T", stmt))
}

// Eval evaluates expr against the interpreter's environment.
func (in *Interpreter) Eval(expr ast.Expr) (int64, error) {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return e.Value, nil

	case *ast.Variable:
		v, ok := in.env[e.Name]
		if !ok {
			return 0, &Error{Pos: e.Pos, Detail: "'" + e.Name + "'", Err: ErrUndefinedVariable}
		}
		return v, nil

	case *ast.Binary:
		x, err := in.Eval(e.Left)
		if err != nil {
			return 0, err
		}
		y, err := in.Eval(e.Right)
		if err != nil {
			return 0, err
		}
		v, ok := ast.Compute(e.Op, x, y)
		if !ok {
			if (e.Op == token.SLASH || e.Op == token.PERCENT) && y == 0 {
				return 0, &Error{Pos: e.Pos, Err: ErrDivisionByZero}
			}
			return 0, &Error{Pos: e.Pos, Err: fmt.Errorf("unknown operator %s", e.Op)}
		}
		return v, nil
	}
	panic(fmt.Sprintf("interp: unexpected expression %T", expr))
}
