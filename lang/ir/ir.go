// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ir defines the three-address code listing for MiniLang.
//
// Every binary operation gets a fresh temporary (t1, t2, ...), skipping any
// name the program uses as a variable; literals and variable names are used
// directly as operands. Control flow is expressed
// with labels, "ifz" (branch when zero) and "goto". The listing is a
// diagnostic artifact: nothing in the toolchain executes it.
package ir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/probechain/minilang/lang/token"
)

// Op is a three-address instruction opcode.
type Op int

const (
	OpBinary Op = iota // dst = x op y
	OpCopy             // dst = x
	OpPrint            // print x
	OpIfZ              // ifz x goto label
	OpGoto             // goto label
	OpLabel            // label:
)

var opNames = map[Op]string{
	OpBinary: "binary", OpCopy: "copy", OpPrint: "print",
	OpIfZ: "ifz", OpGoto: "goto", OpLabel: "label",
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", op)
}

// Operand is either an integer constant or a name (variable or temporary).
type Operand struct {
	Name  string
	Const int64
}

// Const returns a constant operand.
func Const(v int64) Operand { return Operand{Const: v} }

// Name returns a named operand.
func Name(n string) Operand { return Operand{Name: n} }

// IsConst reports whether the operand is a constant.
func (o Operand) IsConst() bool { return o.Name == "" }

func (o Operand) String() string {
	if o.IsConst() {
		return strconv.FormatInt(o.Const, 10)
	}
	return o.Name
}

// Instruction is a single three-address instruction.
type Instruction struct {
	Op    Op
	Dst   string     // destination for OpBinary and OpCopy
	X, Y  Operand    // sources; Y is used by OpBinary only
	BinOp token.Type // operator for OpBinary
	Label string     // target for OpIfZ and OpGoto, name for OpLabel
}

func (inst *Instruction) String() string {
	switch inst.Op {
	case OpBinary:
		return fmt.Sprintf("%s = %s %s %s", inst.Dst, inst.X, inst.BinOp, inst.Y)
	case OpCopy:
		return fmt.Sprintf("%s = %s", inst.Dst, inst.X)
	case OpPrint:
		return "print " + inst.X.String()
	case OpIfZ:
		return fmt.Sprintf("ifz %s goto %s", inst.X, inst.Label)
	case OpGoto:
		return "goto " + inst.Label
	case OpLabel:
		return inst.Label + ":"
	}
	return inst.Op.String()
}

// Program is a complete three-address listing.
type Program struct {
	Instructions []*Instruction
	Temps        int // number of temporaries allocated
}

// Lines returns the textual form of every instruction, in order.
func (p *Program) Lines() []string {
	lines := make([]string, len(p.Instructions))
	for i, inst := range p.Instructions {
		lines[i] = inst.String()
	}
	return lines
}

func (p *Program) String() string {
	return strings.Join(p.Lines(), "\n")
}
