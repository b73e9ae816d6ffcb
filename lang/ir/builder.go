// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package ir

import (
	"fmt"

	mapset "github.com/deckarep/golang-set"

	"github.com/probechain/minilang/lang/token"
	"github.com/probechain/minilang/lang/trace"
)

// Builder appends instructions to a Program.
type Builder struct {
	program  *Program
	tracer   trace.Tracer
	reserved mapset.Set // names NewTemp must not return
	tempSeq  int
}

// NewBuilder creates a new IR builder. tr may be nil.
func NewBuilder(tr trace.Tracer) *Builder {
	return &Builder{
		program:  &Program{},
		tracer:   trace.OrNop(tr),
		reserved: mapset.NewSet(),
	}
}

// Program returns the built program.
func (b *Builder) Program() *Program {
	return b.program
}

// Len returns the number of instructions emitted so far.
func (b *Builder) Len() int {
	return len(b.program.Instructions)
}

// Reserve marks a variable name so that no temporary is given the same name.
func (b *Builder) Reserve(name string) {
	b.reserved.Add(name)
}

// NewTemp allocates a fresh temporary name. Numbering starts at t1 and skips
// reserved names.
func (b *Builder) NewTemp() string {
	for {
		b.tempSeq++
		name := fmt.Sprintf("t%d", b.tempSeq)
		if !b.reserved.Contains(name) {
			b.program.Temps++
			return name
		}
	}
}

// NewLabels returns a pair of labels derived from the current instruction
// count. Two calls can only share a count if no instruction was emitted in
// between, and no construct does that.
func (b *Builder) NewLabels() (string, string) {
	n := b.Len()
	return fmt.Sprintf("L%da", n), fmt.Sprintf("L%db", n)
}

func (b *Builder) emit(inst *Instruction) {
	b.program.Instructions = append(b.program.Instructions, inst)
	b.tracer.Emit(inst.String())
}

// EmitBinary emits "t = x op y" into a fresh temporary and returns it.
func (b *Builder) EmitBinary(op token.Type, x, y Operand) Operand {
	dst := b.NewTemp()
	b.emit(&Instruction{Op: OpBinary, Dst: dst, X: x, Y: y, BinOp: op})
	return Name(dst)
}

// EmitCopy emits "dst = x".
func (b *Builder) EmitCopy(dst string, x Operand) {
	b.emit(&Instruction{Op: OpCopy, Dst: dst, X: x})
}

// EmitPrint emits "print x".
func (b *Builder) EmitPrint(x Operand) {
	b.emit(&Instruction{Op: OpPrint, X: x})
}

// EmitIfZ emits "ifz x goto label".
func (b *Builder) EmitIfZ(x Operand, label string) {
	b.emit(&Instruction{Op: OpIfZ, X: x, Label: label})
}

// EmitGoto emits "goto label".
func (b *Builder) EmitGoto(label string) {
	b.emit(&Instruction{Op: OpGoto, Label: label})
}

// EmitLabel emits "label:".
func (b *Builder) EmitLabel(label string) {
	b.emit(&Instruction{Op: OpLabel, Label: label})
}
