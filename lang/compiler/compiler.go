// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package compiler sequences the MiniLang phases: parse (with lazy lexing),
// define-before-use check, constant folding, three-address code generation
// and interpretation. Each phase runs to completion before the next starts
// and the first error aborts the whole pipeline.
package compiler

import (
	"io"

	"github.com/probechain/minilang/lang/ast"
	"github.com/probechain/minilang/lang/interp"
	"github.com/probechain/minilang/lang/ir"
	"github.com/probechain/minilang/lang/optimize"
	"github.com/probechain/minilang/lang/parser"
	"github.com/probechain/minilang/lang/sema"
	"github.com/probechain/minilang/lang/trace"
)

// Phase identifies a pipeline stage.
type Phase int

const (
	PhaseLex Phase = iota + 1
	PhaseParse
	PhaseSema
	PhaseOptimize
	PhaseTAC
	PhaseExec
)

var phaseTitles = map[Phase]string{
	PhaseLex:      "LEXICAL ANALYSIS",
	PhaseParse:    "SYNTAX ANALYSIS",
	PhaseSema:     "SEMANTIC ANALYSIS",
	PhaseOptimize: "OPTIMIZATION",
	PhaseTAC:      "INTERMEDIATE CODE GENERATION",
	PhaseExec:     "EXECUTION",
}

func (p Phase) String() string { return phaseTitles[p] }

// Options configures a compilation. The zero value compiles silently.
type Options struct {
	Tracer trace.Tracer

	// OnPhase, when set, is called before each phase starts.
	OnPhase func(Phase)

	// OnParsed, when set, receives the program right after parsing.
	OnParsed func(*ast.Block)
}

// Unit is a checked, folded program together with its TAC listing. A unit
// may be run any number of times; running never modifies it.
type Unit struct {
	Name    string
	Program *ast.Block
	TAC     *ir.Program
	Folds   int // number of expressions replaced by constant folding
}

// Compile runs every phase up to and including TAC generation.
func Compile(filename, source string, opts Options) (*Unit, error) {
	tr := trace.OrNop(opts.Tracer)
	phase := func(p Phase) {
		if opts.OnPhase != nil {
			opts.OnPhase(p)
		}
	}

	phase(PhaseLex)
	phase(PhaseParse)
	prog, err := parser.Parse(filename, source, tr)
	if err != nil {
		return nil, err
	}
	if opts.OnParsed != nil {
		opts.OnParsed(prog)
	}

	phase(PhaseSema)
	if err := sema.Check(prog, tr); err != nil {
		return nil, err
	}

	phase(PhaseOptimize)
	folds := optimize.Fold(prog, tr)

	phase(PhaseTAC)
	tac := ir.Generate(prog, tr)

	return &Unit{Name: filename, Program: prog, TAC: tac, Folds: folds}, nil
}

// Check runs only the front end (parse and define-before-use) of source.
func Check(filename, source string) error {
	prog, err := parser.Parse(filename, source, nil)
	if err != nil {
		return err
	}
	return sema.Check(prog, nil)
}

// Run executes the unit with a fresh environment, writing print output to w.
func (u *Unit) Run(w io.Writer) error {
	return interp.New(w).Run(u.Program)
}
